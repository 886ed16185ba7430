package main

import (
	"fmt"
	"os"
	"time"

	"Aperture/internal/calc/report"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	reportBeam beamFlags
	reportMeta report.Meta
	reportPDF  string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the full hazard report as text or PDF",
	RunE: func(cmd *cobra.Command, _ []string) error {
		in, err := reportBeam.resolve(cmd)
		if err != nil {
			return err
		}
		engine, err := loadEngine()
		if err != nil {
			return err
		}
		res, err := engine.Calculate(in)
		if err != nil {
			return err
		}

		if reportPDF == "" {
			_, err := fmt.Fprint(cmd.OutOrStdout(), report.Export(in, res))
			return err
		}
		f, err := os.Create(reportPDF)
		if err != nil {
			return err
		}
		reportMeta.Date = time.Now()
		if err := report.WritePDF(f, reportMeta, in, res); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", reportPDF, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		log.Info().Str("file", reportPDF).Str("class", string(res.Class)).Msg("report written")
		return nil
	},
}

func init() {
	reportBeam.register(reportCmd.Flags())
	reportCmd.Flags().StringVar(&reportPDF, "pdf", "", "write a PDF to this file instead of text to stdout")
	reportCmd.Flags().StringVar(&reportMeta.Project, "project", "", "project name printed on the PDF")
	reportCmd.Flags().StringVar(&reportMeta.Author, "author", "", "author printed on the PDF")
	rootCmd.AddCommand(reportCmd)
}
