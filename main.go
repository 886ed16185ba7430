package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	auth "Aperture/internal/auth"
	laser "Aperture/internal/calc/laser"
	autodesign "Aperture/internal/calc/premium/autodesign"
	batch "Aperture/internal/calc/premium/batch"
	importer "Aperture/internal/calc/premium/importer"
	recommend "Aperture/internal/calc/premium/recommend"
	presets "Aperture/internal/calc/presets"
	report "Aperture/internal/calc/report"
	config "Aperture/internal/config"
	history "Aperture/internal/history"
	repo "Aperture/internal/repo"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

// withLogging attaches the logger and a request id to every request and
// writes one access line per response.
func withLogging(logger zerolog.Logger, next http.Handler) http.Handler {
	h := hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	})(next)
	h = hlog.RemoteAddrHandler("ip")(h)
	h = hlog.RequestIDHandler("req_id", "Request-Id")(h)
	return hlog.NewHandler(logger)(h)
}

func HandleList(mux *mux.Router, cfg config.Config, userRepo repo.Repository, engine *laser.Engine) {
	authEnv := &auth.Authenv{JWTkey: []byte(cfg.TokenKey), Repo: userRepo, Insecure: !cfg.TLS()}
	historyH := &history.Handler{Repo: userRepo, Engine: engine}

	limiter := auth.NewIPRateLimiter(cfg.RateLimit, cfg.RateBurst)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	presetsH := &presets.Handler{}
	laserH := &laser.Handler{Engine: engine}
	api.HandleFunc("/tools/laser/presets", presetsH.List).Methods("GET")
	api.HandleFunc("/tools/laser/presets/{name}", presetsH.Get).Methods("GET")
	api.HandleFunc("/tools/laser/tables", laserH.Tables).Methods("GET")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	reportH := &report.Handler{Engine: engine}
	secureApi.HandleFunc("/tools/laser/calc", laserH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/laser/report/{format}", reportH.Generate).Methods("POST")

	batchH := &batch.Handler{Engine: engine}
	importH := &importer.Handler{Engine: engine}
	recommendH := &recommend.Handler{}
	autoH := &autodesign.Handler{Engine: engine}
	secureApi.HandleFunc("/premium/laser/batch", batchH.Laser).Methods("POST")
	secureApi.HandleFunc("/premium/laser/import", importH.Laser).Methods("POST")
	secureApi.HandleFunc("/premium/laser/import/xlsx", importH.LaserXLSX).Methods("POST")
	secureApi.HandleFunc("/premium/laser/eyewear", recommendH.Eyewear).Methods("POST")
	secureApi.HandleFunc("/premium/laser/max-power", autoH.Power).Methods("POST")

	secureApi.HandleFunc("/history", historyH.Save).Methods("POST")
	secureApi.HandleFunc("/history", historyH.List).Methods("GET")
	secureApi.HandleFunc("/history/{id}", historyH.Get).Methods("GET")
	secureApi.HandleFunc("/history/{id}", historyH.Delete).Methods("DELETE")
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func openRepo(ctx context.Context, cfg config.Config) (repo.Repository, io.Closer, error) {
	switch cfg.RepoType {
	case "postgres":
		r, err := repo.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return r, r, nil
	case "sqlite":
		r, err := repo.NewSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return r, r, nil
	default:
		return repo.NewMemory(), nopCloser{}, nil
	}
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if err := cfg.RequireToken(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)

	engine, err := laser.LoadEngineFile(cfg.TablesPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.TablesPath).Msg("failed to load laser tables")
	}
	log.Info().Str("tables_version", engine.Tables().Version).Msg("laser engine ready")

	userRepo, closer, err := openRepo(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("repo", cfg.RepoType).Msg("failed to open repository")
	}
	defer closer.Close()
	log.Info().Str("repo", cfg.RepoType).Msg("repository initialized")

	mux := mux.NewRouter()
	HandleList(mux, cfg, userRepo, engine)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           withLogging(log.Logger, CORS(mux)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info().Str("addr", cfg.Addr).Bool("tls", cfg.TLS()).Msg("starting server")
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			log.Warn().Msg("TLS_CERT not set, serving plain HTTP (dev mode only)")
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received, closing active connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	wg.Wait()
	log.Info().Msg("server stopped")
}
