package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/clawfood/clawfood/internal/model"
	"github.com/clawfood/clawfood/internal/suggest"
)

// maxEnrichBatch bounds POST /api/enrich; each item costs at least one
// throttled geocoder call.
const maxEnrichBatch = 20

const shutdownTimeout = 10 * time.Second

// maxBodyBytes caps API request bodies before they are decoded.
const maxBodyBytes = 1 << 20

var servePort int

type searcher interface {
	Search(ctx context.Context, req model.SearchRequest) (*model.SearchResponse, error)
}

type enricher interface {
	Enrich(ctx context.Context, restaurants []model.Restaurant, originLat, originLon float64) []model.Restaurant
}

type locator interface {
	Locate(ctx context.Context, lat, lon float64) string
}

// apiDeps are the services behind the HTTP API. Nil services answer 503.
type apiDeps struct {
	Search      searcher
	Enricher    enricher
	Locator     locator
	CORSOrigins []string
	Origin      model.Location
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the restaurant search API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initSearch(ctx, cfg)
		if err != nil {
			return err
		}

		handler := buildMux(apiDeps{
			Search:      env.Search,
			Enricher:    env.Enricher,
			Locator:     env.Locator,
			CORSOrigins: cfg.Server.CORSOrigins,
			Origin: model.Location{
				Latitude:  cfg.Search.DefaultLatitude,
				Longitude: cfg.Search.DefaultLongitude,
			},
		})

		return startServer(ctx, handler, resolvePort(servePort, cfg.Server.Port))
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// resolvePort prefers the flag value over the configured port.
func resolvePort(flagPort, cfgPort int) int {
	if flagPort != 0 {
		return flagPort
	}
	return cfgPort
}

// startServer serves handler until ctx is done, then shuts down gracefully.
func startServer(ctx context.Context, handler http.Handler, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "server listen")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return eris.Wrap(err, "server shutdown")
		}
		return nil
	})
	return g.Wait()
}

// buildMux wires the API routes and middleware.
func buildMux(deps apiDeps) http.Handler {
	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/search", handleSearch(deps))
		r.Post("/enrich", handleEnrich(deps))
		r.Get("/locate", handleLocate(deps))
	})

	return r
}

func handleSearch(deps apiDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Search == nil {
			writeError(w, http.StatusServiceUnavailable, "search is not available")
			return
		}

		var req model.SearchRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Filters != nil && !req.Filters.SortBy.Valid() {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown sortBy %q", req.Filters.SortBy))
			return
		}

		resp, err := deps.Search.Search(r.Context(), req)
		switch {
		case errors.Is(err, suggest.ErrEmptyKeyword):
			writeError(w, http.StatusBadRequest, "keyword is required")
		case err != nil:
			zap.L().Error("search failed",
				zap.String("keyword", req.Keyword),
				zap.String("request_id", w.Header().Get(requestIDHeader)),
				zap.Error(err),
			)
			writeError(w, http.StatusBadGateway, "failed to fetch suggestions")
		default:
			writeJSON(w, http.StatusOK, resp)
		}
	}
}

type enrichRequest struct {
	Restaurants []model.Restaurant `json:"restaurants"`
	Latitude    float64            `json:"latitude"`
	Longitude   float64            `json:"longitude"`
}

func handleEnrich(deps apiDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Enricher == nil {
			writeError(w, http.StatusServiceUnavailable, "enrichment is not available")
			return
		}

		var req enrichRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if len(req.Restaurants) > maxEnrichBatch {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("at most %d restaurants per request", maxEnrichBatch))
			return
		}

		lat, lon := req.Latitude, req.Longitude
		if lat == 0 && lon == 0 {
			lat, lon = deps.Origin.Latitude, deps.Origin.Longitude
		}

		out := deps.Enricher.Enrich(r.Context(), req.Restaurants, lat, lon)
		if out == nil {
			out = []model.Restaurant{}
		}
		writeJSON(w, http.StatusOK, map[string][]model.Restaurant{"restaurants": out})
	}
}

func handleLocate(deps apiDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Locator == nil {
			writeError(w, http.StatusServiceUnavailable, "locate is not available")
			return
		}

		lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
		lon, errLon := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
		if errLat != nil || errLon != nil || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
			writeError(w, http.StatusBadRequest, "lat and lng must be valid coordinates")
			return
		}

		writeJSON(w, http.StatusOK, model.Location{
			Latitude:  lat,
			Longitude: lon,
			Address:   deps.Locator.Locate(r.Context(), lat, lon),
		})
	}
}

const requestIDHeader = "X-Request-ID"

// requestID propagates the caller's X-Request-ID or assigns a new one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.String("request_id", w.Header().Get(requestIDHeader)),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

// decodeBody reads a size-capped JSON body into v, answering the request
// itself when that fails.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
