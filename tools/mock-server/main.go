// Package main implements a mock exchange engine API server for local
// development. It serves canned listings, matches, and chains from a JSON
// fixture so the tbx CLI can be developed without a database or a running
// engine.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"
)

type fixture struct {
	Listings   map[string]json.RawMessage `json:"listings"`
	Matches    map[string]json.RawMessage `json:"matches"`
	Chains     map[string]json.RawMessage `json:"chains"`
	Categories json.RawMessage            `json:"categories"`
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-server/testdata/fixture.json", "path to fixture file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fx, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "listings", len(fx.Listings))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", statusHandler("ok"))
	mux.HandleFunc("GET /readyz", statusHandler("ready"))
	mux.HandleFunc("GET /api/v1/listings/{id}", listingHandler(logger, fx))
	mux.HandleFunc("GET /api/v1/listings/{id}/matches", lookupHandler(logger, fx.Matches, emptyMatches))
	mux.HandleFunc("GET /api/v1/listings/{id}/chains", lookupHandler(logger, fx.Chains, emptyChains))
	mux.HandleFunc("GET /api/v1/catalog/categories", categoriesHandler(fx))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock exchange engine server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func loadFixture(path string) (*fixture, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var fx fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &fx, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func statusHandler(status string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(map[string]string{"status": status})
	}
}

func listingHandler(logger *slog.Logger, fx *fixture) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		raw, ok := fx.Listings[id]
		if !ok {
			writeNotFound(w)
			logger.Info("listing not found", "id", id)
			return
		}
		writeRaw(w, raw)
	}
}

// emptyMatches and emptyChains are the zero responses for known listings
// without fixture entries.
func emptyMatches(id string) any {
	return map[string]any{"origin_id": id, "matches": []any{}, "total": 0}
}

func emptyChains(id string) any {
	return map[string]any{"origin_id": id, "chains": []any{}, "total": 0}
}

func lookupHandler(
	logger *slog.Logger,
	table map[string]json.RawMessage,
	empty func(id string) any,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		raw, ok := table[id]
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
			json.NewEncoder(w).Encode(empty(id))
			logger.Info("no fixture entry, returning empty", "id", id, "path", r.URL.Path)
			return
		}
		writeRaw(w, raw)
	}
}

func categoriesHandler(fx *fixture) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if len(fx.Categories) == 0 {
			w.Header().Set("Content-Type", "application/json")
			//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
			json.NewEncoder(w).Encode(map[string]any{"categories": []any{}, "total": 0})
			return
		}
		writeRaw(w, fx.Categories)
	}
}

func writeRaw(w http.ResponseWriter, raw json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	w.Write(raw)
}

func writeNotFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(map[string]string{"error": "listing not found"})
}
