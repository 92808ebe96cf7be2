package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/profile-cli/internal/export"
	"github.com/sells-group/profile-cli/internal/model"
	"github.com/sells-group/profile-cli/internal/profile"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		e, err := initEnv("serve")
		if err != nil {
			return err
		}
		defer e.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           newRouter(e.Builder),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// newRouter assembles the API routes around a builder. Split out so the
// handlers can be exercised with httptest without binding a socket.
func newRouter(b *profile.Builder) http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/lookup", func(w http.ResponseWriter, req *http.Request) {
		var in profile.Input
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		p, err := b.Build(req.Context(), in.Company, in.Domain)
		if err != nil {
			writeBuildError(w, req, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	})

	r.Post("/bulk", func(w http.ResponseWriter, req *http.Request) {
		rows, err := readBulkRows(req)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		profiles, err := b.BuildBulk(req.Context(), rows)
		if err != nil {
			writeBuildError(w, req, err)
			return
		}
		writeJSON(w, http.StatusOK, profiles)
	})

	r.Get("/export", func(w http.ResponseWriter, req *http.Request) {
		format := strings.ToLower(req.URL.Query().Get("format"))
		if format == "" {
			format = "csv"
		}
		if format != "csv" && format != "xlsx" {
			writeError(w, http.StatusBadRequest, "unsupported format: csv or xlsx")
			return
		}

		p, err := b.Build(req.Context(), req.URL.Query().Get("company"), req.URL.Query().Get("domain"))
		if err != nil {
			writeBuildError(w, req, err)
			return
		}

		name := "profile_" + safeFilename(p.Domain, p.Company) + "." + format
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		if format == "xlsx" {
			w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			if err := export.XLSX(w, []model.Profile{p}); err != nil {
				zap.L().Error("export write failed", zap.Error(err))
			}
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		if err := export.CSV(w, []model.Profile{p}); err != nil {
			zap.L().Error("export write failed", zap.Error(err))
		}
	})

	return r
}

// readBulkRows accepts either a JSON array of inputs or a raw CSV body
// with company,domain rows.
func readBulkRows(req *http.Request) ([]profile.Input, error) {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, eris.New("unreadable request body")
	}

	if strings.Contains(req.Header.Get("Content-Type"), "text/csv") {
		return parseRows(body)
	}

	var rows []profile.Input
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, eris.New("invalid request body: expected a JSON array of {company, domain}")
	}
	kept := rows[:0]
	for _, in := range rows {
		in.Company = strings.TrimSpace(in.Company)
		in.Domain = strings.TrimSpace(in.Domain)
		if in.Company != "" || in.Domain != "" {
			kept = append(kept, in)
		}
	}
	if len(kept) == 0 {
		return nil, eris.New("no valid rows found")
	}
	return kept, nil
}

func writeBuildError(w http.ResponseWriter, req *http.Request, err error) {
	switch {
	case errors.Is(err, profile.ErrNoInput):
		writeError(w, http.StatusBadRequest, "provide at least a company or a domain")
	case errors.Is(err, profile.ErrBatchTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
	default:
		zap.L().Error("build failed",
			zap.String("request_id", requestIDFrom(req)),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "internal error while building profile")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

const requestIDHeader = "X-Request-Id"

// requestID tags every request with a uuid, reusing the caller's id when
// one is supplied.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := req.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
			req.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, req)
	})
}

func requestIDFrom(req *http.Request) string {
	return req.Header.Get(requestIDHeader)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
