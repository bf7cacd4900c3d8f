// Package transport serves the dashboard API over HTTP.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rpggio/caredesk/internal/apierror"
	"github.com/rpggio/caredesk/internal/app"
	"github.com/rpggio/caredesk/internal/domain/audit"
	"github.com/rpggio/caredesk/internal/domain/collection"
	"github.com/rpggio/caredesk/internal/domain/rate"
	"github.com/rpggio/caredesk/internal/domain/status"
	"github.com/rpggio/caredesk/internal/listview"
)

const maxBodyBytes = 1 << 20

var errLiveUnavailable = fmt.Errorf("%w: live views", collection.ErrNotSupported)

// RateService defines rate operations needed by the API.
type RateService interface {
	Current(ctx context.Context) (rate.Rates, error)
	Set(ctx context.Context, r rate.Rates) (rate.Rates, error)
	Quote(ctx context.Context, hours, distance float64) (float64, error)
}

// AuditService defines audit operations needed by the API.
type AuditService interface {
	List(ctx context.Context, opts audit.ListOptions) ([]audit.Entry, error)
}

// Config contains server dependencies. Only Resources is required.
type Config struct {
	Resources  []app.Resource
	Rates      RateService
	Audit      AuditService
	Subscriber Subscriber
	Resolver   SessionResolver
	// MCP is mounted at /mcp when set.
	MCP    http.Handler
	Logger *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	rates      RateService
	audit      AuditService
	subscriber Subscriber
	upgrader   websocket.Upgrader
	logger     *slog.Logger
}

// NewServer creates an HTTP server router with middleware.
func NewServer(cfg Config) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	srv := &Server{
		rates:      cfg.Rates,
		audit:      cfg.Audit,
		subscriber: cfg.Subscriber,
		upgrader:   websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 4096},
		logger:     logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(SessionMiddleware)
	r.Use(RequestLogger(logger))
	r.Use(CurrentUserMiddleware(cfg.Resolver, logger))

	r.Get("/health", srv.handleHealth)

	r.Route("/api", func(r chi.Router) {
		if srv.rates != nil {
			r.Get("/rates", srv.handleGetRates)
			r.Put("/rates", srv.handleSetRates)
			r.Get("/rates/quote", srv.handleQuote)
		}
		if srv.audit != nil {
			r.Get("/audit", srv.handleAudit)
		}
		for _, res := range cfg.Resources {
			r.Route("/"+res.Name, func(r chi.Router) {
				r.Get("/", srv.handleList(res))
				r.Get("/form", srv.handleForm(res))
				r.Get("/live", srv.handleLive(res))
				if res.Submit != nil {
					r.Post("/", srv.handleSubmit(res, collection.Add))
					r.Put("/{id}", srv.handleSubmit(res, collection.Edit))
				}
				if res.SoftDelete != nil {
					r.Delete("/{id}", srv.handleSoftDelete(res))
				}
			})
		}
	})

	if cfg.MCP != nil {
		r.Handle("/mcp", cfg.MCP)
		r.Handle("/mcp/*", cfg.MCP)
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleList(res app.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := res.List(r.Context(), queryParams(r))
		if err != nil {
			WriteError(w, r, s.logger, err)
			return
		}
		WriteResult(w, http.StatusOK, out)
	}
}

func (s *Server) handleForm(res app.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		act := q.Get("act")
		if act == "" {
			act = string(collection.Add)
		}
		out, err := res.Form(r.Context(), act, q.Get("id"))
		if err != nil {
			WriteError(w, r, s.logger, err)
			return
		}
		WriteResult(w, http.StatusOK, out)
	}
}

// SubmitResult is the body returned by a successful add or edit.
type SubmitResult struct {
	ID string `json:"id"`
}

func (s *Server) handleSubmit(res app.Resource, act collection.Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := readBody(r)
		if err != nil {
			WriteError(w, r, s.logger, err)
			return
		}
		id, err := res.Submit(r.Context(), act, chi.URLParam(r, "id"), body)
		if err != nil {
			WriteError(w, r, s.logger, err)
			return
		}
		code := http.StatusOK
		if act == collection.Add {
			code = http.StatusCreated
		}
		WriteResult(w, code, SubmitResult{ID: id})
	}
}

// DeleteResult is the status transition made by a soft delete. The stored
// document is not echoed because it may carry a password hash.
type DeleteResult struct {
	ID   string        `json:"id"`
	From status.Status `json:"from"`
	To   status.Status `json:"to"`
}

func (s *Server) handleSoftDelete(res app.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := res.SoftDelete(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			WriteError(w, r, s.logger, err)
			return
		}
		WriteResult(w, http.StatusOK, DeleteResult{ID: m.Document.ID, From: m.From, To: m.To})
	}
}

func (s *Server) handleGetRates(w http.ResponseWriter, r *http.Request) {
	out, err := s.rates.Current(r.Context())
	if err != nil {
		WriteError(w, r, s.logger, err)
		return
	}
	WriteResult(w, http.StatusOK, out)
}

func (s *Server) handleSetRates(w http.ResponseWriter, r *http.Request) {
	var in rate.Rates
	if err := decodeBody(r, &in); err != nil {
		WriteError(w, r, s.logger, err)
		return
	}
	out, err := s.rates.Set(r.Context(), in)
	if err != nil {
		WriteError(w, r, s.logger, err)
		return
	}
	WriteResult(w, http.StatusOK, out)
}

// QuoteResult is the driver pay of one trip.
type QuoteResult struct {
	Hours      float64 `json:"hours"`
	Distance   float64 `json:"distance"`
	DriverPaid float64 `json:"driverPaid"`
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	hours, err := parseFloat(q.Get("hours"), "hours")
	if err != nil {
		WriteError(w, r, s.logger, err)
		return
	}
	distance, err := parseFloat(q.Get("distance"), "distance")
	if err != nil {
		WriteError(w, r, s.logger, err)
		return
	}
	pay, err := s.rates.Quote(r.Context(), hours, distance)
	if err != nil {
		WriteError(w, r, s.logger, err)
		return
	}
	WriteResult(w, http.StatusOK, QuoteResult{Hours: hours, Distance: distance, DriverPaid: pay})
}

func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := audit.ListOptions{Collection: q.Get("collection")}
	if id := q.Get("recordId"); id != "" {
		opts.RecordID = &id
	}
	var err error
	if opts.Limit, err = parseInt(q.Get("limit"), "limit"); err != nil {
		WriteError(w, r, s.logger, err)
		return
	}
	if opts.Offset, err = parseInt(q.Get("offset"), "offset"); err != nil {
		WriteError(w, r, s.logger, err)
		return
	}
	entries, err := s.audit.List(r.Context(), opts)
	if err != nil {
		WriteError(w, r, s.logger, err)
		return
	}
	WriteResult(w, http.StatusOK, entries)
}

func queryParams(r *http.Request) listview.QueryParams {
	q := r.URL.Query()
	return listview.QueryParams{
		Sort:        q.Get("sort"),
		Order:       q.Get("order"),
		Filter:      q.Get("filter"),
		Page:        q.Get("page"),
		RowsPerPage: q.Get("rowsPerPage"),
	}
}

func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", apierror.ErrBadRequest, err)
	}
	return body, nil
}

func decodeBody(r *http.Request, v any) error {
	body, err := readBody(r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: decoding body: %w", apierror.ErrBadRequest, err)
	}
	return nil
}

func parseFloat(raw, name string) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", apierror.ErrBadRequest, name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: invalid %s %q", apierror.ErrBadRequest, name, raw)
	}
	return v, nil
}

func parseInt(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", apierror.ErrBadRequest, name, raw)
	}
	return v, nil
}
