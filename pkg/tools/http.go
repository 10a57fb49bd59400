package tools

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/philipparndt/takeoff/pkg/takeoff"
)

const maxRequestBody = 1 << 20

// Routes returns the HTTP binding:
//
//	GET  /health
//	GET  /tools
//	POST /tools/{name}
func (r *Registry) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Get("/tools", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"tools": r.List()})
	})

	router.Post("/tools/{name}", func(w http.ResponseWriter, req *http.Request) {
		name := chi.URLParam(req, "name")
		body, err := io.ReadAll(io.LimitReader(req.Body, maxRequestBody))
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if len(body) > 0 && !json.Valid(body) {
			writeError(w, http.StatusBadRequest, ErrInvalidArguments)
			return
		}

		resp, err := r.Call(req.Context(), name, body)
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	})

	return router
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrUnknownTool), errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidArguments),
		errors.Is(err, takeoff.ErrInvalidScaleInput),
		errors.Is(err, takeoff.ErrInsufficientPoints),
		errors.Is(err, takeoff.ErrUnknownKind),
		errors.Is(err, takeoff.ErrInvalidPoint):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
