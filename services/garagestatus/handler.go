package garagestatus

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"garagewatch-backend/lib/scrapers/sjsuparking"
)

// HTTP trigger for external schedulers. One GET runs one pipeline
// invocation; the shared secret gates every call.
type Handler struct {
	Secret  string
	Service Service
}

type runResponse struct {
	Ok          bool           `json:"ok"`
	Inserted    int            `json:"inserted"`
	FetchedAt   string         `json:"fetchedAt"`
	LastUpdated *string        `json:"lastUpdated"`
	Statuses    map[string]int `json:"statuses"`
	Note        string         `json:"note,omitempty"`
}

type errorResponse struct {
	Error       string         `json:"error"`
	Message     string         `json:"message"`
	FetchedAt   string         `json:"fetchedAt,omitempty"`
	LastUpdated *string        `json:"lastUpdated,omitempty"`
	Statuses    map[string]int `json:"statuses,omitempty"`
}

// Stateless guard, independent of the pipeline: the caller passes the
// shared secret either as a bearer header or a `token` query parameter.
func authorized(r *http.Request, secret string) bool {
	if r.Header.Get("Authorization") == "Bearer "+secret {
		return true
	}
	return r.URL.Query().Get("token") == secret
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{
			Error:   "method_not_allowed",
			Message: "only GET and HEAD are accepted",
		})
		return
	}
	if h.Secret == "" {
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "config",
			Message: "shared secret is not configured",
		})
		return
	}
	if !authorized(r, h.Secret) {
		writeJSON(w, http.StatusUnauthorized, errorResponse{
			Error:   "unauthorized",
			Message: "invalid or missing token",
		})
		return
	}
	// checked eagerly so a broken deployment fails before hitting the
	// upstream site
	if h.Service.Sink == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "config",
			Message: "sink is not configured",
		})
		return
	}

	result, err := h.Service.Run(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "scrape run failed", "err", err)
		switch {
		case errors.Is(err, sjsuparking.ErrFetch):
			writeJSON(w, http.StatusBadGateway, errorResponse{
				Error:   "fetch",
				Message: err.Error(),
			})
		case errors.Is(err, ErrSinkWrite):
			// the statuses were extracted before the write failed, hand
			// them back so the failure is still diagnosable
			writeJSON(w, http.StatusBadGateway, errorResponse{
				Error:       "sink",
				Message:     err.Error(),
				FetchedAt:   result.FetchedAt.Format(time.RFC3339),
				LastUpdated: optional(result.LastUpdated),
				Statuses:    result.Statuses,
			})
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse{
				Error:   "internal",
				Message: err.Error(),
			})
		}
		return
	}

	res := runResponse{
		Ok:          true,
		Inserted:    result.Inserted,
		FetchedAt:   result.FetchedAt.Format(time.RFC3339),
		LastUpdated: optional(result.LastUpdated),
		Statuses:    result.Statuses,
	}
	if len(result.Statuses) == 0 {
		// an empty page is a legitimate state, not a failure
		res.Note = "no garages parsed; nothing stored"
	}
	writeJSON(w, http.StatusOK, res)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		slog.Error("failed to encode response body", "err", err)
	}
}
