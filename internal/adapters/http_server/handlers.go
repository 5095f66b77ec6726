// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"flex_reviews/internal/app"
	"flex_reviews/internal/domain"
)

const maxBodyBytes = 1 << 20

type Handlers struct {
	Reviews   *app.ReviewService
	Approvals *app.ApprovalService
}

// envelope is the success shape shared by every endpoint.
type envelope struct {
	Status string `json:"status"`
	Result any    `json:"result"`
}

type ack struct {
	Status string `json:"status"`
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/health", func(w http.ResponseWriter, r *http.Request) { writeJSON(w, http.StatusOK, ack{Status: "ok"}) })
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/api", func(r chi.Router) {
		r.Get("/reviews/hostaway", h.hostawayReviews)
		r.Get("/reviews/google", h.googleReviews)
		r.Get("/reviews/selected", h.selectedReviews)
		r.Post("/reviews/approve", h.approve)
		r.Get("/approvals", h.listApprovals)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeResult sends the success envelope with a weak ETag so the dashboard can poll cheaply.
func writeResult(w http.ResponseWriter, r *http.Request, result any) {
	etag, body := calcETagAndBody(envelope{Status: "success", Result: result})
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not encode response")
		return
	}
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func (h *Handlers) hostawayReviews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := app.Filter{
		ListingID: q.Get("listingId"),
		Type:      q.Get("type"),
		Status:    q.Get("status"),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
		Source:    q.Get("source"),
	}
	if s := strings.TrimSpace(q.Get("minRating")); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid minRating", "minRating must be a number")
			return
		}
		f.MinRating = &v
	}
	if s := strings.TrimSpace(q.Get("approved")); s != "" {
		v, err := parseBoolParam(s)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid approved", "approved must be a boolean")
			return
		}
		f.Approved = &v
	}

	out, err := h.Reviews.Reviews(r.Context(), f)
	if err != nil {
		log.Error().Err(err).Msg("list hostaway reviews failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not load reviews")
		return
	}
	writeResult(w, r, out)
}

func (h *Handlers) googleReviews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := h.Reviews.PlacesReviews(r.Context(), q.Get("query"), q.Get("placeId"), q.Get("listingId"))
	if err != nil {
		log.Error().Err(err).Msg("list google reviews failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not load reviews")
		return
	}
	writeResult(w, r, out)
}

func (h *Handlers) selectedReviews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := h.Reviews.Selected(r.Context(), q.Get("listingId"), q.Get("source"))
	if err != nil {
		log.Error().Err(err).Msg("list selected reviews failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not load reviews")
		return
	}
	writeResult(w, r, out)
}

func (h *Handlers) approve(w http.ResponseWriter, r *http.Request) {
	var req app.ApproveRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", "request body must be a JSON object")
		return
	}
	if err := h.Approvals.Approve(r.Context(), req); err != nil {
		if errors.Is(err, domain.ErrInvalid) {
			writeProblem(w, http.StatusBadRequest, "Validation failed", strings.TrimPrefix(err.Error(), domain.ErrInvalid.Error()+": "))
			return
		}
		log.Error().Err(err).Str("review_id", req.ReviewID).Msg("save approval failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not save approval")
		return
	}
	writeJSON(w, http.StatusOK, ack{Status: "success"})
}

func (h *Handlers) listApprovals(w http.ResponseWriter, r *http.Request) {
	out, err := h.Approvals.List(r.Context(), r.URL.Query().Get("channel"))
	if err != nil {
		log.Error().Err(err).Msg("list approvals failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not load approvals")
		return
	}
	writeResult(w, r, out)
}

// parseBoolParam accepts the spellings dashboards commonly send for query booleans.
func parseBoolParam(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	}
	return false, strconv.ErrSyntax
}
