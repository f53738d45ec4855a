// Package httpapi exposes the recommendation engine over HTTP and websocket.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/p-n-ai/pai-recommender/internal/catalog"
	"github.com/p-n-ai/pai-recommender/internal/platform/metrics"
	"github.com/p-n-ai/pai-recommender/internal/platform/validation"
	"github.com/p-n-ai/pai-recommender/internal/recommend"
)

const (
	maxBodyBytes = 64 << 10

	msgEmpty       = "No recommendations found for the chosen inputs. Try selecting other interests or adjust the score."
	msgNoInterests = "No interests selected, recommending content based on score only."
)

// Options configures the handler.
type Options struct {
	DefaultTopK int
	MaxTopK     int
	// Ready reports dependency health for /readyz. Nil means always ready.
	Ready func(ctx context.Context) error
}

// Handler serves the recommendation API.
type Handler struct {
	engine      *recommend.Engine
	defaultTopK int
	maxTopK     int
	ready       func(ctx context.Context) error
}

// New creates a handler over engine.
func New(engine *recommend.Engine, opts Options) *Handler {
	if opts.DefaultTopK <= 0 {
		opts.DefaultTopK = recommend.DefaultTopK
	}
	if opts.MaxTopK < opts.DefaultTopK {
		opts.MaxTopK = opts.DefaultTopK
	}
	return &Handler{
		engine:      engine,
		defaultTopK: opts.DefaultTopK,
		maxTopK:     opts.MaxTopK,
		ready:       opts.Ready,
	}
}

// Routes returns the router with middleware applied.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.handleHealthz)
	mux.HandleFunc("GET /readyz", h.handleReadyz)
	mux.HandleFunc("GET /v1/catalog", h.handleCatalog)
	mux.HandleFunc("GET /v1/subjects", h.handleSubjects)
	mux.HandleFunc("GET /v1/recommend", h.handleRecommendQuery)
	mux.HandleFunc("POST /v1/recommend", h.handleRecommendBody)
	mux.HandleFunc("GET /ws", h.handleWebSocket)
	mux.Handle("GET /metrics", metrics.Handler())
	return instrument(recoverPanics(mux))
}

// RecommendRequest is the JSON form of a recommendation request. Score
// accepts a number or a numeric string; anything else counts as 50.
type RecommendRequest struct {
	Interests []string `json:"interests" validate:"max=50,dive,max=100"`
	Score     any      `json:"score"`
	TopK      *int     `json:"top_k" validate:"omitempty,min=0"`
}

// RecordView is a catalog record with links that are safe to render.
type RecordView struct {
	catalog.Record
	Links map[string]string `json:"links,omitempty"`
}

// RecommendResponse is returned by the recommend endpoints and websocket.
type RecommendResponse struct {
	Difficulty catalog.Difficulty `json:"difficulty"`
	Tier       recommend.Tier     `json:"tier"`
	Count      int                `json:"count"`
	Message    string             `json:"message,omitempty"`
	Records    []RecordView       `json:"records"`
}

type errorResponse struct {
	Error  string                  `json:"error"`
	Detail string                  `json:"detail,omitempty"`
	Fields []validation.FieldError `json:"fields,omitempty"`
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if h.engine.Catalog() == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "no catalog"})
		return
	}
	if h.ready != nil {
		if err := h.ready(r.Context()); err != nil {
			slog.Warn("readiness check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *Handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	c := h.engine.Catalog()
	writeJSON(w, http.StatusOK, map[string]any{
		"source":      c.Source(),
		"fingerprint": c.Fingerprint(),
		"count":       c.Len(),
		"records":     c.Records(),
	})
}

func (h *Handler) handleSubjects(w http.ResponseWriter, r *http.Request) {
	subjects := h.engine.Catalog().Subjects()
	if len(subjects) == 0 {
		subjects = append([]string(nil), catalog.DefaultSubjects...)
	}
	writeJSON(w, http.StatusOK, map[string]any{"subjects": subjects})
}

func (h *Handler) handleRecommendQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var interests []string
	for _, v := range q["interests"] {
		interests = append(interests, strings.Split(v, ",")...)
	}
	req := RecommendRequest{Interests: interests, Score: q.Get("score")}
	if raw := q.Get("top_k"); raw != "" {
		k, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "top_k must be an integer"})
			return
		}
		req.TopK = &k
	}

	h.respond(r.Context(), w, req)
}

func (h *Handler) handleRecommendBody(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if err := decodeRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes), &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body", Detail: err.Error()})
		return
	}
	h.respond(r.Context(), w, req)
}

func (h *Handler) respond(ctx context.Context, w http.ResponseWriter, req RecommendRequest) {
	resp, err := h.recommend(ctx, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// recommend validates req and runs it through the engine.
func (h *Handler) recommend(ctx context.Context, req RecommendRequest) (RecommendResponse, error) {
	if err := validation.Struct(req); err != nil {
		return RecommendResponse{}, err
	}

	topK := h.defaultTopK
	if req.TopK != nil {
		topK = *req.TopK
	}
	if topK > h.maxTopK {
		return RecommendResponse{}, &validation.Error{Fields: []validation.FieldError{
			{Field: "top_k", Rule: "max", Param: strconv.Itoa(h.maxTopK)},
		}}
	}

	res := h.engine.Recommend(ctx, req.Interests, recommend.CoerceScore(req.Score), topK)
	return newResponse(res, len(recommend.NormalizeInterests(req.Interests)) == 0), nil
}

func newResponse(res recommend.Result, noInterests bool) RecommendResponse {
	resp := RecommendResponse{
		Difficulty: res.Difficulty,
		Tier:       res.Tier,
		Count:      len(res.Records),
		Records:    make([]RecordView, 0, len(res.Records)),
	}
	for _, rec := range res.Records {
		view := RecordView{Record: rec}
		if u := rec.QuizURL(); u != "" {
			view.Links = map[string]string{"quiz": u}
		}
		if u := rec.VideoURL(); u != "" {
			if view.Links == nil {
				view.Links = map[string]string{}
			}
			view.Links["video"] = u
		}
		resp.Records = append(resp.Records, view)
	}

	switch {
	case resp.Count == 0:
		resp.Message = msgEmpty
	case noInterests:
		resp.Message = msgNoInterests
	}
	return resp
}

func decodeRequest(body io.Reader, v any) error {
	dec := json.NewDecoder(body)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	return nil
}

func writeError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Detail: verr.Error(), Fields: verr.Fields})
		return
	}
	slog.Error("request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error", Detail: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}
