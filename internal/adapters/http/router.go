package httpadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rocklab/geoqa/internal/core/domain"
	"github.com/rocklab/geoqa/internal/core/ports"
	"github.com/rocklab/geoqa/internal/observability/metrics"
)

const serviceName = "geoqa-api"

type Limits struct {
	MaxQuestionChars int
	MaxContextChars  int
}

func (l Limits) normalize() Limits {
	out := l
	if out.MaxQuestionChars <= 0 {
		out.MaxQuestionChars = 2000
	}
	if out.MaxContextChars <= 0 {
		out.MaxContextChars = 5000
	}
	return out
}

type Router struct {
	answerer  ports.QuestionAnswerer
	refresher ports.IndexRefresher
	queryLog  ports.QueryLogStore
	metrics   *metrics.HTTPServerMetrics
	limits    Limits
	logger    *slog.Logger
}

func NewRouter(
	answerer ports.QuestionAnswerer,
	refresher ports.IndexRefresher,
	queryLog ports.QueryLogStore,
	serverMetrics *metrics.HTTPServerMetrics,
	limits Limits,
	logger *slog.Logger,
) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		answerer:  answerer,
		refresher: refresher,
		queryLog:  queryLog,
		metrics:   serverMetrics,
		limits:    limits.normalize(),
		logger:    logger,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/qa/ask", rt.ask)
	mux.HandleFunc("/v1/index/refresh", rt.refreshIndex)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	var handler http.Handler = mux
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	return requestIDMiddleware(accessLogMiddleware(handler))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type askRequest struct {
	Question string `json:"question"`
	Context  string `json:"context"`
}

type askResponse struct {
	Answer            string                  `json:"answer"`
	Citations         []domain.Citation       `json:"citations"`
	ToolsUsed         []domain.ToolInvocation `json:"tools_used"`
	Trace             []domain.TraceStep      `json:"trace"`
	TraceID           string                  `json:"trace_id"`
	DecisionReasoning string                  `json:"decision_reasoning"`
	Engine            string                  `json:"engine"`
	RetrievalUsed     bool                    `json:"retrieval_used"`
	DurationMS        float64                 `json:"duration_ms"`
}

func (rt *Router) ask(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if msg := rt.validateAsk(req); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	result, err := rt.answerer.Answer(r.Context(), req.Question, req.Context)
	if err != nil {
		status := mapErrorToHTTPStatus(err)
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	traceID := requestIDFromContext(r.Context())
	rt.recordAnswer(r.Context(), traceID, req.Question, result)

	writeJSON(w, http.StatusOK, askResponse{
		Answer:            result.Answer,
		Citations:         result.Citations,
		ToolsUsed:         result.ToolsUsed,
		Trace:             result.Trace,
		TraceID:           traceID,
		DecisionReasoning: result.DecisionReasoning,
		Engine:            result.Engine,
		RetrievalUsed:     result.RetrievalUsed,
		DurationMS:        result.DurationMS,
	})
}

func (rt *Router) validateAsk(req askRequest) string {
	question := strings.TrimSpace(req.Question)
	if utf8.RuneCountInString(question) < 3 {
		return "question must be at least 3 characters"
	}
	if utf8.RuneCountInString(req.Question) > rt.limits.MaxQuestionChars {
		return "question is too long"
	}
	if utf8.RuneCountInString(req.Context) > rt.limits.MaxContextChars {
		return "context is too long"
	}
	for _, field := range []string{req.Question, req.Context} {
		lowered := strings.ToLower(field)
		for _, marker := range []string{"<script", "<?php", "<%"} {
			if strings.Contains(lowered, marker) {
				return "input contains disallowed content"
			}
		}
	}
	return ""
}

// recordAnswer emits metrics and persists the query log. Both are
// best effort; the response is already decided.
func (rt *Router) recordAnswer(ctx context.Context, traceID, question string, result *domain.Result) {
	if rt.metrics != nil {
		rt.metrics.RecordAnswer(serviceName, len(result.Citations), time.Duration(result.DurationMS*float64(time.Millisecond)))
		rt.metrics.RecordDecision(serviceName, result.Engine)
		for _, inv := range result.ToolsUsed {
			status := "ok"
			if !inv.Succeeded() {
				status = "error"
			}
			rt.metrics.RecordToolInvocation(serviceName, inv.Tool, status)
		}
	}

	if rt.queryLog == nil {
		return
	}
	tools := make([]string, 0, len(result.ToolsUsed))
	for _, inv := range result.ToolsUsed {
		tools = append(tools, inv.Tool)
	}
	entry := domain.QueryLogEntry{
		TraceID:       traceID,
		Question:      question,
		Answer:        result.Answer,
		Citations:     result.Citations,
		ToolsUsed:     tools,
		RetrievalUsed: result.RetrievalUsed,
		DurationMS:    int64(result.DurationMS),
		CreatedAt:     time.Now().UTC(),
	}
	if err := rt.queryLog.Insert(ctx, entry); err != nil {
		rt.logger.Warn("query_log_insert_failed", "trace_id", traceID, "error", err)
	}
}

func (rt *Router) refreshIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if rt.refresher == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "index refresh is not configured"})
		return
	}

	if err := rt.refresher.RequestRefresh(r.Context()); err != nil {
		status := mapErrorToHTTPStatus(err)
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "refresh requested"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
