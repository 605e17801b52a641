package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rocklab/geoqa/internal/core/domain"
	"github.com/rocklab/geoqa/internal/observability/metrics"
)

type fakeAnswerer struct {
	result *domain.Result
	err    error
}

func (f *fakeAnswerer) Answer(_ context.Context, _, _ string) (*domain.Result, error) {
	return f.result, f.err
}

type fakeRefresher struct {
	calls int
	err   error
}

func (f *fakeRefresher) RequestRefresh(_ context.Context) error {
	f.calls++
	return f.err
}

type fakeQueryLog struct {
	entries []domain.QueryLogEntry
	err     error
}

func (f *fakeQueryLog) Insert(_ context.Context, entry domain.QueryLogEntry) error {
	f.entries = append(f.entries, entry)
	return f.err
}

func okResult() *domain.Result {
	return &domain.Result{
		Answer:        "From CPT Basics: cone penetration test.",
		Citations:     []domain.Citation{{DocumentID: "cpt", Title: "CPT Basics", Score: 0.8}},
		ToolsUsed:     []domain.ToolInvocation{},
		Trace:         []domain.TraceStep{{Name: "decide", Outcome: domain.OutcomeOK}},
		Engine:        domain.EngineRules,
		RetrievalUsed: true,
		DurationMS:    12.5,
	}
}

func newTestRouter(answerer *fakeAnswerer, refresher *fakeRefresher, queryLog *fakeQueryLog) http.Handler {
	var rt *Router
	if queryLog == nil {
		rt = NewRouter(answerer, refresher, nil, nil, Limits{}, nil)
	} else {
		rt = NewRouter(answerer, refresher, queryLog, nil, Limits{}, nil)
	}
	return rt.Handler()
}

func postAsk(t *testing.T, handler http.Handler, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/qa/ask", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAskReturnsFullContract(t *testing.T) {
	queryLog := &fakeQueryLog{}
	handler := newTestRouter(&fakeAnswerer{result: okResult()}, &fakeRefresher{}, queryLog)

	rec := postAsk(t, handler, `{"question": "What is CPT analysis?"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp askResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Answer == "" || len(resp.Citations) != 1 || len(resp.Trace) != 1 {
		t.Fatalf("incomplete response %+v", resp)
	}
	if resp.TraceID == "" {
		t.Fatalf("expected generated trace id")
	}
	if rec.Header().Get("X-Request-Id") != resp.TraceID {
		t.Fatalf("expected trace id to match request id header")
	}
	if resp.Engine != domain.EngineRules {
		t.Fatalf("expected decision engine in response, got %q", resp.Engine)
	}

	if len(queryLog.entries) != 1 {
		t.Fatalf("expected one query log entry, got %d", len(queryLog.entries))
	}
	if queryLog.entries[0].Question != "What is CPT analysis?" {
		t.Fatalf("unexpected logged question %q", queryLog.entries[0].Question)
	}
}

func TestAskValidation(t *testing.T) {
	handler := newTestRouter(&fakeAnswerer{result: okResult()}, &fakeRefresher{}, nil)

	cases := []struct {
		name    string
		payload string
	}{
		{"not json", `{{{`},
		{"missing question", `{"context": "x"}`},
		{"too short", `{"question": "ab"}`},
		{"too long", fmt.Sprintf(`{"question": %q}`, strings.Repeat("q", 2001))},
		{"oversized context", fmt.Sprintf(`{"question": "what is cpt", "context": %q}`, strings.Repeat("c", 5001))},
		{"script tag", `{"question": "tell me <script>alert(1)</script>"}`},
		{"php tag", `{"question": "what is <?php echo 1 ?>"}`},
		{"asp tag", `{"question": "explain <% this %> thing"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postAsk(t, handler, tc.payload)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAskCountsLimitsInRunes(t *testing.T) {
	handler := newTestRouter(&fakeAnswerer{result: okResult()}, &fakeRefresher{}, nil)

	within := fmt.Sprintf(`{"question": %q}`, strings.Repeat("å", 2000))
	if rec := postAsk(t, handler, within); rec.Code != http.StatusOK {
		t.Fatalf("expected 2000-rune multibyte question accepted, got %d: %s", rec.Code, rec.Body.String())
	}

	over := fmt.Sprintf(`{"question": %q}`, strings.Repeat("å", 2001))
	if rec := postAsk(t, handler, over); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 2001-rune question rejected, got %d", rec.Code)
	}
}

func TestAskRecordsDecisionMetric(t *testing.T) {
	serverMetrics := metrics.NewHTTPServerMetrics(serviceName)
	rt := NewRouter(&fakeAnswerer{result: okResult()}, &fakeRefresher{}, nil, serverMetrics, Limits{}, nil)
	handler := rt.Handler()

	if rec := postAsk(t, handler, `{"question": "What is CPT analysis?"}`); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	want := `geoqa_qa_decisions_total{engine="rules",service="geoqa-api"} 1`
	if !strings.Contains(rec.Body.String(), want) {
		t.Fatalf("expected %q in metrics output, got:\n%s", want, rec.Body.String())
	}
}

func TestAskMethodNotAllowed(t *testing.T) {
	handler := newTestRouter(&fakeAnswerer{result: okResult()}, &fakeRefresher{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/v1/qa/ask", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestAskMapsDomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.WrapError(domain.ErrInvalidInput, "answer", errors.New("bad")), http.StatusBadRequest},
		{domain.WrapError(domain.ErrConfiguration, "index", errors.New("empty corpus")), http.StatusServiceUnavailable},
		{domain.WrapError(domain.ErrBackendUnavailable, "generate", errors.New("down")), http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		handler := newTestRouter(&fakeAnswerer{err: tc.err}, &fakeRefresher{}, nil)
		rec := postAsk(t, handler, `{"question": "what is cpt analysis"}`)
		if rec.Code != tc.code {
			t.Fatalf("error %v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
	}
}

func TestAskSucceedsWhenQueryLogFails(t *testing.T) {
	queryLog := &fakeQueryLog{err: errors.New("db down")}
	handler := newTestRouter(&fakeAnswerer{result: okResult()}, &fakeRefresher{}, queryLog)

	rec := postAsk(t, handler, `{"question": "what is cpt analysis"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("query log failure must not fail the request, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	handler := newTestRouter(&fakeAnswerer{result: okResult()}, &fakeRefresher{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRefreshIndex(t *testing.T) {
	refresher := &fakeRefresher{}
	handler := newTestRouter(&fakeAnswerer{result: okResult()}, refresher, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/index/refresh", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	if refresher.calls != 1 {
		t.Fatalf("expected one refresh call, got %d", refresher.calls)
	}
}

func TestRefreshIndexUnconfigured(t *testing.T) {
	rt := NewRouter(&fakeAnswerer{result: okResult()}, nil, nil, nil, Limits{}, nil)
	req := httptest.NewRequest(http.MethodPost, "/v1/index/refresh", nil)
	rec := httptest.NewRecorder()
	rt.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
