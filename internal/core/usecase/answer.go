package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/rocklab/geoqa/internal/core/domain"
	"github.com/rocklab/geoqa/internal/core/ports"
	"github.com/rocklab/geoqa/internal/core/tools"
)

const snippetChars = 400

// AnswerUseCase orchestrates one question: decide, run the enabled
// branches, assemble. Branches are independent and run concurrently;
// a failing branch is recorded as an error outcome and never aborts
// its siblings.
type AnswerUseCase struct {
	strategy        ports.DecisionStrategy
	retriever       ports.Retriever
	docs            ports.DocumentStore
	generator       ports.ResponseGenerator
	topK            int
	responseTimeout time.Duration
	logger          *slog.Logger
}

func NewAnswerUseCase(
	strategy ports.DecisionStrategy,
	retriever ports.Retriever,
	docs ports.DocumentStore,
	generator ports.ResponseGenerator,
	topK int,
	responseTimeout time.Duration,
	logger *slog.Logger,
) *AnswerUseCase {
	if topK <= 0 {
		topK = 3
	}
	if responseTimeout <= 0 {
		responseTimeout = 20 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AnswerUseCase{
		strategy:        strategy,
		retriever:       retriever,
		docs:            docs,
		generator:       generator,
		topK:            topK,
		responseTimeout: responseTimeout,
		logger:          logger,
	}
}

type branchOutput struct {
	step       domain.TraceStep
	hits       []domain.RetrievalHit
	invocation *domain.ToolInvocation
}

func (uc *AnswerUseCase) Answer(ctx context.Context, question, questionContext string) (*domain.Result, error) {
	if strings.TrimSpace(question) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "answer", fmt.Errorf("question is empty"))
	}
	started := time.Now()

	decideStart := time.Now()
	decision := uc.strategy.Decide(ctx, question, questionContext)
	decideOutcome := domain.OutcomeOK
	if decision.Engine == domain.EngineFallback {
		decideOutcome = domain.OutcomeFallback
	}
	decideStep := domain.NewTraceStep("decide", decideStart, decideOutcome, decision.Engine)

	// Branch results land in fixed slots so the trace order is stable
	// no matter which goroutine finishes first. Assembly waits for
	// every enabled branch; none is abandoned.
	var retrieval, settlement, bearing *branchOutput
	var wg sync.WaitGroup

	if decision.NeedsRetrieval {
		wg.Add(1)
		go func() {
			defer wg.Done()
			retrieval = uc.runRetrieval(ctx, question)
		}()
	}
	if decision.NeedsSettlement {
		wg.Add(1)
		go func() {
			defer wg.Done()
			settlement = runSettlement(decision.SettlementParams)
		}()
	}
	if decision.NeedsBearing {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bearing = runBearing(decision.BearingParams)
		}()
	}
	wg.Wait()

	var hits []domain.RetrievalHit
	if retrieval != nil {
		hits = retrieval.hits
	}
	citations := uc.resolveCitations(hits)

	toolsUsed := make([]domain.ToolInvocation, 0, 2)
	if settlement != nil && settlement.invocation != nil {
		toolsUsed = append(toolsUsed, *settlement.invocation)
	}
	if bearing != nil && bearing.invocation != nil {
		toolsUsed = append(toolsUsed, *bearing.invocation)
	}

	answer, assembleStep := uc.assemble(ctx, question, hits, toolsUsed)

	trace := make([]domain.TraceStep, 0, 5)
	trace = append(trace, decideStep)
	for _, branch := range []*branchOutput{retrieval, settlement, bearing} {
		if branch != nil {
			trace = append(trace, branch.step)
		}
	}
	trace = append(trace, assembleStep)

	return &domain.Result{
		Answer:            answer,
		Citations:         citations,
		ToolsUsed:         toolsUsed,
		Trace:             trace,
		DecisionReasoning: decision.Reasoning,
		Engine:            decision.Engine,
		RetrievalUsed:     decision.NeedsRetrieval,
		DurationMS:        float64(time.Since(started).Microseconds()) / 1000.0,
	}, nil
}

func (uc *AnswerUseCase) runRetrieval(ctx context.Context, question string) *branchOutput {
	start := time.Now()
	hits, err := uc.retriever.Retrieve(ctx, question, uc.topK)
	if err != nil {
		// Retrieval failure degrades to an empty result set.
		uc.logger.Warn("retrieval_failed", "error", err)
		return &branchOutput{step: domain.NewTraceStep("retrieval", start, domain.OutcomeError, err.Error())}
	}
	detail := fmt.Sprintf("%d hits", len(hits))
	return &branchOutput{
		step: domain.NewTraceStep("retrieval", start, domain.OutcomeOK, detail),
		hits: hits,
	}
}

func runSettlement(params *domain.SettlementParams) *branchOutput {
	start := time.Now()
	if params == nil {
		inv := domain.ToolInvocation{
			Tool:  tools.ToolSettlement,
			Error: "missing parameters: load and modulus are required",
		}
		return &branchOutput{
			step:       domain.NewTraceStep("settlement_tool", start, domain.OutcomeError, inv.Error),
			invocation: &inv,
		}
	}

	inv := domain.ToolInvocation{
		Tool:  tools.ToolSettlement,
		Input: map[string]float64{"load": params.Load, "modulus": params.Modulus},
	}
	value, err := tools.ComputeSettlement(params.Load, params.Modulus)
	if err != nil {
		inv.Error = err.Error()
		return &branchOutput{
			step:       domain.NewTraceStep("settlement_tool", start, domain.OutcomeError, inv.Error),
			invocation: &inv,
		}
	}
	inv.Output = map[string]float64{"settlement": value}
	return &branchOutput{
		step:       domain.NewTraceStep("settlement_tool", start, domain.OutcomeOK, ""),
		invocation: &inv,
	}
}

func runBearing(params *domain.BearingParams) *branchOutput {
	start := time.Now()
	if params == nil {
		inv := domain.ToolInvocation{
			Tool:  tools.ToolBearing,
			Error: "missing parameters: width, unit weight, depth, and friction angle are required",
		}
		return &branchOutput{
			step:       domain.NewTraceStep("bearing_capacity_tool", start, domain.OutcomeError, inv.Error),
			invocation: &inv,
		}
	}

	inv := domain.ToolInvocation{
		Tool: tools.ToolBearing,
		Input: map[string]float64{
			"width":          params.Width,
			"unit_weight":    params.UnitWeight,
			"depth":          params.Depth,
			"friction_angle": params.FrictionAngle,
		},
	}
	result, err := tools.ComputeBearing(params.Width, params.UnitWeight, params.Depth, params.FrictionAngle)
	if err != nil {
		inv.Error = err.Error()
		return &branchOutput{
			step:       domain.NewTraceStep("bearing_capacity_tool", start, domain.OutcomeError, inv.Error),
			invocation: &inv,
		}
	}
	inv.Output = map[string]float64{"qu": result.Qu, "nq": result.Nq, "ngamma": result.Ngamma}
	return &branchOutput{
		step:       domain.NewTraceStep("bearing_capacity_tool", start, domain.OutcomeOK, ""),
		invocation: &inv,
	}
}

func (uc *AnswerUseCase) resolveCitations(hits []domain.RetrievalHit) []domain.Citation {
	citations := make([]domain.Citation, 0, len(hits))
	for _, hit := range hits {
		title := hit.DocumentID
		if doc, ok := uc.docs.Get(hit.DocumentID); ok {
			title = doc.Title
		}
		citations = append(citations, domain.Citation{
			DocumentID: hit.DocumentID,
			Title:      title,
			Score:      hit.Score,
		})
	}
	return citations
}

func (uc *AnswerUseCase) retrievedContexts(hits []domain.RetrievalHit) []domain.RetrievedContext {
	contexts := make([]domain.RetrievedContext, 0, len(hits))
	for _, hit := range hits {
		doc, ok := uc.docs.Get(hit.DocumentID)
		if !ok {
			continue
		}
		contexts = append(contexts, domain.RetrievedContext{
			DocumentID: doc.ID,
			Title:      doc.Title,
			Snippet:    snippet(doc.Body, snippetChars),
			Score:      hit.Score,
		})
	}
	return contexts
}

func snippet(body string, limit int) string {
	runes := []rune(body)
	if len(runes) <= limit {
		return body
	}
	return string(runes[:limit])
}
