package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rocklab/geoqa/internal/core/domain"
	"github.com/rocklab/geoqa/internal/core/tools"
)

const emptyAnswer = "No relevant documents or valid calculation parameters were found for this question. " +
	"Try asking about CPT analysis, liquefaction, settlement, or bearing capacity, " +
	"or include numeric parameters such as 'load = 100, modulus = 25000'."

// assemble turns branch outputs into the final answer text. When a
// generation backend is configured it gets the first shot; any backend
// error falls through to the deterministic template, never to the
// caller.
func (uc *AnswerUseCase) assemble(ctx context.Context, question string, hits []domain.RetrievalHit, toolsUsed []domain.ToolInvocation) (string, domain.TraceStep) {
	start := time.Now()
	contexts := uc.retrievedContexts(hits)

	if len(contexts) == 0 && len(toolsUsed) == 0 {
		return emptyAnswer, domain.NewTraceStep("assemble", start, domain.OutcomeOK, "empty")
	}

	if uc.generator != nil {
		genCtx, cancel := context.WithTimeout(ctx, uc.responseTimeout)
		answer, err := uc.generator.GenerateAnswer(genCtx, question, contexts, toolsUsed)
		cancel()
		if err == nil && strings.TrimSpace(answer) != "" {
			return answer, domain.NewTraceStep("assemble", start, domain.OutcomeOK, "backend")
		}
		if err != nil {
			uc.logger.Warn("generation_fallback", "error", err)
		}
		return templateAnswer(contexts, toolsUsed),
			domain.NewTraceStep("assemble", start, domain.OutcomeFallback, "template")
	}

	return templateAnswer(contexts, toolsUsed), domain.NewTraceStep("assemble", start, domain.OutcomeOK, "template")
}

func templateAnswer(contexts []domain.RetrievedContext, toolsUsed []domain.ToolInvocation) string {
	var parts []string

	for _, inv := range toolsUsed {
		parts = append(parts, describeInvocation(inv))
	}

	if len(contexts) > 0 {
		top := contexts[0]
		parts = append(parts, fmt.Sprintf("From %s: %s", top.Title, top.Snippet))
		if len(contexts) > 1 {
			titles := make([]string, 0, len(contexts)-1)
			for _, c := range contexts[1:] {
				titles = append(titles, c.Title)
			}
			parts = append(parts, "See also: "+strings.Join(titles, "; ")+".")
		}
	}

	if len(parts) == 0 {
		return emptyAnswer
	}
	return strings.Join(parts, "\n\n")
}

func describeInvocation(inv domain.ToolInvocation) string {
	switch inv.Tool {
	case tools.ToolSettlement:
		if !inv.Succeeded() {
			return "Settlement calculation failed: " + inv.Error +
				". Provide both a load and a Young's modulus, for example 'load = 100, modulus = 25000'."
		}
		return fmt.Sprintf(
			"Calculated settlement: %.4f (settlement = load / Young's modulus = %g / %g).",
			inv.Output["settlement"], inv.Input["load"], inv.Input["modulus"],
		)
	case tools.ToolBearing:
		if !inv.Succeeded() {
			return "Bearing capacity calculation failed: " + inv.Error +
				". Provide width, unit weight, depth, and friction angle, for example 'B = 2, gamma = 18, Df = 1.5, phi = 30'."
		}
		return fmt.Sprintf(
			"Ultimate bearing capacity (Terzaghi, strip footing): qu = %.2f with Nq = %.2f and Ngamma = %.2f "+
				"(qu = gamma*Df*Nq + 0.5*gamma*B*Ngamma).",
			inv.Output["qu"], inv.Output["nq"], inv.Output["ngamma"],
		)
	default:
		if !inv.Succeeded() {
			return fmt.Sprintf("Tool %s failed: %s.", inv.Tool, inv.Error)
		}
		return fmt.Sprintf("Tool %s completed.", inv.Tool)
	}
}
