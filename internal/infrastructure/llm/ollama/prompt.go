package ollama

import (
	"fmt"
	"strings"

	"github.com/rocklab/geoqa/internal/core/domain"
)

func buildAnswerPrompt(question string, contexts []domain.RetrievedContext, tools []domain.ToolInvocation) string {
	var contextBuilder strings.Builder
	for idx, c := range contexts {
		contextBuilder.WriteString(fmt.Sprintf(
			"[%d] doc=%s title=%q score=%.3f\n%s\n\n",
			idx+1,
			c.DocumentID,
			c.Title,
			c.Score,
			c.Snippet,
		))
	}

	var toolBuilder strings.Builder
	for _, inv := range tools {
		if inv.Succeeded() {
			toolBuilder.WriteString(fmt.Sprintf("tool=%s input=%v output=%v\n", inv.Tool, inv.Input, inv.Output))
		} else {
			toolBuilder.WriteString(fmt.Sprintf("tool=%s input=%v error=%s\n", inv.Tool, inv.Input, inv.Error))
		}
	}
	if toolBuilder.Len() == 0 {
		toolBuilder.WriteString("none\n")
	}

	return fmt.Sprintf(`You are a geotechnical engineering assistant.
Answer the question only from the reference passages and tool results below.
Report calculated values exactly as given; never recompute them.
If the material is insufficient, say so directly.

Question:
%s

Tool results:
%s
References:
%s`, question, toolBuilder.String(), contextBuilder.String())
}
