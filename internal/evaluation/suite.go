package evaluation

import (
	"context"
	"strings"

	"github.com/rocklab/geoqa/internal/core/ports"
)

type RetrievalReport struct {
	HitAtK         float64
	AvgConfidence  float64
	TotalEvaluated int
	Details        []RetrievalDetail
}

type RetrievalDetail struct {
	Question  string
	Expected  []string
	Retrieved []string
	Hit       bool
	TopScore  float64
}

type AnswerReport struct {
	KeywordMatchRate float64
	ToolAccuracy     float64
	TotalEvaluated   int
	Details          []AnswerDetail
}

type AnswerDetail struct {
	Question     string
	KeywordScore float64
	ToolsUsed    []string
	AnswerLength int
}

// EvaluateRetrieval scores Hit@k over the cases that name expected
// sources. A case hits when any expected document appears in the top k.
func EvaluateRetrieval(ctx context.Context, retriever ports.Retriever, cases []Case, k int) (RetrievalReport, error) {
	report := RetrievalReport{}
	hits := 0
	var confidenceSum float64
	scored := 0

	for _, c := range cases {
		if len(c.ExpectedSources) == 0 {
			continue
		}
		report.TotalEvaluated++

		results, err := retriever.Retrieve(ctx, c.Question, k)
		if err != nil {
			return RetrievalReport{}, err
		}

		retrieved := make([]string, 0, len(results))
		for _, hit := range results {
			retrieved = append(retrieved, hit.DocumentID)
		}

		hit := false
		for _, expected := range c.ExpectedSources {
			for _, got := range retrieved {
				if got == expected {
					hit = true
				}
			}
		}
		if hit {
			hits++
		}

		detail := RetrievalDetail{
			Question:  c.Question,
			Expected:  c.ExpectedSources,
			Retrieved: retrieved,
			Hit:       hit,
		}
		if len(results) > 0 {
			detail.TopScore = float64(results[0].Score)
			confidenceSum += detail.TopScore
			scored++
		}
		report.Details = append(report.Details, detail)
	}

	if report.TotalEvaluated > 0 {
		report.HitAtK = float64(hits) / float64(report.TotalEvaluated)
	}
	if scored > 0 {
		report.AvgConfidence = confidenceSum / float64(scored)
	}
	return report, nil
}

// EvaluateAnswers runs every case through the answerer and scores
// keyword coverage and expected-tool usage. A case counts as matched
// when more than half of its keywords appear in the answer.
func EvaluateAnswers(ctx context.Context, answerer ports.QuestionAnswerer, cases []Case) (AnswerReport, error) {
	report := AnswerReport{TotalEvaluated: len(cases)}
	keywordMatches := 0
	toolHits := 0
	toolCases := 0

	for _, c := range cases {
		result, err := answerer.Answer(ctx, c.Question, "")
		if err != nil {
			return AnswerReport{}, err
		}

		answer := strings.ToLower(result.Answer)
		matched := 0
		for _, keyword := range c.ExpectedKeywords {
			if strings.Contains(answer, strings.ToLower(keyword)) {
				matched++
			}
		}
		score := 0.0
		if len(c.ExpectedKeywords) > 0 {
			score = float64(matched) / float64(len(c.ExpectedKeywords))
		}
		if score > 0.5 {
			keywordMatches++
		}

		toolsUsed := make([]string, 0, len(result.ToolsUsed))
		for _, inv := range result.ToolsUsed {
			toolsUsed = append(toolsUsed, inv.Tool)
		}
		if c.ExpectedTool != "" {
			toolCases++
			for _, tool := range toolsUsed {
				if tool == c.ExpectedTool {
					toolHits++
					break
				}
			}
		}

		report.Details = append(report.Details, AnswerDetail{
			Question:     c.Question,
			KeywordScore: score,
			ToolsUsed:    toolsUsed,
			AnswerLength: len(result.Answer),
		})
	}

	if report.TotalEvaluated > 0 {
		report.KeywordMatchRate = float64(keywordMatches) / float64(report.TotalEvaluated)
	}
	if toolCases > 0 {
		report.ToolAccuracy = float64(toolHits) / float64(toolCases)
	}
	return report, nil
}
