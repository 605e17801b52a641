package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/rocklab/geoqa/internal/config"
	"github.com/rocklab/geoqa/internal/core/decision"
	"github.com/rocklab/geoqa/internal/core/usecase"
	"github.com/rocklab/geoqa/internal/corpus"
	"github.com/rocklab/geoqa/internal/embedding/hashed"
	"github.com/rocklab/geoqa/internal/evaluation"
	"github.com/rocklab/geoqa/internal/index"
	"github.com/rocklab/geoqa/internal/observability/logging"
)

// Runs the canonical evaluation suite against the deterministic
// pipeline and prints retrieval and answer quality scores.
func main() {
	cfg := config.Load()
	logger := logging.NewJSONLogger("geoqa-eval", cfg.LogLevel)
	ctx := context.Background()

	docs, err := corpus.LoadFile(cfg.CorpusPath)
	if err != nil {
		log.Fatalf("load corpus: %v", err)
	}
	store, err := corpus.NewStore(docs)
	if err != nil {
		log.Fatalf("init corpus store: %v", err)
	}

	idx := index.New(hashed.New(cfg.EmbeddingDim))
	if err := idx.Rebuild(ctx, store.All()); err != nil {
		log.Fatalf("build index: %v", err)
	}
	retriever := index.NewRetriever(idx, cfg.RetrievalTopK)

	answerer := usecase.NewAnswerUseCase(
		decision.NewDeterministic(),
		retriever,
		store,
		nil,
		cfg.RetrievalTopK,
		time.Duration(cfg.ResponseTimeoutSeconds)*time.Second,
		logger,
	)

	cases := evaluation.CanonicalCases()

	retrieval, err := evaluation.EvaluateRetrieval(ctx, retriever, cases, cfg.RetrievalTopK)
	if err != nil {
		log.Fatalf("evaluate retrieval: %v", err)
	}
	answers, err := evaluation.EvaluateAnswers(ctx, answerer, cases)
	if err != nil {
		log.Fatalf("evaluate answers: %v", err)
	}

	fmt.Println("Retrieval:")
	fmt.Printf("  hit@%d:          %.3f (%d questions)\n", cfg.RetrievalTopK, retrieval.HitAtK, retrieval.TotalEvaluated)
	fmt.Printf("  avg confidence: %.3f\n", retrieval.AvgConfidence)
	for _, d := range retrieval.Details {
		fmt.Printf("  hit=%-5v expected=%v retrieved=%v\n", d.Hit, d.Expected, d.Retrieved)
	}

	fmt.Println("Answers:")
	fmt.Printf("  keyword match rate: %.3f (%d questions)\n", answers.KeywordMatchRate, answers.TotalEvaluated)
	fmt.Printf("  tool accuracy:      %.3f\n", answers.ToolAccuracy)
	for _, d := range answers.Details {
		fmt.Printf("  score=%.2f tools=%v q=%q\n", d.KeywordScore, d.ToolsUsed, d.Question)
	}
}
