package ports

import (
	"context"

	"github.com/rocklab/geoqa/internal/core/domain"
)

// QuestionAnswerer is the inbound contract of the QA pipeline.
type QuestionAnswerer interface {
	Answer(ctx context.Context, question, questionContext string) (*domain.Result, error)
}

// IndexRefresher requests a corpus reload and atomic index rebuild.
type IndexRefresher interface {
	RequestRefresh(ctx context.Context) error
}
