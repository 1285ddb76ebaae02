package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/testpick/testpick-api/internal/models"
	"github.com/testpick/testpick-api/internal/repository"
	"github.com/testpick/testpick-api/internal/schema"
	"github.com/testpick/testpick-api/pkg/logger"
	"github.com/testpick/testpick-api/pkg/metrics"
)

// SubmissionService is the authoritative gatekeeper before persistence:
// it re-validates every payload against the shared schema regardless of
// what the client claims to have checked.
type SubmissionService struct {
	repo   repository.SubmissionStore
	schema *schema.Schema
}

// NewSubmissionService creates a new submission service instance
func NewSubmissionService(repo repository.SubmissionStore, sch *schema.Schema) *SubmissionService {
	return &SubmissionService{
		repo:   repo,
		schema: sch,
	}
}

// Submit validates req and persists it. A schema violation is returned as a
// response carrying the field error mapping, not as an error; the error
// return means the submission could not be processed at all.
func (s *SubmissionService) Submit(ctx context.Context, req *models.SubmitRequest) (*models.SubmitResponse, error) {
	fieldErrors, err := s.schema.Validate(req)
	if err != nil {
		metrics.Submissions.WithLabelValues("error").Inc()
		return nil, err
	}

	if fieldErrors != nil {
		metrics.Submissions.WithLabelValues("invalid").Inc()
		logger.Warn("Submission failed validation", zap.Int("field_count", len(fieldErrors)))
		return &models.SubmitResponse{
			Message: models.MsgValidationError,
			Errors:  fieldErrors,
		}, nil
	}

	sub, err := s.repo.Create(ctx, req)
	if err != nil {
		metrics.Submissions.WithLabelValues("error").Inc()
		logger.Error("Failed to persist submission", zap.Error(err))
		return nil, err
	}

	metrics.Submissions.WithLabelValues("success").Inc()
	return &models.SubmitResponse{
		Message: models.MsgSubmitSuccess,
		User:    sub,
	}, nil
}
