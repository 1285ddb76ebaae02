package services

import (
	"context"

	"github.com/testpick/testpick-api/internal/models"
)

// SubmissionServiceInterface defines the interface for submission operations
type SubmissionServiceInterface interface {
	Submit(ctx context.Context, req *models.SubmitRequest) (*models.SubmitResponse, error)
}

// Ensure services implement their interfaces
var _ SubmissionServiceInterface = (*SubmissionService)(nil)
