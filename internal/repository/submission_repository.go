package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/testpick/testpick-api/internal/models"
	"github.com/testpick/testpick-api/pkg/logger"
	"github.com/testpick/testpick-api/pkg/metrics"
)

// SubmissionStore is the persistence capability the service layer consumes.
type SubmissionStore interface {
	Create(ctx context.Context, req *models.SubmitRequest) (*models.Submission, error)
}

// SubmissionRepository handles submission data access
type SubmissionRepository struct {
	pool *pgxpool.Pool
}

var _ SubmissionStore = (*SubmissionRepository)(nil)

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(pool *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{pool: pool}
}

// Create inserts a new submission and returns the persisted record.
// An empty phone is stored as NULL, not as an empty string.
func (r *SubmissionRepository) Create(ctx context.Context, req *models.SubmitRequest) (*models.Submission, error) {
	start := time.Now()
	operation := "createSubmission"

	query := `
		INSERT INTO submissions (framework, name, email, phone, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	sub := &models.Submission{
		Framework:   req.Framework,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       nilIfEmpty(req.Phone),
		Description: req.Description,
	}

	err := r.pool.QueryRow(ctx, query,
		sub.Framework,
		sub.Name,
		sub.Email,
		sub.Phone,
		sub.Description,
	).Scan(&sub.ID, &sub.CreatedAt)

	duration := metrics.MeasureDuration(start)

	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.Int64("submission_id", sub.ID))

	return sub, nil
}

// recordMetrics records database operation metrics
func recordMetrics(operation, status string, duration float64) {
	metrics.DBOperationDuration.WithLabelValues(operation, status).Observe(duration)
	metrics.DBOperationTotal.WithLabelValues(operation, status).Inc()
}

// nilIfEmpty returns nil if string is empty, otherwise returns pointer to string
func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
