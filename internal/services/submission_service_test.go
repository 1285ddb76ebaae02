package services_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/testpick/testpick-api/internal/models"
	"github.com/testpick/testpick-api/internal/schema"
	"github.com/testpick/testpick-api/internal/services"
	"github.com/testpick/testpick-api/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Level: "error", Environment: "development"}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// MockSubmissionStore implements repository.SubmissionStore for testing
type MockSubmissionStore struct {
	mock.Mock
}

func (m *MockSubmissionStore) Create(ctx context.Context, req *models.SubmitRequest) (*models.Submission, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Submission), args.Error(1)
}

func validRequest() *models.SubmitRequest {
	return &models.SubmitRequest{
		Framework:   "Playwright",
		Name:        "Ana",
		Email:       "ana@example.com",
		Phone:       "11999999999",
		Description: "Gosto da sintaxe simples e dos retries automáticos.",
	}
}

func TestSubmissionService_Submit_Success(t *testing.T) {
	mockStore := new(MockSubmissionStore)
	service := services.NewSubmissionService(mockStore, schema.New())
	ctx := context.Background()

	req := validRequest()
	phone := req.Phone
	mockStore.On("Create", ctx, req).Return(&models.Submission{
		ID:          42,
		Framework:   req.Framework,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       &phone,
		Description: req.Description,
	}, nil).Once()

	resp, err := service.Submit(ctx, req)

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, models.MsgSubmitSuccess, resp.Message)
	assert.Empty(t, resp.Errors)
	assert.Equal(t, int64(42), resp.User.ID)
	assert.Equal(t, "11999999999", *resp.User.Phone)

	mockStore.AssertExpectations(t)
}

func TestSubmissionService_Submit_ValidationFailure(t *testing.T) {
	mockStore := new(MockSubmissionStore)
	service := services.NewSubmissionService(mockStore, schema.New())
	ctx := context.Background()

	req := validRequest()
	req.Description = "curto"

	resp, err := service.Submit(ctx, req)

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, models.MsgValidationError, resp.Message)
	assert.Nil(t, resp.User)
	assert.Contains(t, resp.Errors, "description")

	// Nothing is persisted when the payload fails validation
	mockStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmissionService_Submit_TamperedFramework(t *testing.T) {
	mockStore := new(MockSubmissionStore)
	service := services.NewSubmissionService(mockStore, schema.New())
	ctx := context.Background()

	// A value the form's select can never produce
	req := validRequest()
	req.Framework = "NotARealFramework"

	resp, err := service.Submit(ctx, req)

	assert.NoError(t, err)
	assert.Equal(t, models.MsgValidationError, resp.Message)
	assert.Contains(t, resp.Errors, "framework")

	mockStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmissionService_Submit_RepositoryError(t *testing.T) {
	mockStore := new(MockSubmissionStore)
	service := services.NewSubmissionService(mockStore, schema.New())
	ctx := context.Background()

	req := validRequest()
	mockStore.On("Create", ctx, req).Return(nil, errors.New("connection refused")).Once()

	resp, err := service.Submit(ctx, req)

	assert.Error(t, err)
	assert.Nil(t, resp)

	mockStore.AssertExpectations(t)
}

func TestSubmissionService_Submit_EmptyPhonePassesThrough(t *testing.T) {
	mockStore := new(MockSubmissionStore)
	service := services.NewSubmissionService(mockStore, schema.New())
	ctx := context.Background()

	req := validRequest()
	req.Phone = ""

	// The repository normalizes the empty phone to NULL; the created record
	// comes back without one.
	mockStore.On("Create", ctx, mock.MatchedBy(func(r *models.SubmitRequest) bool {
		return r.Phone == ""
	})).Return(&models.Submission{
		ID:          7,
		Framework:   req.Framework,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       nil,
		Description: req.Description,
	}, nil).Once()

	resp, err := service.Submit(ctx, req)

	assert.NoError(t, err)
	assert.Nil(t, resp.User.Phone)

	mockStore.AssertExpectations(t)
}
