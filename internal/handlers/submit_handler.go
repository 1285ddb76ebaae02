package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/testpick/testpick-api/internal/models"
	"github.com/testpick/testpick-api/internal/services"
)

// SubmitHandler handles survey form submissions
type SubmitHandler struct {
	service services.SubmissionServiceInterface
}

// NewSubmitHandler creates a new submit handler
func NewSubmitHandler(service services.SubmissionServiceInterface) *SubmitHandler {
	return &SubmitHandler{service: service}
}

// Submit handles POST /api/submit
func (h *SubmitHandler) Submit(c *gin.Context) {
	var req models.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Well-formed JSON with a wrong-typed field is a validation failure,
		// same as a value the schema rejects.
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			attachError(c, err)
			c.JSON(http.StatusBadRequest, models.SubmitResponse{
				Message: models.MsgValidationError,
				Errors:  models.FieldErrors{typeErr.Field: {typeErr.Field + " é inválido"}},
			})
			return
		}
		// A body that is not valid JSON gets the same generic failure as any
		// other processing error; field validation happens in the service.
		respondError(c, http.StatusInternalServerError, models.MsgServerError, err)
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), &req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, models.MsgServerError, err)
		return
	}

	if len(resp.Errors) > 0 {
		c.JSON(http.StatusBadRequest, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}
