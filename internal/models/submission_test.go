package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/testpick/testpick-api/internal/models"
)

func TestIsFramework(t *testing.T) {
	assert.Len(t, models.Frameworks, 15)
	for _, framework := range models.Frameworks {
		assert.True(t, models.IsFramework(framework))
	}

	assert.False(t, models.IsFramework(""))
	assert.False(t, models.IsFramework("Postman"))
	assert.False(t, models.IsFramework("cypress")) // membership is case-sensitive
}

func TestFieldErrors_First(t *testing.T) {
	errs := models.FieldErrors{
		"email": {"E-mail inválido", "E-mail é obrigatório"},
		"phone": {},
	}

	assert.Equal(t, "E-mail inválido", errs.First("email"))
	assert.Empty(t, errs.First("phone"))
	assert.Empty(t, errs.First("name"))
}
