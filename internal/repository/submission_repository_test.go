package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNilIfEmpty(t *testing.T) {
	assert.Nil(t, nilIfEmpty(""))

	phone := nilIfEmpty("11999999999")
	assert.NotNil(t, phone)
	assert.Equal(t, "11999999999", *phone)
}
