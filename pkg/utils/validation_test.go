package utils

import (
	"testing"

	apperrors "inventory-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
)

func TestValidateStruct(t *testing.T) {
	type sample struct {
		Name  string `validate:"required"`
		Mode  string `validate:"oneof=a b"`
		Table string `validate:"required_if=Mode a"`
		Port  int    `validate:"min=1"`
	}

	assert.NoError(t, ValidateStruct(sample{Name: "x", Mode: "b", Port: 1}))

	err := ValidateStruct(sample{Mode: "c", Port: 1})
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "Name is required; Mode must be one of: a b", apperrors.GetAppError(err).Message)

	err = ValidateStruct(sample{Name: "x", Mode: "a"})
	assert.Equal(t, "Table is required when Mode is a; Port failed min", apperrors.GetAppError(err).Message)
}
