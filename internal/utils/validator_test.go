package utils

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name   string           `json:"name" binding:"required,notblank,min=2,max=10"`
	Email  string           `json:"email" binding:"required,email"`
	Amount *decimal.Decimal `json:"amount" binding:"required,min=0"`
}

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestValidatorAcceptsValidRequest(t *testing.T) {
	RegisterValidators()

	err := binding.Validator.ValidateStruct(sampleRequest{Name: "Apollo", Email: "a@example.com", Amount: amount("0")})
	assert.NoError(t, err)
}

func TestValidatorTranslatesFailures(t *testing.T) {
	RegisterValidators()

	err := binding.Validator.ValidateStruct(sampleRequest{Name: "   ", Email: "nope", Amount: amount("-0.01")})
	require.Error(t, err)

	details := TranslateValidationErrors(err)
	byField := make(map[string]ValidationError)
	for _, d := range details {
		byField[d.Field] = d
	}

	assert.Equal(t, "notblank", byField["name"].Tag)
	assert.Equal(t, "email", byField["email"].Tag)
	assert.Equal(t, "min", byField["amount"].Tag)
	assert.Equal(t, "amount must be at least 0", byField["amount"].Message)
}

func TestValidatorRequiresPointerDecimal(t *testing.T) {
	RegisterValidators()

	err := binding.Validator.ValidateStruct(sampleRequest{Name: "Apollo", Email: "a@example.com"})
	details := TranslateValidationErrors(err)
	require.Len(t, details, 1)
	assert.Equal(t, "amount", details[0].Field)
	assert.Equal(t, "required", details[0].Tag)
}

func TestTranslateValidationErrorsIgnoresOtherErrors(t *testing.T) {
	assert.Nil(t, TranslateValidationErrors(errors.New("unexpected EOF")))
}
