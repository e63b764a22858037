package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type titled struct {
	Title string `validate:"required,notblank"`
}

func TestNotBlankRule(t *testing.T) {
	InitValidator()
	InitValidator()

	assert.NoError(t, Validate.Struct(titled{Title: "groceries"}))
	assert.Error(t, Validate.Struct(titled{Title: ""}))
	assert.Error(t, Validate.Struct(titled{Title: " \t\n"}))
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank("   "))
	assert.False(t, IsBlank(" a "))
}
