package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email string `json:"email" validate:"required,email"`
	Title string `json:"title" validate:"max=3"`
}

func TestValidate(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(&sample{Email: "a@example.com", Title: "abc"}))

	err := v.Validate(&sample{Title: "abcd"})
	require.Error(t, err)
	assert.ElementsMatch(t, []string{"email", "title"}, FailedFields(err))
}

func TestFailedFields_NonValidationError(t *testing.T) {
	assert.Nil(t, FailedFields(assert.AnError))
}
