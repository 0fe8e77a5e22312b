package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codacy-badger/mayday-ticketing-db-api/internal/domain"
)

func TestValidate_UserInput(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		err := Validate(&domain.UserInput{Email: "ada@example.com", Name: "Ada", Password: "long enough"})
		assert.NoError(t, err)
	})

	t.Run("reports json field names", func(t *testing.T) {
		err := Validate(&domain.UserInput{Email: "not-an-email", Password: "short"})
		require.Error(t, err)
		assert.True(t, IsValidationError(err))

		var ve ValidationErrors
		require.ErrorAs(t, err, &ve)

		byField := map[string]string{}
		for _, e := range ve {
			byField[e.Field] = e.Message
		}
		assert.Equal(t, "must be a valid email address", byField["email"])
		assert.Equal(t, "is required", byField["name"])
		assert.Equal(t, "must be at least 8 characters", byField["password"])
	})
}

func TestValidate_TicketStatusInput(t *testing.T) {
	err := Validate(&domain.TicketStatusInput{Status: "paused"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status: must be one of: open in_progress resolved closed")

	assert.NoError(t, Validate(&domain.TicketStatusInput{Status: domain.TicketStatusClosed}))
}

func TestIsValidationError(t *testing.T) {
	assert.False(t, IsValidationError(nil))
	assert.True(t, IsValidationError(ValidationErrors{{Field: "x", Message: "y"}}))
}
