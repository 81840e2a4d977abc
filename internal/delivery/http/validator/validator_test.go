package validator

import (
	"testing"

	domainerrors "tsmarket/internal/domain/errors"
	"tsmarket/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCheckoutInput(t *testing.T) {
	v := New()

	// An empty cart passes struct validation; the checkout engine owns the
	// empty-cart rejection and its error code.
	require.NoError(t, v.Validate(&usecase.CheckoutInput{Lines: []usecase.CartLine{}}))
	require.NoError(t, v.Validate(&usecase.CheckoutInput{}))

	err := v.Validate(&usecase.CheckoutInput{Lines: []usecase.CartLine{
		{ProductID: uuid.New(), Quantity: 0},
	}})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
}
