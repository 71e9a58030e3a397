package operator_test

import (
	"testing"

	"postal/internal/core/domain/model/operator"
	"postal/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOperator(t *testing.T) {
	t.Run("should start with zero processed and full efficiency", func(t *testing.T) {
		o, err := operator.NewOperator(1, "Taras")

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, 1, o.ID())
		assert.Equal(t, "Taras", o.Name())
		assert.Zero(t, o.Processed())
		assert.InDelta(t, operator.DefaultEfficiency, o.Efficiency(), 1e-9)
	})

	t.Run("should reject blank name and invalid id", func(t *testing.T) {
		o, err := operator.NewOperator(0, "   ")

		assert.Nil(t, o)
		require.ErrorIs(t, err, operator.ErrNameIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOperator_IncrementProcessed(t *testing.T) {
	o, err := operator.RestoreOperator(4, "Iryna", 41, 97.5)
	require.NoError(t, err)

	o.IncrementProcessed()

	assert.Equal(t, 42, o.Processed())
}

func TestRestoreOperator_Validation(t *testing.T) {
	_, err := operator.RestoreOperator(1, "Iryna", -1, 100)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = operator.RestoreOperator(1, "Iryna", 0, 120)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	var zero operator.Operator
	require.ErrorIs(t, zero.Validate(), operator.ErrOperatorIsNotConstructed)
}
