package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"postal/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("trackingCode", "20261019101500")

		assert.Equal(t, "trackingCode", err.ParamName)
		assert.Equal(t, "20261019101500", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 20261019101500", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("snapshot file missing")
		err := errs.NewObjectNotFoundErrorWithCause("trackingCode", "123", cause)

		assert.Equal(t, "trackingCode", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: trackingCode, ID is: 123 (cause: snapshot file missing)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("clientId", 456)
		assert.Equal(t, "object not found: 456", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("declaredValue")

		assert.Equal(t, "declaredValue", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: declaredValue", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("declaredValue", cause)

		assert.Equal(t, "declaredValue", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: declaredValue (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("weight", 150, 0, 100)

		assert.Equal(t, "weight", err.ParamName)
		assert.Equal(t, 150, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 100, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 150 is weight, min value is 0, max value is 100", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("delayDays", -5, 0, 100, cause)

		assert.Equal(t, "delayDays", err.ParamName)
		assert.Equal(t, -5, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 100, err.Max)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"value is invalid: -5 is delayDays, min value is 0, max value is 100 (cause: validation failed)",
			err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("fullName")

		assert.Equal(t, "fullName", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: fullName", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("fullName", cause)

		assert.Equal(t, "fullName", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: fullName (cause: missing required field)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestPolicyDeniedError(t *testing.T) {
	t.Run("NewPolicyDeniedError", func(t *testing.T) {
		err := errs.NewPolicyDeniedError("discount", "already used within 30 days")

		assert.Equal(t, "discount", err.Policy)
		assert.Equal(t, "already used within 30 days", err.Reason)
		require.NoError(t, err.Cause)
		assert.Equal(t, "policy denied: discount, already used within 30 days", err.Error())
		assert.Equal(t, errs.ErrPolicyDenied, err.Unwrap())
	})

	t.Run("NewPolicyDeniedErrorWithCause", func(t *testing.T) {
		cause := errors.New("tier is Pro")
		err := errs.NewPolicyDeniedErrorWithCause("free delivery", "", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "policy denied: free delivery (cause: tier is Pro)", err.Error())
	})
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errs.Kind
	}{
		{"nil", nil, errs.KindInternal},
		{"not found", errs.NewObjectNotFoundError("parcel", "x"), errs.KindNotFound},
		{"invalid", errs.NewValueIsInvalidError("weight"), errs.KindValidation},
		{"out of range", errs.NewValueIsOutOfRangeError("weight", 31, 0, 30), errs.KindValidation},
		{"required", errs.NewValueIsRequiredError("operatorID"), errs.KindValidation},
		{"policy", errs.NewPolicyDeniedError("discount", ""), errs.KindPolicyDenied},
		{"wrapped", fmt.Errorf("create: %w", errs.NewObjectNotFoundError("client", 7)), errs.KindNotFound},
		{"joined", errors.Join(errors.New("x"), errs.NewValueIsRequiredError("name")), errs.KindValidation},
		{"foreign", errors.New("disk full"), errs.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errs.KindOf(tt.err))
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "NotFound", errs.KindNotFound.String())
	assert.Equal(t, "ValidationFailure", errs.KindValidation.String())
	assert.Equal(t, "PolicyDenied", errs.KindPolicyDenied.String())
	assert.Equal(t, "Internal", errs.KindInternal.String())
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrPolicyDenied)
	})

	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "policy denied", errs.ErrPolicyDenied.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		objectNotFoundErr := errs.NewObjectNotFoundError("trackingCode", "20261019101500")
		require.ErrorIs(t, objectNotFoundErr, errs.ErrObjectNotFound)

		valueInvalidErr := errs.NewValueIsInvalidError("declaredValue")
		require.ErrorIs(t, valueInvalidErr, errs.ErrValueIsInvalid)

		valueOutOfRangeErr := errs.NewValueIsOutOfRangeError("weight", 150, 0, 100)
		require.ErrorIs(t, valueOutOfRangeErr, errs.ErrValueIsOutOfRange)

		valueRequiredErr := errs.NewValueIsRequiredError("fullName")
		require.ErrorIs(t, valueRequiredErr, errs.ErrValueIsRequired)

		policyErr := errs.NewPolicyDeniedError("discount", "")
		require.ErrorIs(t, policyErr, errs.ErrPolicyDenied)
	})
}
