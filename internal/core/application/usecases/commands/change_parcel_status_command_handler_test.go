package commands_test

import (
	"testing"

	"postal/internal/core/application/usecases/commands"
	"postal/internal/core/domain/model/parcel"
	"postal/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func changeStatus(t *testing.T, f *fixture, code parcel.TrackingCode, next parcel.Status, operatorID *int) (*parcel.Parcel, error) {
	t.Helper()
	cmd, err := commands.NewChangeParcelStatusCommand(code.String(), next, "note", operatorID)
	require.NoError(t, err)
	h := commands.NewChangeParcelStatusCommandHandler(f.uows(), f.lifecycle(), f.publisher)
	return h.Handle(t.Context(), cmd)
}

func TestNewChangeParcelStatusCommand(t *testing.T) {
	t.Run("malformed tracking code", func(t *testing.T) {
		_, err := commands.NewChangeParcelStatusCommand("123", parcel.InTransit, "", nil)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := commands.NewChangeParcelStatusCommand("202610191015001234", parcel.StatusUnknown, "", nil)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("operator id is copied", func(t *testing.T) {
		id := 3
		cmd, err := commands.NewChangeParcelStatusCommand("202610191015001234", parcel.AcceptedByOperator, " ok ", &id)
		require.NoError(t, err)
		id = 4
		assert.Equal(t, 3, *cmd.OperatorID())
		assert.Equal(t, "ok", cmd.Note())
	})
}

func TestChangeParcelStatusCommandHandler_Handle(t *testing.T) {
	t.Run("should append history and publish only the new notification", func(t *testing.T) {
		f := newFixture(t)
		f.addClient(t, 1, 0)
		f.addClient(t, 2, 0)
		p := f.addParcel(t, 1, 2, 100)

		_, err := changeStatus(t, f, p.TrackingCode(), parcel.AcceptedByOperator, nil)
		require.NoError(t, err)

		stored := f.getParcel(t, p.TrackingCode())
		assert.Equal(t, parcel.AcceptedByOperator, stored.Status())
		require.Len(t, stored.History(), 2)
		assert.Equal(t, "note", stored.History()[1].Note)

		published := f.publisher.For(p.TrackingCode())
		require.Len(t, published, 2)
		assert.Equal(t, parcel.AcceptedByOperator, published[1].Status)
	})

	t.Run("should require an operator above the confirmation threshold", func(t *testing.T) {
		f := newFixture(t)
		f.addClient(t, 1, 0)
		f.addClient(t, 2, 0)
		p := f.addParcel(t, 1, 2, 5001)

		_, err := changeStatus(t, f, p.TrackingCode(), parcel.AcceptedByOperator, nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, parcel.AwaitingShipment, f.getParcel(t, p.TrackingCode()).Status())
	})

	t.Run("should accept exactly the threshold without an operator", func(t *testing.T) {
		f := newFixture(t)
		f.addClient(t, 1, 0)
		f.addClient(t, 2, 0)
		p := f.addParcel(t, 1, 2, 5000)

		_, err := changeStatus(t, f, p.TrackingCode(), parcel.AcceptedByOperator, nil)

		require.NoError(t, err)
	})

	t.Run("should credit the confirming operator exactly once", func(t *testing.T) {
		f := newFixture(t)
		f.addClient(t, 1, 0)
		f.addClient(t, 2, 0)
		f.addOperator(t, 7)
		p := f.addParcel(t, 1, 2, 9000)

		_, err := changeStatus(t, f, p.TrackingCode(), parcel.AcceptedByOperator, intPtr(7))
		require.NoError(t, err)

		op, err := f.repos.OperatorRepository().Get(t.Context(), 7)
		require.NoError(t, err)
		assert.Equal(t, 1, op.Processed())
	})

	t.Run("should not credit the operator for a change after confirmation", func(t *testing.T) {
		f := newFixture(t)
		f.addClient(t, 1, 0)
		f.addClient(t, 2, 0)
		f.addOperator(t, 7)
		p := f.addParcel(t, 1, 2, 9000)

		_, err := changeStatus(t, f, p.TrackingCode(), parcel.AcceptedByOperator, intPtr(7))
		require.NoError(t, err)
		_, err = changeStatus(t, f, p.TrackingCode(), parcel.InTransit, intPtr(7))
		require.NoError(t, err)

		op, err := f.repos.OperatorRepository().Get(t.Context(), 7)
		require.NoError(t, err)
		assert.Equal(t, 1, op.Processed())
	})

	t.Run("should not credit the operator when the transition is rejected", func(t *testing.T) {
		f := newFixture(t)
		f.addClient(t, 1, 0)
		f.addClient(t, 2, 0)
		f.addOperator(t, 7)
		p := f.addParcel(t, 1, 2, 100)

		_, err := changeStatus(t, f, p.TrackingCode(), parcel.Delivered, intPtr(7))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		op, err := f.repos.OperatorRepository().Get(t.Context(), 7)
		require.NoError(t, err)
		assert.Equal(t, 0, op.Processed())
	})

	t.Run("should fail with not found for an unknown operator", func(t *testing.T) {
		f := newFixture(t)
		f.addClient(t, 1, 0)
		f.addClient(t, 2, 0)
		p := f.addParcel(t, 1, 2, 9000)

		_, err := changeStatus(t, f, p.TrackingCode(), parcel.AcceptedByOperator, intPtr(42))

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should keep terminal parcels unchanged", func(t *testing.T) {
		f := newFixture(t)
		f.addClient(t, 1, 0)
		f.addClient(t, 2, 0)
		p := f.addParcel(t, 1, 2, 100)
		_, err := changeStatus(t, f, p.TrackingCode(), parcel.Lost, nil)
		require.NoError(t, err)

		_, err = changeStatus(t, f, p.TrackingCode(), parcel.InTransit, nil)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		stored := f.getParcel(t, p.TrackingCode())
		assert.Equal(t, parcel.Lost, stored.Status())
		assert.Len(t, stored.History(), 2)
	})

	t.Run("should fail with not found for an unknown parcel", func(t *testing.T) {
		f := newFixture(t)

		_, err := changeStatus(t, f, mustCode(t, "202610191015009999"), parcel.InTransit, nil)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func mustCode(t *testing.T, s string) parcel.TrackingCode {
	t.Helper()
	code, err := parcel.NewTrackingCode(s)
	require.NoError(t, err)
	return code
}
