package commands_test

import (
	"testing"

	"postal/internal/core/application/usecases/commands"
	"postal/internal/core/domain/model/parcel"
	"postal/internal/core/domain/services"
	"postal/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateDelayCommandHandler_Handle(t *testing.T) {
	setup := func(t *testing.T, draw float64) (*fixture, *parcel.Parcel, commands.SimulateDelayCommandHandler) {
		f := newFixture(t)
		f.addClient(t, 1, 0)
		f.addClient(t, 2, 0)
		p := f.addParcel(t, 1, 2, 100)
		random := &countingRandom{f: draw}
		h := commands.NewSimulateDelayCommandHandler(f.uows(), services.NewParcelLifecycle(f.clock, random), f.publisher)
		return f, p, h
	}

	t.Run("should extend the estimate and publish a delay notification", func(t *testing.T) {
		f, p, h := setup(t, 0.01)
		cmd, err := commands.NewSimulateDelayCommand(p.TrackingCode().String())
		require.NoError(t, err)

		outcome, err := h.Handle(t.Context(), cmd)

		require.NoError(t, err)
		require.True(t, outcome.HasDelay)
		assert.Equal(t, parcel.DelayReasons[0], outcome.Reason)
		assert.Equal(t, p.EstimatedDeliveryDays()+outcome.Days, outcome.NewEstimate)

		stored := f.getParcel(t, p.TrackingCode())
		assert.Equal(t, outcome.NewEstimate, stored.EstimatedDeliveryDays())
		assert.Equal(t, parcel.AwaitingShipment, stored.Status())
		assert.Len(t, stored.History(), 1)

		published := f.publisher.For(p.TrackingCode())
		require.Len(t, published, 2)
		assert.True(t, published[1].HasDelay())
		assert.Equal(t, outcome.Days, *published[1].DelayDays)
	})

	t.Run("should leave the parcel untouched when no delay is drawn", func(t *testing.T) {
		f, p, h := setup(t, services.DelayProbability)
		cmd, err := commands.NewSimulateDelayCommand(p.TrackingCode().String())
		require.NoError(t, err)

		outcome, err := h.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.False(t, outcome.HasDelay)
		assert.Equal(t, p.EstimatedDeliveryDays(), outcome.NewEstimate)
		assert.Len(t, f.getParcel(t, p.TrackingCode()).Notifications(), 1)
		assert.Len(t, f.publisher.For(p.TrackingCode()), 1)
	})

	t.Run("should fail with not found for an unknown parcel", func(t *testing.T) {
		_, _, h := setup(t, 0.01)
		cmd, err := commands.NewSimulateDelayCommand("202610191015009999")
		require.NoError(t, err)

		_, err = h.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
