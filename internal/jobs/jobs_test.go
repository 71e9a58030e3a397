package jobs_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"postal/internal/adapters/out/memory"
	"postal/internal/adapters/out/mqttpub"
	"postal/internal/core/application/usecases/commands"
	"postal/internal/core/application/usecases/queries"
	"postal/internal/core/domain/model/client"
	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/parcel"
	"postal/internal/core/domain/services"
	"postal/internal/jobs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var now = time.Date(2026, time.October, 19, 10, 15, 0, 0, time.UTC)

type uowFactory func() commands.UoW

func (f uowFactory) Create() commands.UoW { return f() }

// alwaysDelay makes every SimulateDelay call inject a delay.
type alwaysDelay struct{ next int }

func (r *alwaysDelay) IntN(n int) int {
	v := r.next % n
	r.next++
	return v
}

func (r *alwaysDelay) Float64() float64 { return 0 }

type world struct {
	store    *memory.Store
	uows     commands.UoWFactory
	random   *alwaysDelay
	clock    kernel.Clock
	simulate commands.SimulateDelayCommandHandler
	search   queries.SearchParcelsQueryHandler
}

func newWorld(t *testing.T) *world {
	t.Helper()
	store := memory.NewStore()
	factory := store.UnitOfWorkFactory()
	w := &world{
		store:  store,
		uows:   uowFactory(func() commands.UoW { return factory.Create() }),
		random: &alwaysDelay{},
		clock:  kernel.FixedClock(now),
	}
	lifecycle := services.NewParcelLifecycle(w.clock, w.random)
	w.simulate = commands.NewSimulateDelayCommandHandler(w.uows, lifecycle, mqttpub.Noop{})
	w.search = queries.NewSearchParcelsQueryHandler(store.Repositories())

	for id := 1; id <= 2; id++ {
		c, err := client.RestoreClient(id, client.Contacts{FullName: "Client", Phone: fmt.Sprintf("+3805000000%02d", id)},
			client.Individual, 0, nil, nil)
		require.NoError(t, err)
		require.NoError(t, store.Repositories().ClientRepository().Add(t.Context(), c))
	}
	return w
}

func (w *world) addParcel(t *testing.T) *parcel.Parcel {
	t.Helper()
	lifecycle := services.NewParcelLifecycle(w.clock, w.random)
	handler := commands.NewCreateParcelCommandHandler(
		w.uows, lifecycle, services.NewTrackingCodeGenerator(w.clock, w.random), w.clock, mqttpub.Noop{},
	)
	cmd, err := commands.NewCreateParcelCommand(commands.CreateParcelParams{
		SenderID:      1,
		ReceiverID:    2,
		Type:          parcel.Local,
		Content:       parcel.Package,
		Weight:        1,
		DeclaredValue: decimal.NewFromInt(50),
		Courier:       parcel.Ukrposhta,
		Channel:       parcel.Office,
	})
	require.NoError(t, err)
	result, err := handler.Handle(t.Context(), cmd)
	require.NoError(t, err)
	return result.Parcel
}

func (w *world) markLost(t *testing.T, p *parcel.Parcel) {
	t.Helper()
	handler := commands.NewChangeParcelStatusCommandHandler(
		w.uows, services.NewParcelLifecycle(w.clock, w.random), mqttpub.Noop{},
	)
	cmd, err := commands.NewChangeParcelStatusCommand(p.TrackingCode().String(), parcel.Lost, "", nil)
	require.NoError(t, err)
	_, err = handler.Handle(t.Context(), cmd)
	require.NoError(t, err)
}

func (w *world) notifications(t *testing.T, p *parcel.Parcel) []parcel.Notification {
	t.Helper()
	stored, err := w.store.Repositories().ParcelRepository().Get(t.Context(), p.TrackingCode())
	require.NoError(t, err)
	return stored.Notifications()
}

func TestDelaySimulationJob_RunOnce(t *testing.T) {
	// Given
	w := newWorld(t)
	moving := w.addParcel(t)
	lost := w.addParcel(t)
	w.markLost(t, lost)
	lostBefore := len(w.notifications(t, lost))

	core, logs := observer.New(zap.InfoLevel)
	job := jobs.NewDelaySimulationJob(w.search, w.simulate, "", zap.New(core))

	// When
	delayed, err := job.RunOnce(t.Context())

	// Then
	require.NoError(t, err)
	assert.Equal(t, 1, delayed)

	notes := w.notifications(t, moving)
	require.NotEmpty(t, notes)
	assert.True(t, notes[len(notes)-1].HasDelay())
	assert.Len(t, w.notifications(t, lost), lostBefore)

	entries := logs.FilterMessage("parcel delayed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, moving.TrackingCode().String(), entries[0].ContextMap()["trackingCode"])
}

func TestDelaySimulationJob_CancelledContext(t *testing.T) {
	w := newWorld(t)
	w.addParcel(t)
	job := jobs.NewDelaySimulationJob(w.search, w.simulate, "", zap.NewNop())

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := job.RunOnce(ctx)

	require.ErrorIs(t, err, context.Canceled)
}

func TestDelaySimulationJob_InvalidSchedule(t *testing.T) {
	w := newWorld(t)
	job := jobs.NewDelaySimulationJob(w.search, w.simulate, "every now and then", zap.NewNop())

	require.Error(t, job.Start())
}

func TestDelaySimulationJob_EmptyScheduleDoesNotStart(t *testing.T) {
	w := newWorld(t)
	job := jobs.NewDelaySimulationJob(w.search, w.simulate, "", zap.NewNop())

	require.Error(t, job.Start())
}

type recordingSaver struct {
	saved []memory.Dataset
	err   error
}

func (s *recordingSaver) Save(ds memory.Dataset) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, ds)
	return nil
}

func TestSnapshotAutosaveJob_RunOnce(t *testing.T) {
	w := newWorld(t)
	w.addParcel(t)

	t.Run("saves the current dataset", func(t *testing.T) {
		saver := &recordingSaver{}
		job := jobs.NewSnapshotAutosaveJob(w.store, saver, "", zap.NewNop())

		require.NoError(t, job.RunOnce(t.Context()))

		require.Len(t, saver.saved, 1)
		assert.Len(t, saver.saved[0].Parcels, 1)
		assert.Len(t, saver.saved[0].Clients, 2)
	})

	t.Run("propagates save errors", func(t *testing.T) {
		boom := errors.New("disk full")
		job := jobs.NewSnapshotAutosaveJob(w.store, &recordingSaver{err: boom}, "", zap.NewNop())

		require.ErrorIs(t, job.RunOnce(t.Context()), boom)
	})
}

type fakeJob struct {
	name     string
	startErr error
	events   *[]string
}

func (j fakeJob) Start() error {
	if j.startErr != nil {
		return j.startErr
	}
	*j.events = append(*j.events, "start "+j.name)
	return nil
}

func (j fakeJob) Stop() { *j.events = append(*j.events, "stop "+j.name) }

func TestJobManager(t *testing.T) {
	t.Run("starts in order and stops in reverse", func(t *testing.T) {
		var events []string
		jm := jobs.NewJobManager(fakeJob{name: "a", events: &events}, fakeJob{name: "b", events: &events})

		assert.Equal(t, 2, jm.Len())
		require.NoError(t, jm.StartAll())
		jm.StopAll()

		assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, events)
	})

	t.Run("failed start stops running jobs", func(t *testing.T) {
		var events []string
		boom := errors.New("bad schedule")
		jm := jobs.NewJobManager(fakeJob{name: "a", events: &events}, fakeJob{name: "b", startErr: boom, events: &events})

		err := jm.StartAll()

		require.ErrorIs(t, err, boom)
		assert.Equal(t, []string{"start a", "stop a"}, events)

		jm.StopAll()
		assert.Len(t, events, 2)
	})
}
