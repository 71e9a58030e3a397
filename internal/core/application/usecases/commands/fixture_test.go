package commands_test

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"postal/internal/adapters/out/memory"
	"postal/internal/core/application/usecases/commands"
	"postal/internal/core/domain/model/client"
	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/operator"
	"postal/internal/core/domain/model/parcel"
	"postal/internal/core/domain/services"
	"postal/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, time.October, 19, 10, 15, 0, 0, time.UTC)

// countingRandom returns 0, 1, 2, ... modulo n from IntN so that consecutive
// tracking codes differ, and a fixed Float64.
type countingRandom struct {
	next int
	f    float64
}

func (r *countingRandom) IntN(n int) int {
	v := r.next % n
	r.next++
	return v
}

func (r *countingRandom) Float64() float64 { return r.f }

type recordingPublisher struct {
	mu        sync.Mutex
	published map[string][]parcel.Notification
}

func (p *recordingPublisher) Publish(_ context.Context, code parcel.TrackingCode, notifications []parcel.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.published == nil {
		p.published = make(map[string][]parcel.Notification)
	}
	p.published[code.String()] = append(p.published[code.String()], notifications...)
}

func (p *recordingPublisher) For(code parcel.TrackingCode) []parcel.Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.published[code.String()]
}

type uowFactory func() commands.UoW

func (f uowFactory) Create() commands.UoW { return f() }

type clientUoWFactory func() commands.ClientUoW

func (f clientUoWFactory) Create() commands.ClientUoW { return f() }

type operatorUoWFactory func() commands.OperatorUoW

func (f operatorUoWFactory) Create() commands.OperatorUoW { return f() }

type deliveryPointUoWFactory func() commands.DeliveryPointUoW

func (f deliveryPointUoWFactory) Create() commands.DeliveryPointUoW { return f() }

type fixture struct {
	store     *memory.Store
	repos     ports.UnitOfWork
	clock     kernel.Clock
	random    kernel.RandomSource
	publisher *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	return &fixture{
		store:     store,
		repos:     store.Repositories(),
		clock:     kernel.FixedClock(now),
		random:    &countingRandom{f: 0.99},
		publisher: &recordingPublisher{},
	}
}

func (f *fixture) uows() commands.UoWFactory {
	factory := f.store.UnitOfWorkFactory()
	return uowFactory(func() commands.UoW { return factory.Create() })
}

func (f *fixture) clientUoWs() commands.ClientUoWFactory {
	factory := f.store.UnitOfWorkFactory()
	return clientUoWFactory(func() commands.ClientUoW { return factory.Create() })
}

func (f *fixture) operatorUoWs() commands.OperatorUoWFactory {
	factory := f.store.UnitOfWorkFactory()
	return operatorUoWFactory(func() commands.OperatorUoW { return factory.Create() })
}

func (f *fixture) deliveryPointUoWs() commands.DeliveryPointUoWFactory {
	factory := f.store.UnitOfWorkFactory()
	return deliveryPointUoWFactory(func() commands.DeliveryPointUoW { return factory.Create() })
}

func (f *fixture) lifecycle() services.ParcelLifecycle {
	return services.NewParcelLifecycle(f.clock, f.random)
}

func (f *fixture) createParcelHandler() commands.CreateParcelCommandHandler {
	return commands.NewCreateParcelCommandHandler(
		f.uows(),
		f.lifecycle(),
		services.NewTrackingCodeGenerator(f.clock, f.random),
		f.clock,
		f.publisher,
	)
}

// addClient stores a client with the given parcel history.
func (f *fixture) addClient(t *testing.T, id, parcelCount int) *client.Client {
	t.Helper()
	c, err := client.RestoreClient(id, client.Contacts{
		FullName: "Client " + strconv.Itoa(id),
		Phone:    "+38050" + strconv.Itoa(1000000+id),
	}, client.Individual, parcelCount, nil, nil)
	require.NoError(t, err)
	require.NoError(t, f.repos.ClientRepository().Add(t.Context(), c))
	return c
}

func (f *fixture) addOperator(t *testing.T, id int) *operator.Operator {
	t.Helper()
	op, err := operator.NewOperator(id, "Operator")
	require.NoError(t, err)
	require.NoError(t, f.repos.OperatorRepository().Add(t.Context(), op))
	return op
}

func (f *fixture) addParcel(t *testing.T, senderID, receiverID int, declared int64) *parcel.Parcel {
	t.Helper()
	cmd, err := commands.NewCreateParcelCommand(parcelParams(senderID, receiverID, declared))
	require.NoError(t, err)
	result, err := f.createParcelHandler().Handle(t.Context(), cmd)
	require.NoError(t, err)
	return result.Parcel
}

func (f *fixture) getParcel(t *testing.T, code parcel.TrackingCode) *parcel.Parcel {
	t.Helper()
	p, err := f.repos.ParcelRepository().Get(t.Context(), code)
	require.NoError(t, err)
	return p
}

func (f *fixture) getClient(t *testing.T, id int) *client.Client {
	t.Helper()
	c, err := f.repos.ClientRepository().Get(t.Context(), id)
	require.NoError(t, err)
	return c
}

func parcelParams(senderID, receiverID int, declared int64) commands.CreateParcelParams {
	return commands.CreateParcelParams{
		SenderID:      senderID,
		ReceiverID:    receiverID,
		Type:          parcel.Local,
		Content:       parcel.Package,
		Weight:        2.5,
		DeclaredValue: decimal.NewFromInt(declared),
		Courier:       parcel.NovaPoshta,
		Channel:       parcel.Office,
	}
}

func intPtr(v int) *int { return &v }
