// Package memory keeps every aggregate in process memory. A single exclusive
// lock serialises units of work; repositories used outside a unit of work take
// the lock per call. Snapshot and Load move the whole dataset in and out, which
// is how the JSON snapshot store persists it.
package memory

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"postal/internal/core/domain/model/client"
	"postal/internal/core/domain/model/deliverypoint"
	"postal/internal/core/domain/model/operator"
	"postal/internal/core/domain/model/parcel"
	"postal/internal/core/ports"
)

// Dataset is the complete content of the store.
type Dataset struct {
	Parcels        []*parcel.Parcel
	Clients        []*client.Client
	Operators      []*operator.Operator
	DeliveryPoints []*deliverypoint.DeliveryPoint
}

type clientRecord struct {
	id               int
	contacts         client.Contacts
	category         client.Category
	parcelCount      int
	lastDiscountUse  *time.Time
	lastFreeDelivery *time.Time
}

type operatorRecord struct {
	id         int
	name       string
	processed  int
	efficiency float64
}

// tables stores immutable values only, so a shallow copy of the maps is a
// consistent backup.
type tables struct {
	parcels   map[string]parcel.State
	clients   map[int]clientRecord
	operators map[int]operatorRecord
	points    map[int]*deliverypoint.DeliveryPoint
}

func newTables() tables {
	return tables{
		parcels:   make(map[string]parcel.State),
		clients:   make(map[int]clientRecord),
		operators: make(map[int]operatorRecord),
		points:    make(map[int]*deliverypoint.DeliveryPoint),
	}
}

func (t tables) clone() tables {
	return tables{
		parcels:   maps.Clone(t.parcels),
		clients:   maps.Clone(t.clients),
		operators: maps.Clone(t.operators),
		points:    maps.Clone(t.points),
	}
}

type Store struct {
	mu   sync.Mutex
	data tables
}

func NewStore() *Store {
	return &Store{data: newTables()}
}

// Load replaces the content of the store. Duplicate keys are rejected and leave
// the store unchanged.
func (s *Store) Load(ds Dataset) error {
	data := newTables()

	for _, p := range ds.Parcels {
		key := p.TrackingCode().String()
		if _, ok := data.parcels[key]; ok {
			return fmt.Errorf("duplicate parcel %s", key)
		}
		data.parcels[key] = p.State()
	}
	for _, c := range ds.Clients {
		if _, ok := data.clients[c.ID()]; ok {
			return fmt.Errorf("duplicate client %d", c.ID())
		}
		data.clients[c.ID()] = clientToRecord(c)
	}
	for _, o := range ds.Operators {
		if _, ok := data.operators[o.ID()]; ok {
			return fmt.Errorf("duplicate operator %d", o.ID())
		}
		data.operators[o.ID()] = operatorToRecord(o)
	}
	for _, dp := range ds.DeliveryPoints {
		if _, ok := data.points[dp.ID()]; ok {
			return fmt.Errorf("duplicate delivery point %d", dp.ID())
		}
		data.points[dp.ID()] = dp
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	return nil
}

// Snapshot returns a consistent copy of the store. Parcels are ordered by creation
// time, everything else by id.
func (s *Store) Snapshot() (Dataset, error) {
	s.mu.Lock()
	data := s.data.clone()
	s.mu.Unlock()

	parcels, err := restoreParcels(data.parcels)
	if err != nil {
		return Dataset{}, err
	}

	ds := Dataset{Parcels: parcels}
	for _, id := range slices.Sorted(maps.Keys(data.clients)) {
		c, err := data.clients[id].restore()
		if err != nil {
			return Dataset{}, err
		}
		ds.Clients = append(ds.Clients, c)
	}
	for _, id := range slices.Sorted(maps.Keys(data.operators)) {
		o, err := data.operators[id].restore()
		if err != nil {
			return Dataset{}, err
		}
		ds.Operators = append(ds.Operators, o)
	}
	for _, id := range slices.Sorted(maps.Keys(data.points)) {
		ds.DeliveryPoints = append(ds.DeliveryPoints, data.points[id])
	}
	return ds, nil
}

// UnitOfWorkFactory returns a factory whose units of work share this store.
func (s *Store) UnitOfWorkFactory() *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: s}
}

// Repositories returns a unit of work that is never begun. Its repositories lock
// the store per call and are meant for queries.
func (s *Store) Repositories() ports.UnitOfWork {
	return &UnitOfWork{store: s}
}

func restoreParcels(states map[string]parcel.State) ([]*parcel.Parcel, error) {
	out := make([]*parcel.Parcel, 0, len(states))
	for _, st := range states {
		p, err := parcel.RestoreParcel(st)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b *parcel.Parcel) int {
		if c := a.CreatedAt().Compare(b.CreatedAt()); c != 0 {
			return c
		}
		return cmp.Compare(a.TrackingCode().String(), b.TrackingCode().String())
	})
	return out, nil
}

func clientToRecord(c *client.Client) clientRecord {
	return clientRecord{
		id:               c.ID(),
		contacts:         c.Contacts(),
		category:         c.Category(),
		parcelCount:      c.ParcelCount(),
		lastDiscountUse:  c.LastDiscountUse(),
		lastFreeDelivery: c.LastFreeDelivery(),
	}
}

func (r clientRecord) restore() (*client.Client, error) {
	return client.RestoreClient(r.id, r.contacts, r.category, r.parcelCount, r.lastDiscountUse, r.lastFreeDelivery)
}

func operatorToRecord(o *operator.Operator) operatorRecord {
	return operatorRecord{id: o.ID(), name: o.Name(), processed: o.Processed(), efficiency: o.Efficiency()}
}

func (r operatorRecord) restore() (*operator.Operator, error) {
	return operator.RestoreOperator(r.id, r.name, r.processed, r.efficiency)
}

var errNoActiveTransaction = errors.New("memory: no active transaction")

func nextID[V any](m map[int]V) int {
	if len(m) == 0 {
		return 1
	}
	return slices.Max(slices.Collect(maps.Keys(m))) + 1
}
