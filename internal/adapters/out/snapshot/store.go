// Package snapshot persists the memory store as four independent JSON documents
// in one directory: parcels.json, clients.json, operators.json and
// delivery_points.json.
//
// A missing document loads as an empty collection. A document that exists but
// cannot be decoded is an error; it is never replaced by an empty collection.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"postal/internal/adapters/out/memory"

	"go.uber.org/zap"
)

const (
	ParcelsFile        = "parcels.json"
	ClientsFile        = "clients.json"
	OperatorsFile      = "operators.json"
	DeliveryPointsFile = "delivery_points.json"
)

type Store struct {
	dir    string
	logger *zap.Logger
}

func NewStore(dir string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{dir: dir, logger: logger.With(zap.String("component", "snapshot"))}
}

// Save writes every document. Each file is replaced atomically, but the four
// files are not written as one unit.
func (s *Store) Save(ds memory.Dataset) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	parcels := make([]parcelDTO, 0, len(ds.Parcels))
	for _, p := range ds.Parcels {
		parcels = append(parcels, parcelToDTO(p))
	}
	clients := make([]clientDTO, 0, len(ds.Clients))
	for _, c := range ds.Clients {
		clients = append(clients, clientToDTO(c))
	}
	operators := make([]operatorDTO, 0, len(ds.Operators))
	for _, o := range ds.Operators {
		operators = append(operators, operatorToDTO(o))
	}
	points := make([]deliveryPointDTO, 0, len(ds.DeliveryPoints))
	for _, dp := range ds.DeliveryPoints {
		points = append(points, deliveryPointToDTO(dp))
	}

	if err := errors.Join(
		s.write(ParcelsFile, parcels),
		s.write(ClientsFile, clients),
		s.write(OperatorsFile, operators),
		s.write(DeliveryPointsFile, points),
	); err != nil {
		return err
	}

	s.logger.Debug("snapshot saved",
		zap.Int("parcels", len(parcels)),
		zap.Int("clients", len(clients)),
		zap.Int("operators", len(operators)),
		zap.Int("deliveryPoints", len(points)),
	)
	return nil
}

func (s *Store) Load() (memory.Dataset, error) {
	var ds memory.Dataset

	var parcels []parcelDTO
	var clients []clientDTO
	var operators []operatorDTO
	var points []deliveryPointDTO
	if err := errors.Join(
		s.read(ParcelsFile, &parcels),
		s.read(ClientsFile, &clients),
		s.read(OperatorsFile, &operators),
		s.read(DeliveryPointsFile, &points),
	); err != nil {
		return memory.Dataset{}, err
	}

	for i, dto := range parcels {
		p, err := parcelFromDTO(dto)
		if err != nil {
			return memory.Dataset{}, fmt.Errorf("%s: entry %d: %w", ParcelsFile, i, err)
		}
		ds.Parcels = append(ds.Parcels, p)
	}
	for i, dto := range clients {
		c, err := clientFromDTO(dto)
		if err != nil {
			return memory.Dataset{}, fmt.Errorf("%s: entry %d: %w", ClientsFile, i, err)
		}
		ds.Clients = append(ds.Clients, c)
	}
	for i, dto := range operators {
		o, err := operatorFromDTO(dto)
		if err != nil {
			return memory.Dataset{}, fmt.Errorf("%s: entry %d: %w", OperatorsFile, i, err)
		}
		ds.Operators = append(ds.Operators, o)
	}
	for i, dto := range points {
		dp, err := deliveryPointFromDTO(dto)
		if err != nil {
			return memory.Dataset{}, fmt.Errorf("%s: entry %d: %w", DeliveryPointsFile, i, err)
		}
		ds.DeliveryPoints = append(ds.DeliveryPoints, dp)
	}

	s.logger.Info("snapshot loaded",
		zap.String("dir", s.dir),
		zap.Int("parcels", len(ds.Parcels)),
		zap.Int("clients", len(ds.Clients)),
	)
	return ds, nil
}

func (s *Store) write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%s: %w", name, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if err = os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (s *Store) read(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Info("snapshot document missing, starting empty", zap.String("file", name))
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if err = json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s is malformed: %w", name, err)
	}
	return nil
}
