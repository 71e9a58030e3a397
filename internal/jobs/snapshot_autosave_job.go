package jobs

import (
	"context"

	"postal/internal/adapters/out/memory"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultSnapshotSchedule saves the memory store every five minutes.
const DefaultSnapshotSchedule = "0 */5 * * * *"

type (
	// Snapshotter yields a consistent copy of the in-memory data.
	Snapshotter interface {
		Snapshot() (memory.Dataset, error)
	}

	// SnapshotSaver persists a dataset.
	SnapshotSaver interface {
		Save(ds memory.Dataset) error
	}
)

// SnapshotAutosaveJob writes the memory store to its snapshot on a schedule.
type SnapshotAutosaveJob struct {
	source   Snapshotter
	saver    SnapshotSaver
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
}

func NewSnapshotAutosaveJob(source Snapshotter, saver SnapshotSaver, schedule string, logger *zap.Logger) *SnapshotAutosaveJob {
	if schedule == "" {
		schedule = DefaultSnapshotSchedule
	}
	return &SnapshotAutosaveJob{
		source:   source,
		saver:    saver,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With(zap.String("component", "snapshot_autosave_job")),
	}
}

func (j *SnapshotAutosaveJob) RunOnce(_ context.Context) error {
	ds, err := j.source.Snapshot()
	if err != nil {
		return err
	}
	if err := j.saver.Save(ds); err != nil {
		return err
	}

	j.logger.Debug("snapshot saved",
		zap.Int("parcels", len(ds.Parcels)),
		zap.Int("clients", len(ds.Clients)),
	)
	return nil
}

func (j *SnapshotAutosaveJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		if err := j.RunOnce(context.Background()); err != nil {
			j.logger.Error("snapshot autosave failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("snapshot autosave job started", zap.String("schedule", j.schedule))
	return nil
}

func (j *SnapshotAutosaveJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("snapshot autosave job stopped")
}
