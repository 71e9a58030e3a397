package jobs

import (
	"context"
	"errors"

	"postal/internal/core/application/usecases/commands"
	"postal/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DelaySimulationJob periodically runs SimulateDelay on every parcel that is
// still moving through the lifecycle. It has no default schedule: a job built
// with an empty one fails to start.
type DelaySimulationJob struct {
	search   queries.SearchParcelsQueryHandler
	simulate commands.SimulateDelayCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
}

func NewDelaySimulationJob(
	search queries.SearchParcelsQueryHandler,
	simulate commands.SimulateDelayCommandHandler,
	schedule string,
	logger *zap.Logger,
) *DelaySimulationJob {
	return &DelaySimulationJob{
		search:   search,
		simulate: simulate,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With(zap.String("component", "delay_simulation_job")),
	}
}

// RunOnce simulates delays for all non-terminal parcels and returns how many were delayed.
// A failure on one parcel is logged and does not stop the others.
func (j *DelaySimulationJob) RunOnce(ctx context.Context) (int, error) {
	query, err := queries.NewSearchParcelsQuery("", nil, nil)
	if err != nil {
		return 0, err
	}
	parcels, err := j.search.Handle(ctx, query)
	if err != nil {
		return 0, err
	}

	delayed := 0
	for _, p := range parcels {
		if p.Status().IsTerminal() {
			continue
		}
		if ctx.Err() != nil {
			return delayed, ctx.Err()
		}

		cmd, err := commands.NewSimulateDelayCommand(p.TrackingCode().String())
		if err != nil {
			return delayed, err
		}
		outcome, err := j.simulate.Handle(ctx, cmd)
		if err != nil {
			j.logger.Error("delay simulation failed",
				zap.String("trackingCode", p.TrackingCode().String()),
				zap.Error(err),
			)
			continue
		}
		if outcome.HasDelay {
			delayed++
			j.logger.Info("parcel delayed",
				zap.String("trackingCode", p.TrackingCode().String()),
				zap.Stringer("reason", outcome.Reason),
				zap.Int("days", outcome.Days),
				zap.Int("estimatedDays", outcome.NewEstimate),
			)
		}
	}

	return delayed, nil
}

func (j *DelaySimulationJob) Start() error {
	if j.schedule == "" {
		return errors.New("delay simulation job has no schedule")
	}
	_, err := j.cron.AddFunc(j.schedule, func() {
		if _, err := j.RunOnce(context.Background()); err != nil {
			j.logger.Error("delay simulation job failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("delay simulation job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop waits for a running simulation to finish.
func (j *DelaySimulationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("delay simulation job stopped")
}
