package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	httpapi "postal/internal/adapters/in/http"
	"postal/internal/adapters/out/memory"
	"postal/internal/adapters/out/mqttpub"
	"postal/internal/adapters/out/postgres"
	"postal/internal/adapters/out/report"
	"postal/internal/adapters/out/securityapi"
	"postal/internal/adapters/out/sessionstore"
	"postal/internal/adapters/out/snapshot"
	"postal/internal/core/application/usecases/commands"
	"postal/internal/core/application/usecases/queries"
	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/services"
	"postal/internal/core/ports"
	"postal/internal/jobs"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type CompositionRoot struct {
	cfg    Config
	logger *zap.Logger
	clock  kernel.Clock
	random kernel.RandomSource

	uowFactory ports.UnitOfWorkFactory
	repos      queries.Repositories

	// memoryStore and snapshots are nil with postgres storage.
	memoryStore *memory.Store
	snapshots   *snapshot.Store

	sessions  ports.SessionStore
	auth      ports.Authenticator
	publisher ports.NotificationPublisher

	closers []func() error
}

// NewCompositionRoot opens every backend named by cfg. Close releases them.
func NewCompositionRoot(ctx context.Context, cfg Config, logger *zap.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:    cfg,
		logger: logger,
		clock:  kernel.SystemClock{},
		random: kernel.NewRandomSource(0, 0),
	}

	if err := c.openStorage(); err != nil {
		_ = c.Close()
		return nil, err
	}
	if err := c.openSessions(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	if err := c.openPublisher(); err != nil {
		_ = c.Close()
		return nil, err
	}
	c.auth = securityapi.NewClient(cfg.SecurityAPIURL, cfg.SecurityAPITimeout, logger)

	return c, nil
}

func (c *CompositionRoot) openStorage() error {
	switch c.cfg.Storage {
	case StoragePostgres:
		db, err := postgres.Open(c.cfg.Postgres().DSN(), c.logger)
		if err != nil {
			return err
		}
		c.closers = append(c.closers, func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		})

		factory := postgres.NewGormUnitOfWorkFactory(db)
		c.uowFactory = factory
		c.repos = factory.Create()
		return nil

	default:
		store := memory.NewStore()
		snapshots := snapshot.NewStore(c.cfg.DataDir, c.logger)
		ds, err := snapshots.Load()
		if err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}
		if err := store.Load(ds); err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}

		c.memoryStore = store
		c.snapshots = snapshots
		c.uowFactory = store.UnitOfWorkFactory()
		c.repos = store.Repositories()
		c.closers = append(c.closers, c.saveSnapshot)
		return nil
	}
}

func (c *CompositionRoot) saveSnapshot() error {
	ds, err := c.memoryStore.Snapshot()
	if err != nil {
		return err
	}
	return c.snapshots.Save(ds)
}

func (c *CompositionRoot) openSessions(ctx context.Context) error {
	if c.cfg.RedisAddr == "" {
		c.sessions = sessionstore.NewMemoryStore(c.clock)
		return nil
	}

	client := redis.NewClient(&redis.Options{Addr: c.cfg.RedisAddr})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("connect to redis: %w", err)
	}

	c.closers = append(c.closers, client.Close)
	c.sessions = sessionstore.NewRedisStore(client, c.clock)
	return nil
}

func (c *CompositionRoot) openPublisher() error {
	if c.cfg.MQTTBroker == "" {
		c.publisher = mqttpub.Noop{}
		return nil
	}

	publisher, disconnect, err := mqttpub.Connect(mqttpub.Settings{
		Broker:      c.cfg.MQTTBroker,
		ClientID:    c.cfg.MQTTClientID,
		TopicPrefix: c.cfg.MQTTTopicPrefix,
	}, c.logger)
	if err != nil {
		return err
	}

	c.closers = append(c.closers, func() error { disconnect(); return nil })
	c.publisher = publisher
	return nil
}

// Close releases backends in reverse order of opening. With memory storage the
// store is saved to its snapshot first.
func (c *CompositionRoot) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errs...)
}

func (c *CompositionRoot) lifecycle() services.ParcelLifecycle {
	return services.NewParcelLifecycle(c.clock, c.random)
}

func (c *CompositionRoot) uows() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) clientUoWs() commands.ClientUoWFactory {
	return FuncClientUoWFactory(func() commands.ClientUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) operatorUoWs() commands.OperatorUoWFactory {
	return FuncOperatorUoWFactory(func() commands.OperatorUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) deliveryPointUoWs() commands.DeliveryPointUoWFactory {
	return FuncDeliveryPointUoWFactory(func() commands.DeliveryPointUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) CreateCreateParcelCommandHandler() commands.CreateParcelCommandHandler {
	return commands.NewCreateParcelCommandHandler(
		c.uows(),
		c.lifecycle(),
		services.NewTrackingCodeGenerator(c.clock, c.random),
		c.clock,
		c.publisher,
	)
}

func (c *CompositionRoot) CreateChangeParcelStatusCommandHandler() commands.ChangeParcelStatusCommandHandler {
	return commands.NewChangeParcelStatusCommandHandler(c.uows(), c.lifecycle(), c.publisher)
}

func (c *CompositionRoot) CreateSimulateDelayCommandHandler() commands.SimulateDelayCommandHandler {
	return commands.NewSimulateDelayCommandHandler(c.uows(), c.lifecycle(), c.publisher)
}

func (c *CompositionRoot) CreateQuoteParcelCommandHandler() commands.QuoteParcelCommandHandler {
	return commands.NewQuoteParcelCommandHandler(c.uows(), services.NewPricing(services.DefaultTariff(), c.clock), c.clock)
}

func (c *CompositionRoot) CreateGetStatisticsQueryHandler() queries.GetStatisticsQueryHandler {
	return queries.NewGetStatisticsQueryHandler(c.repos)
}

func (c *CompositionRoot) CreateSearchParcelsQueryHandler() queries.SearchParcelsQueryHandler {
	return queries.NewSearchParcelsQueryHandler(c.repos)
}

// Handlers builds every use case served over HTTP.
func (c *CompositionRoot) Handlers() httpapi.Handlers {
	return httpapi.Handlers{
		CreateParcel:         c.CreateCreateParcelCommandHandler(),
		ChangeParcelStatus:   c.CreateChangeParcelStatusCommandHandler(),
		SimulateDelay:        c.CreateSimulateDelayCommandHandler(),
		QuoteParcel:          c.CreateQuoteParcelCommandHandler(),
		RegisterClient:       commands.NewRegisterClientCommandHandler(c.clientUoWs()),
		UpdateClientContacts: commands.NewUpdateClientContactsCommandHandler(c.clientUoWs()),
		DeleteClient:         commands.NewDeleteClientCommandHandler(c.clientUoWs()),
		RegisterOperator:     commands.NewRegisterOperatorCommandHandler(c.operatorUoWs()),
		DeleteOperator:       commands.NewDeleteOperatorCommandHandler(c.operatorUoWs()),
		AddDeliveryPoint:     commands.NewAddDeliveryPointCommandHandler(c.deliveryPointUoWs()),
		DeleteDeliveryPoint:  commands.NewDeleteDeliveryPointCommandHandler(c.deliveryPointUoWs()),
		Login:                commands.NewLoginCommandHandler(c.auth, c.sessions, c.clock, c.cfg.SessionTTL),
		Logout:               commands.NewLogoutCommandHandler(c.sessions),
		Users:                commands.NewUserCommandHandler(c.auth),
		GetParcel:            queries.NewGetParcelQueryHandler(c.repos),
		SearchParcels:        c.CreateSearchParcelsQueryHandler(),
		CountParcelsBySender: queries.NewCountParcelsBySenderQueryHandler(c.repos),
		Clients:              queries.NewClientQueryHandler(c.repos),
		Operators:            queries.NewOperatorQueryHandler(c.repos),
		DeliveryPoints:       queries.NewDeliveryPointQueryHandler(c.repos),
		Statistics:           c.CreateGetStatisticsQueryHandler(),
		ListUsers:            queries.NewListUsersQueryHandler(c.auth),
		ExportStatistics:     report.WriteStatistics,
	}
}

func (c *CompositionRoot) Server() *httpapi.Server {
	return httpapi.NewServer(c.Handlers(), c.sessions, c.clock, c.logger)
}

// Jobs schedules the delay simulation when DELAY_SCHEDULE is set and, for memory
// storage, the snapshot autosave.
func (c *CompositionRoot) Jobs() *jobs.JobManager {
	var scheduled []jobs.Job
	if c.cfg.DelaySchedule != "" {
		scheduled = append(scheduled, jobs.NewDelaySimulationJob(
			c.CreateSearchParcelsQueryHandler(),
			c.CreateSimulateDelayCommandHandler(),
			c.cfg.DelaySchedule,
			c.logger,
		))
	}
	if c.memoryStore != nil {
		scheduled = append(scheduled, jobs.NewSnapshotAutosaveJob(c.memoryStore, c.snapshots, c.cfg.SnapshotSchedule, c.logger))
	}
	return jobs.NewJobManager(scheduled...)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncClientUoWFactory func() commands.ClientUoW

func (f FuncClientUoWFactory) Create() commands.ClientUoW {
	return f()
}

type FuncOperatorUoWFactory func() commands.OperatorUoW

func (f FuncOperatorUoWFactory) Create() commands.OperatorUoW {
	return f()
}

type FuncDeliveryPointUoWFactory func() commands.DeliveryPointUoW

func (f FuncDeliveryPointUoWFactory) Create() commands.DeliveryPointUoW {
	return f()
}
