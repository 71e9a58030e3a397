package postgres

import (
	"context"
	"fmt"

	"postal/internal/adapters/out/postgres/clientrepo"
	"postal/internal/adapters/out/postgres/deliverypointrepo"
	"postal/internal/adapters/out/postgres/operatorrepo"
	"postal/internal/adapters/out/postgres/parcelrepo"

	"go.uber.org/zap"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectionSettings describes a PostgreSQL server.
type ConnectionSettings struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (s ConnectionSettings) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		s.Host, s.Port, s.User, s.Password, s.Name, s.SSLMode)
}

// Open connects with driver errors translated to gorm sentinels, which the
// repositories rely on to detect duplicate keys.
func Open(dsn string, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	log.Info("connected to postgres")
	return db, nil
}

// Models lists every table owned by the postal schema, parents first.
func Models() []any {
	return []any{
		&clientrepo.ClientDTO{},
		&operatorrepo.OperatorDTO{},
		&deliverypointrepo.DeliveryPointDTO{},
		&parcelrepo.ParcelDTO{},
		&parcelrepo.StatusChangeDTO{},
		&parcelrepo.NotificationDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(Models()...)
}
