package db

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/agenda-scheduler/internal/config"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
)

// um agendamento vivo por funcionário e intervalo
const exclusionConstraintSQL = `
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1 FROM pg_constraint WHERE conname = 'agendamentos_sem_sobreposicao'
	) THEN
		ALTER TABLE agendamentos
			ADD CONSTRAINT agendamentos_sem_sobreposicao
			EXCLUDE USING gist (
				funcionario_id WITH =,
				tsrange(data_agendamento + horario_inicio, data_agendamento + horario_fim, '[)') WITH &&
			)
			WHERE (deleted_at IS NULL AND status <> 'cancelado');
	END IF;
END $$;
`

// NewDB abre o pool e confirma a conexão. Migrações ficam a cargo de Migrate.
func NewDB(cfg *config.Config, log *slog.Logger) (*gorm.DB, error) {
	db, err := Open(cfg.DBUrl)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	log.Info("database connected")
	return db, nil
}

// Open configura gorm e o pool sem abrir conexão.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(WithUTC(dsn)), &gorm.Config{
		PrepareStmt:          true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	return db, nil
}

func Migrate(db *gorm.DB, log *slog.Logger) error {
	if err := db.AutoMigrate(
		&models.Company{},
		&models.Administrator{},
		&models.Staff{},
		&models.Client{},
		&models.Service{},
		&models.Appointment{},
		&models.ActivityLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// sem a constraint continuam valendo a trava de agenda e o FOR UPDATE
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		log.Warn("btree_gist unavailable, skipping exclusion constraint", "err", err)
		return nil
	}
	if err := db.Exec(exclusionConstraintSQL).Error; err != nil {
		log.Warn("failed to install exclusion constraint", "err", err)
	}

	return nil
}

// WithUTC fixa o fuso da sessão: colunas date/time não podem ser
// convertidas pelo fuso do servidor.
func WithUTC(dsn string) string {
	lower := strings.ToLower(dsn)
	if strings.Contains(lower, "timezone=") {
		return dsn
	}

	if strings.Contains(dsn, "://") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		return dsn + sep + "timezone=UTC"
	}

	return strings.TrimSpace(dsn) + " TimeZone=UTC"
}
