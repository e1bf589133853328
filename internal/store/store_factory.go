package store

import (
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"frontdesk/internal/config"
	"frontdesk/internal/repository"
	"frontdesk/internal/store/memory"
	"frontdesk/internal/store/mysql"
)

// Backend is the one concrete store behind the three repository interfaces.
type Backend interface {
	repository.NotificationStore
	repository.ChatStore
	repository.ReservationStore
}

// Narrowing providers for dependency injection.
func NotificationStore(backend Backend) repository.NotificationStore { return backend }
func ChatStore(backend Backend) repository.ChatStore                 { return backend }
func ReservationStore(backend Backend) repository.ReservationStore   { return backend }

func NewStore(cfg *config.Config, logger *zap.Logger) (Backend, error) {
	if cfg.MySQLDSN == "" {
		return memory.New(logger), nil
	}
	sqlDB, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		logger.Error("mysql open failed", zap.Error(err))
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		logger.Error("mysql ping failed", zap.Error(err))
		return nil, err
	}
	return mysql.New(sqlDB, logger), nil
}
