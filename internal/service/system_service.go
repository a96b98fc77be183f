package service

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/benchfolio/backend/internal/database"
	"github.com/benchfolio/backend/internal/model"
	"github.com/benchfolio/backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{
		db: db,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// CheckVersion returns the application version and the applied schema version.
func (s *SystemService) CheckVersion() (model.VersionInfo, error) {
	if err := goose.SetDialect("sqlite3"); err != nil {
		return model.VersionInfo{}, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	dbVersion, err := goose.GetDBVersion(s.db)
	if err != nil {
		return model.VersionInfo{}, fmt.Errorf("failed to read schema version: %w", err)
	}

	return model.VersionInfo{
		AppVersion: version.Version,
		DbVersion:  dbVersion,
	}, nil
}
