package di

import (
	"fmt"

	"github.com/aristath/workbench/internal/config"
	"github.com/aristath/workbench/internal/database"
)

// InitializeDatabases opens the market database and applies its schema
func InitializeDatabases(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	driver, dsn := cfg.MarketDSN()
	dbCfg := database.Config{
		Driver:  database.Driver(driver),
		Profile: database.ProfileCache, // bars can always be re-seeded
		Name:    "market",
	}
	if dbCfg.Driver == database.DriverPostgres {
		dbCfg.DSN = dsn
	} else {
		dbCfg.Path = dsn
	}

	marketDB, err := database.New(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize market database: %w", err)
	}
	if err := marketDB.Migrate(); err != nil {
		marketDB.Close()
		return nil, fmt.Errorf("failed to migrate market database: %w", err)
	}
	container.MarketDB = marketDB

	return container, nil
}
