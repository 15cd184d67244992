package app

import (
	"github.com/nexcommerce/catalogd/config"
	"github.com/nexcommerce/catalogd/internal/catalog"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// AppContext combines all provider interfaces for full application context.
// Handlers should depend on specific providers or this combined interface.
type AppContext interface {
	DBProvider
	ConfigProvider
	SchedulerProvider

	// SyncScheduler returns the catalog sync trigger component
	SyncScheduler() *catalog.SyncScheduler
	// ProductRepo returns the catalog product repository
	ProductRepo() catalog.ProductRepository

	// Application lifecycle methods
	MigrateDB(track bool) error
	InitDb()
	DropAll()
}
