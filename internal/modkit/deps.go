package modkit

import (
	"holidays/internal/core/catalog"
	"holidays/internal/core/holidays"
	"holidays/internal/platform/config"
	"holidays/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
type Deps struct {
	Log    *logger.Logger
	Cfg    config.Conf
	Engine *holidays.Engine
}

// Catalog is the engine's catalogue, nil when no engine is wired
func (d Deps) Catalog() *catalog.Catalog {
	if d.Engine == nil {
		return nil
	}
	return d.Engine.Catalog()
}

// Logger returns Log or the root logger
func (d Deps) Logger() *logger.Logger {
	if d.Log == nil {
		return logger.Get()
	}
	return d.Log
}
