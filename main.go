package main

import (
	"github.com/petdirectory/api/internal/configuration"
	"github.com/petdirectory/api/internal/core"
	"github.com/petdirectory/api/internal/database"

	"go.uber.org/zap"
)

func main() {
	zap.ReplaceGlobals(zap.Must(zap.NewProduction()))

	config := configuration.Read()
	core.NewLogger(config.App.LogLevel)

	db := database.InitDB(config.Database)
	cache := core.NewCache(config.Cache)
	notify := core.NewNotifier(config.Notifier)
	activityLogger := core.NewActivityLogger(config.Activity)

	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		_ = cache.Close()
		_ = activityLogger.Close()
	}()

	core.CreateAdminUser(db, config)

	core.StartHTTPServer(config, db, cache, activityLogger, notify)
}
