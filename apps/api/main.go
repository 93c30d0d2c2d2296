// Command api serves the school records REST endpoints from memory, for local runs of the console.
package main

import (
	"context"
	"fmt"
	"os"

	echoapi "github.com/trezcool/schooladmin/apps/api/echo"
	"github.com/trezcool/schooladmin/core"
	logsvc "github.com/trezcool/schooladmin/services/logger"
	"github.com/trezcool/schooladmin/storage/database/inmem"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(os.Stdout, "API", conf)

	store := inmemdb.New()
	admin, err := echoapi.SeedSuperAdmin(store, conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("seeding super admin: %v", err), err)
	}

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")
	logger.Info(fmt.Sprintf("super admin: %s", admin.Username))

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(&echoapi.Options{
		Conf:     conf,
		Logger:   logger,
		Store:    store,
		Validate: core.NewValidator(),
	})

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
