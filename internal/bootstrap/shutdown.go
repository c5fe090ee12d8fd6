package bootstrap

import (
	"context"

	"github.com/osse101/SlotGuard_Go/internal/logger"
	"github.com/osse101/SlotGuard_Go/internal/tracing"
)

// GracefulShutdown stops app in dependency order:
// 1. HTTP server (stop accepting new requests, finish in-flight ones)
// 2. Scheduler, then the worker pool (let a running job finish)
// 3. Database pool
// 4. Span exporter (flush what the steps above recorded)
//
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, app *App, shutdownTracing tracing.ShutdownFunc) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgShuttingDownServer)

	if app != nil {
		if app.Server != nil {
			if err := app.Server.Stop(ctx); err != nil {
				log.Error(LogMsgServerForcedShutdown, LogFieldError, err)
			}
		}
		if app.Scheduler != nil {
			app.Scheduler.Stop()
		}
		if app.Pool != nil {
			app.Pool.Stop()
		}
		if app.DB != nil {
			app.DB.Close()
		}
	}

	if shutdownTracing != nil {
		if err := shutdownTracing(ctx); err != nil {
			log.Error(LogMsgTracingShutdown, LogFieldError, err)
		}
	}

	log.Info(LogMsgServerStopped)
}
