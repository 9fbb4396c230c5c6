package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/common"
	"github.com/gaze-network/public-sale/common/errs"
	"github.com/gaze-network/public-sale/internal/config"
	"github.com/gaze-network/public-sale/modules/publicsale"
	"github.com/gaze-network/public-sale/pkg/automaxprocs"
	"github.com/gaze-network/public-sale/pkg/errorhandler"
	"github.com/gaze-network/public-sale/pkg/logger"
	"github.com/gaze-network/public-sale/pkg/logger/slogx"
	"github.com/gaze-network/public-sale/pkg/middleware/requestcontext"
	"github.com/gaze-network/public-sale/pkg/middleware/requestlogger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// Register Modules
var Modules = do.Package(
	do.LazyNamed(common.ModulePublicSale.String(), publicsale.New),
)

func NewRunCommand() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Start public-sale service",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := automaxprocs.Init(); err != nil {
				logger.Error("Failed to set GOMAXPROCS", slogx.Error(err))
			}
			defer automaxprocs.Undo()
			return runHandler(cmd, args)
		},
	}

	flags := runCmd.Flags()
	flags.Int("port", 8080, "HTTP server port")
	flags.String("database", "postgres", "Sale storage backend. E.g. `postgres` or `memory`")

	config.BindPFlag("http_server.port", flags.Lookup("port"))
	config.BindPFlag("modules.publicsale.database", flags.Lookup("database"))

	return runCmd
}

const (
	shutdownTimeout = 60 * time.Second
)

func runHandler(cmd *cobra.Command, _ []string) error {
	conf := config.Load()

	// Validate inputs and configurations
	{
		if !conf.Network.IsSupported() {
			return errors.Wrapf(errs.Unsupported, "%q network is not supported", conf.Network.String())
		}
	}

	// Initialize application process context
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx, slogx.Stringer("network", conf.Network))

	injector := do.New(Modules)
	do.ProvideValue(injector, conf)
	do.ProvideValue(injector, ctx)

	// Initialize HTTP server
	do.Provide(injector, func(i do.Injector) (*fiber.App, error) {
		app := fiber.New(conf.HTTPServer.RequestIP.Apply(fiber.Config{
			AppName:               "Gaze Public Sale",
			ErrorHandler:          errorhandler.NewHTTPErrorHandler(),
			DisableStartupMessage: true,
		}))
		app.Use(favicon.New())
		if conf.HTTPServer.AllowOrigins != "" {
			app.Use(cors.New(cors.Config{
				AllowOrigins: conf.HTTPServer.AllowOrigins,
				AllowHeaders: strings.Join([]string{
					fiber.HeaderContentType,
					conf.HTTPServer.Caller.Header,
					conf.HTTPServer.Caller.SignatureHeader,
					conf.HTTPServer.Caller.TimestampHeader,
				}, ","),
			}))
		}
		app.
			Use(requestid.New()).
			Use(requestcontext.New(
				requestcontext.WithRequestId(),
				requestcontext.WithClientIP(),
				requestcontext.WithCaller(conf.HTTPServer.Caller, conf.Network.ChainParams()),
			)).
			Use(requestlogger.New(conf.HTTPServer.Logger)).
			Use(fiberrecover.New(fiberrecover.Config{
				EnableStackTrace: true,
				StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
					buf := make([]byte, 1024) // bufLen = 1024
					buf = buf[:runtime.Stack(buf, false)]
					logger.ErrorContext(c.UserContext(), "Something went wrong, panic in http handler", slogx.Any("panic", e), slog.String("stacktrace", string(buf)))
				},
			})).
			Use(compress.New(compress.Config{
				Level: compress.LevelDefault,
			}))

		// Health check
		app.Get("/", func(c *fiber.Ctx) error {
			return errors.WithStack(c.SendStatus(http.StatusOK))
		})

		return app, nil
	})

	// Initialize modules, this mounts their routes on the HTTP server
	if _, err := do.InvokeNamed[*publicsale.Module](injector, common.ModulePublicSale.String()); err != nil {
		return errors.Wrapf(err, "can't init module %q", common.ModulePublicSale)
	}

	httpServer := do.MustInvoke[*fiber.App](injector)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.InfoContext(ctx, "Started HTTP server", slog.Int("port", conf.HTTPServer.Port))
		if err := httpServer.Listen(fmt.Sprintf(":%d", conf.HTTPServer.Port)); err != nil {
			return errors.Wrap(err, "error during running HTTP server")
		}
		return nil
	})
	g.Go(func() error {
		// Wait for interrupt signal or server failure to gracefully stop the server
		<-gctx.Done()
		logger.InfoContext(ctx, "Stopping HTTP server...")
		if err := httpServer.ShutdownWithTimeout(shutdownTimeout); err != nil {
			return errors.Wrap(err, "failed to shutdown HTTP server")
		}
		return nil
	})

	logger.InfoContext(ctx, "Gaze Public Sale started")

	// Force shutdown if timeout exceeded or got signal again
	go func() {
		<-gctx.Done()
		defer os.Exit(1)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		select {
		case <-ctx.Done():
			logger.FatalContext(ctx, "Received exit signal again. Force shutdown...")
		case <-time.After(shutdownTimeout + 15*time.Second):
			logger.FatalContext(ctx, "Shutdown timeout exceeded. Force shutdown...")
		}
	}()

	serverErr := g.Wait()

	if err := injector.Shutdown(); err != nil {
		logger.ErrorContext(ctx, "Failed while gracefully shutting down", slogx.Error(err))
	}

	return errors.WithStack(serverErr)
}
