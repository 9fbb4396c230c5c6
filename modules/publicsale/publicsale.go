package publicsale

import (
	"context"
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/public-sale/common/errs"
	"github.com/gaze-network/public-sale/internal/config"
	"github.com/gaze-network/public-sale/internal/postgres"
	"github.com/gaze-network/public-sale/modules/publicsale/api/httphandler"
	publicsaleconfig "github.com/gaze-network/public-sale/modules/publicsale/config"
	"github.com/gaze-network/public-sale/modules/publicsale/datagateway"
	"github.com/gaze-network/public-sale/modules/publicsale/repository/inmemory"
	pgrepository "github.com/gaze-network/public-sale/modules/publicsale/repository/postgres"
	"github.com/gaze-network/public-sale/modules/publicsale/sale"
	"github.com/gaze-network/public-sale/modules/publicsale/usecase"
	"github.com/gaze-network/public-sale/pkg/logger"
	"github.com/gaze-network/public-sale/pkg/logger/slogx"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/do/v2"
)

const Version = "v0.1.0"

// Module is the running public sale. Shutdown releases its storage.
type Module struct {
	Usecase *usecase.Usecase
	cleanup func()
}

func (m *Module) Shutdown() error {
	if m.cleanup != nil {
		m.cleanup()
	}
	return nil
}

// NewDataGateway opens the configured sale storage. The returned cleanup must be called once the gateway is no longer used.
func NewDataGateway(ctx context.Context, conf publicsaleconfig.Config) (datagateway.PublicSaleDataGateway, func(), error) {
	switch conf.Database {
	case publicsaleconfig.DatabasePostgres:
		pg, err := postgres.NewPool(ctx, conf.Postgres)
		if err != nil {
			return nil, nil, errors.Wrap(err, "can't create postgres connection pool")
		}
		return pgrepository.NewRepository(pg), pg.Close, nil
	case publicsaleconfig.DatabaseInMemory:
		logger.WarnContext(ctx, "Using in-memory storage, sale state is lost on restart")
		return inmemory.NewRepository(), func() {}, nil
	default:
		return nil, nil, errors.Wrapf(errs.Unsupported, "%q database is not supported", conf.Database)
	}
}

func New(injector do.Injector) (*Module, error) {
	ctx := do.MustInvoke[context.Context](injector)
	conf := do.MustInvoke[config.Config](injector)
	moduleConf := conf.Modules.PublicSale

	saleDg, cleanup, err := NewDataGateway(ctx, moduleConf)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	module := &Module{
		Usecase: usecase.New(saleDg, usecase.SystemClock{}),
		cleanup: cleanup,
	}

	if err := ensureInitialized(ctx, module.Usecase, moduleConf.Sale); err != nil {
		module.cleanup()
		return nil, errors.Wrap(err, "can't initialize sale")
	}

	httpServer := do.MustInvoke[*fiber.App](injector)
	handler := httphandler.New(conf.Network, moduleConf.Sale.SettlementDecimals, module.Usecase)
	if err := handler.Mount(httpServer); err != nil {
		module.cleanup()
		return nil, errors.Wrap(err, "can't mount public sale API")
	}
	logger.InfoContext(ctx, "Mounted public sale HTTP handler")

	return module, nil
}

// ensureInitialized stores the configured sale on first start. A stored sale always wins over the config file.
func ensureInitialized(ctx context.Context, uc *usecase.Usecase, saleConf publicsaleconfig.SaleConfig) error {
	stored, err := uc.GetSaleConfig(ctx)
	if err != nil && !errors.Is(err, sale.ErrNotInitialized) {
		return errors.WithStack(err)
	}

	params, err := saleConf.Params()
	if err != nil {
		return errors.Wrap(err, "invalid sale config")
	}

	if stored != nil {
		configured, err := sale.NewSaleConfig(params)
		if err != nil || !reflect.DeepEqual(configured, *stored) {
			logger.WarnContext(ctx, "Sale config differs from the stored sale, using the stored sale")
		}
		logger.InfoContext(ctx, "Loaded stored sale",
			slogx.Uint64("public_sale_time", stored.PublicSaleTime),
			slogx.Uint64("closed_time", stored.ClosedTime),
		)
		return nil
	}

	if _, err := uc.Initialize(ctx, params.Operator, params); err != nil {
		return errors.WithStack(err)
	}
	return nil
}
