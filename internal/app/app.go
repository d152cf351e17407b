package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/tenantdesk-backend/internal/adapter/directory"
	memledger "github.com/heartmarshall/tenantdesk-backend/internal/adapter/memory/ledger"
	memrequest "github.com/heartmarshall/tenantdesk-backend/internal/adapter/memory/request"
	postgres "github.com/heartmarshall/tenantdesk-backend/internal/adapter/postgres"
	pgledger "github.com/heartmarshall/tenantdesk-backend/internal/adapter/postgres/ledger"
	pgrequest "github.com/heartmarshall/tenantdesk-backend/internal/adapter/postgres/request"
	"github.com/heartmarshall/tenantdesk-backend/internal/auth"
	"github.com/heartmarshall/tenantdesk-backend/internal/config"
	"github.com/heartmarshall/tenantdesk-backend/internal/domain"
	"github.com/heartmarshall/tenantdesk-backend/internal/service/activity"
	"github.com/heartmarshall/tenantdesk-backend/internal/service/lifecycle"
	"github.com/heartmarshall/tenantdesk-backend/internal/service/visibility"
	"github.com/heartmarshall/tenantdesk-backend/internal/transport/middleware"
	"github.com/heartmarshall/tenantdesk-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, opens the
// configured storage, wires services and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		versionAttrs(),
		slog.String("log_level", cfg.Log.Level),
		slog.String("storage", cfg.Storage.Driver),
	)

	dir, err := directory.Load(cfg.Directory.SeedPath)
	if err != nil {
		return fmt.Errorf("load directory: %w", err)
	}

	st, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.close()

	srv, stop := newServer(cfg, logger, dir, st)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down http server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		watchDirectory(gctx, dir, logger)
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("application stopped")
	return nil
}

// watchDirectory reloads the directory seed on SIGHUP until ctx is done.
func watchDirectory(ctx context.Context, dir *directory.Directory, logger *slog.Logger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			if err := dir.Reload(ctx); err != nil {
				logger.ErrorContext(ctx, "directory reload failed", slog.String("error", err.Error()))
				continue
			}
			logger.InfoContext(ctx, "directory reloaded")
		}
	}
}

type requestStore interface {
	Get(ctx context.Context, id string) (*domain.ServiceRequest, error)
	List(ctx context.Context, filter domain.RequestFilter) ([]domain.ServiceRequest, error)
	Create(ctx context.Context, draft domain.ServiceRequestDraft, fn func(ctx context.Context, sr *domain.ServiceRequest) error) (*domain.ServiceRequest, error)
	Mutate(ctx context.Context, id string, fn func(ctx context.Context, sr *domain.ServiceRequest) error) (*domain.ServiceRequest, error)
}

type activityLedger interface {
	Append(ctx context.Context, items ...domain.ActivityLogItem) ([]domain.ActivityLogItem, error)
	ListFor(ctx context.Context, relatedEntityID string, order domain.SortOrder) ([]domain.ActivityLogItem, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

// storage bundles the request store and ledger of one driver. pinger is
// nil when there is nothing to health-check.
type storage struct {
	requests requestStore
	ledger   activityLedger
	pinger   pinger
	close    func()
}

func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		if cfg.Database.AutoMigrate {
			if err := postgres.Migrate(ctx, pool, logger); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrate: %w", err)
			}
		}
		return &storage{
			requests: pgrequest.New(pool),
			ledger:   pgledger.New(pool),
			pinger:   pool,
			close:    pool.Close,
		}, nil
	default:
		return &storage{
			requests: memrequest.New(),
			ledger:   memledger.New(),
			close:    func() {},
		}, nil
	}
}

// newServer wires services and transport. The returned func releases
// background resources.
func newServer(cfg *config.Config, logger *slog.Logger, dir *directory.Directory, st *storage) (*http.Server, func()) {
	vis := visibility.NewService(logger, st.requests, dir)
	lc := lifecycle.NewService(logger, st.requests, st.ledger, dir, dir)
	act := activity.NewService(logger, st.ledger, vis)

	jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)

	var limiter middleware.Middleware
	stop := func() {}
	if cfg.RateLimit.Enabled() {
		rl := middleware.NewRateLimiter(5 * time.Minute)
		limiter = rl.Limit(cfg.RateLimit.Requests, cfg.RateLimit.Window)
		stop = rl.Stop
	}

	router := rest.NewRouter(rest.Handlers{
		Health:          rest.NewHealthHandler(st.pinger, BuildVersion()),
		ServiceRequests: rest.NewServiceRequestHandler(lc, vis, logger),
		Activity:        rest.NewActivityHandler(act, logger),
		Contractors:     rest.NewContractorHandler(dir, logger),
	}, middleware.Chain(middleware.Auth(jwt), limiter))

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)(router)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return srv, stop
}
