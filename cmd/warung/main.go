package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/karlos2005535/warung-sederhana/pkg/warung/domain/model"
	"github.com/karlos2005535/warung-sederhana/pkg/warung/domain/service"
	"github.com/karlos2005535/warung-sederhana/pkg/warung/infrastructure/config"
	"github.com/karlos2005535/warung-sederhana/pkg/warung/infrastructure/event"
	"github.com/karlos2005535/warung-sederhana/pkg/warung/infrastructure/password"
	"github.com/karlos2005535/warung-sederhana/pkg/warung/infrastructure/storage/bolt"
	"github.com/karlos2005535/warung-sederhana/pkg/warung/infrastructure/storage/memory"
	"github.com/karlos2005535/warung-sederhana/pkg/warung/infrastructure/storage/mysql"
	"github.com/karlos2005535/warung-sederhana/pkg/warung/infrastructure/transport"
)

// storage is what every backend hands the services.
type storage interface {
	Products() model.ProductRepository
	Categories() model.CategoryRepository
	Debts() model.DebtRepository
	Sales() model.SaleRepository
	Refunds() model.RefundRepository
	Users() model.UserRepository
}

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	app := &cli.App{
		Name:  "warung",
		Usage: "point-of-sale and inventory server for a small shop",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP API server",
				Action: func(c *cli.Context) error {
					return serve(c.Context, log)
				},
			},
			{
				Name:  "migrate",
				Usage: "apply database migrations (mysql driver only)",
				Action: func(c *cli.Context) error {
					return runMigrations(log)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("warung exited")
	}
}

func serve(ctx context.Context, log *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)

	store, closeStore, err := openStorage(cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	dispatcher := event.NewLogDispatcher(log)
	catalog := service.NewCatalogService(store.Products(), store.Categories(), dispatcher)
	debts := service.NewDebtService(store.Debts(), dispatcher)
	sales := service.NewSalesService(store.Sales(), store.Refunds(), store.Products(), dispatcher)
	auth := service.NewAuthService(store.Users(), password.NewBcryptManager(), dispatcher)

	if cfg.SeedDefaults {
		if err := service.SeedDefaultData(catalog); err != nil {
			return err
		}
	}

	handler := transport.NewHandler(catalog, debts, sales, auth, log)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithFields(logrus.Fields{
			"addr":   server.Addr,
			"driver": cfg.StorageDriver,
		}).Info("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openStorage(cfg *config.Config, log *logrus.Logger) (storage, func(), error) {
	switch cfg.StorageDriver {
	case "memory":
		return memory.New(), func() {}, nil
	case "mysql":
		store, err := mysql.Connect(cfg.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := store.Migrate(); err != nil {
			store.Close()
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	default:
		store, err := bolt.Open(cfg.BoltPath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	}
}

func runMigrations(log *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.StorageDriver != "mysql" {
		log.Info("nothing to migrate: bolt and memory drivers manage their own schema")
		return nil
	}

	store, err := mysql.Connect(cfg.MySQLDSN)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Migrate(); err != nil {
		return err
	}
	log.Info("migrations applied")
	return nil
}
