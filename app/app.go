package app

import (
	"errors"
	"fmt"
	"sync"

	"github.com/golang-migrate/migrate/v4"
	"github.com/hooktrail/hooktrail"
	"github.com/hooktrail/hooktrail/admin"
	"github.com/hooktrail/hooktrail/admin/api"
	"github.com/hooktrail/hooktrail/config"
	"github.com/hooktrail/hooktrail/db"
	"github.com/hooktrail/hooktrail/db/migrator"
	"github.com/hooktrail/hooktrail/deliverer"
	"github.com/hooktrail/hooktrail/pkg/log"
	"github.com/hooktrail/hooktrail/service"
	uuid "github.com/satori/go.uuid"
	"go.uber.org/zap"
)

var (
	ErrApplicationStarted = errors.New("already started")
	ErrApplicationStopped = errors.New("already stopped")
)

type Application struct {
	nodeID string

	cfg *config.Config

	mux     sync.Mutex
	started bool

	stop chan struct{}

	log   *zap.SugaredLogger
	db    *db.DB
	srv   *service.Service
	admin *admin.Admin
}

func New(cfg *config.Config) (*Application, error) {
	app := &Application{
		nodeID: uuid.NewV4().String(),
		cfg:    cfg,
		stop:   make(chan struct{}),
	}

	err := app.initialize()
	if err != nil {
		return nil, err
	}

	return app, nil
}

func (app *Application) initialize() error {
	cfg := app.cfg

	log, err := log.NewZapLogger(&cfg.Log)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(log.Desugar())
	app.log = log

	sqlDB, err := db.NewSqlDB(cfg.Database)
	if err != nil {
		return err
	}
	app.db = db.NewDB(sqlDB, log)

	app.srv = service.NewService(service.Options{
		Log:       log,
		DB:        app.db,
		Deliverer: deliverer.NewHTTPDeliverer(&cfg.Deliverer),
	})

	if cfg.Admin.IsEnabled() {
		api := api.NewAPI(api.Options{
			Config:  cfg,
			Service: app.srv,
		})
		app.admin = admin.NewAdmin(cfg.Admin, api.Handler())
	}

	return nil
}

func (app *Application) DB() *db.DB {
	return app.db
}

func (app *Application) NodeID() string {
	return app.nodeID
}

func (app *Application) Config() *config.Config {
	return app.cfg
}

// Start starts application
func (app *Application) Start() error {
	app.mux.Lock()
	defer app.mux.Unlock()

	if app.started {
		return ErrApplicationStarted
	}

	version, dirty, err := migrator.New(app.cfg).Status()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return errors.New("database is not up to date. Run 'hooktrail db up' before starting")
		}
		return err
	}
	if dirty {
		return fmt.Errorf("database is in a dirty state at version %d", version)
	}

	app.log.Infof("starting Hooktrail %s (node %s)", hooktrail.VERSION, app.nodeID)

	if app.admin != nil {
		app.admin.Start()
	}

	app.started = true

	return nil
}

func (app *Application) Wait() {
	<-app.stop
}

// Stop stops application
func (app *Application) Stop() error {
	app.mux.Lock()
	defer app.mux.Unlock()

	if !app.started {
		return ErrApplicationStopped
	}

	defer func() {
		app.log.Info("exit")
		_ = app.log.Sync()
	}()

	if app.admin != nil {
		_ = app.admin.Stop()
	}

	app.started = false
	app.stop <- struct{}{}

	return nil
}
