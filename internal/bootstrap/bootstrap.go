package bootstrap

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-arcade/menuroute/internal/config"
	"github.com/go-arcade/menuroute/internal/router"
	"github.com/go-arcade/menuroute/internal/service"
	httpx "github.com/go-arcade/menuroute/pkg/http"
	"github.com/go-arcade/menuroute/pkg/log"
	"github.com/go-arcade/menuroute/pkg/metrics"
	"github.com/go-arcade/menuroute/pkg/shutdown"
	"github.com/go-arcade/menuroute/pkg/trace"
)

type App struct {
	Server   *httpx.Server
	Metrics  *metrics.Server
	Menu     *service.MenuService
	Shutdown *shutdown.Manager
	AppConf  *config.AppConfig
}

// InitAppFunc init app function type
type InitAppFunc func(appConf *config.AppConfig, logger *log.Logger) (*App, func(), error)

func NewApp(
	rt *router.Router,
	server *httpx.Server,
	metricsServer *metrics.Server,
	menu *service.MenuService,
	shutdownMgr *shutdown.Manager,
	appConf *config.AppConfig,
) *App {
	// 注册中间件与路由
	rt.Router()

	return &App{
		Server:   server,
		Metrics:  metricsServer,
		Menu:     menu,
		Shutdown: shutdownMgr,
		AppConf:  appConf,
	}
}

// Bootstrap loads config, sets up logging and tracing, then builds the App
func Bootstrap(configFile string, initApp InitAppFunc) (*App, func(), error) {
	appConf, err := config.LoadConfigFile(configFile)
	if err != nil {
		return nil, nil, err
	}

	// 替换全局 logger
	logger, err := log.ProvideLogger(&appConf.Log)
	if err != nil {
		return nil, nil, err
	}

	_, traceCleanup, err := trace.InitTracerProvider(context.Background(), appConf.Trace)
	if err != nil {
		return nil, nil, err
	}

	app, appCleanup, err := initApp(appConf, logger)
	if err != nil {
		traceCleanup()
		return nil, nil, err
	}

	cleanup := func() {
		appCleanup()
		traceCleanup()
	}
	return app, cleanup, nil
}

// Run start app and wait for exit signal, then gracefully shutdown
func Run(app *App, cleanup func()) {
	appConf := app.AppConf

	if err := app.Metrics.Start(); err != nil {
		log.Errorw("metrics server failed to start", "error", err)
	}
	app.Server.Start()

	// 逆序执行: 先停 HTTP，再停 metrics
	app.Shutdown.Register("metrics", app.Metrics.Stop)
	app.Shutdown.Register("http", app.Server.Shutdown)

	// set signal listener (graceful shutdown)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case sig := <-quit:
		log.Infof("Received signal: %v, shutting down gracefully...", sig)
	case <-app.Shutdown.Wait():
		log.Info("Shutdown requested, shutting down gracefully...")
	}

	timeout := time.Duration(appConf.Http.ShutdownTimeout) * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := app.Shutdown.Run(shutdownCtx); err != nil {
		log.Errorw("graceful shutdown incomplete", "error", err)
	}

	// close source, cache and tracer
	cleanup()

	log.Info("Server shutdown complete")
	_ = log.Sync()
}
