package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "greenstack/docs"
	"greenstack/internal/config"
	"greenstack/internal/discovery"
	"greenstack/internal/handlers"
	"greenstack/internal/hardware"
	"greenstack/internal/logger"
	"greenstack/internal/metrics"
	"greenstack/internal/models"
	"greenstack/internal/repository"
	"greenstack/internal/repository/db"
	"greenstack/internal/server"
	"greenstack/internal/service"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the device: connect, then serve the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, v, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	defer func() { _ = log.Sync() }()
	log.Infow("config_loaded", "file", config.Used(v), "port", cfg.Port, "version", version)

	conn, err := openDB(cfg, log)
	if err != nil {
		log.Errorw("failed to init sqlite", "err", err)
		return err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	m := metrics.New()
	restarter := hardware.NewProcessRestarter()
	radio := hardware.NewSimRadio(cfg.Simulator.Networks, cfg.Simulator.AssociateDelay)
	pumpPin := hardware.NewSimOutput("pump", func(name string, high bool) {
		log.Debugw("gpio_write", "pin", name, "high", high)
	})

	var announcer service.Announcer
	var adv *discovery.Advertiser
	if cfg.MDNS.Enabled {
		httpPort, perr := strconv.Atoi(cfg.Port)
		if perr != nil {
			log.Warnw("mdns_disabled", "reason", "non-numeric port", "port", cfg.Port)
		} else {
			adv = discovery.NewAdvertiser(cfg.Device.Hostname, cfg.MDNS.Service, httpPort, log)
			announcer = adv
		}
	}

	services := service.NewService(settingsFrom(cfg), service.Dependencies{
		Repos:     repos,
		Radio:     radio,
		PumpPin:   pumpPin,
		Sensors:   hardware.NewSimSensors(uint64(time.Now().UnixNano())),
		Restarter: restarter,
		Announcer: announcer,
		Metrics:   m,
		Log:       log,
	})

	// station mode first, access point as fallback
	state := services.Connectivity.Bootstrap(cmd.Context())
	log.Infow("connectivity_ready", "state", state)

	apiHandler := handlers.NewHandler(services, log,
		handlers.WithMetrics(m),
		handlers.WithRateLimit(cfg.RateLimit.PerSec, cfg.RateLimit.Burst),
		handlers.WithRestartDelay(cfg.Restart.Delay),
	)

	srv := &server.Server{}
	serveErr := runHTTPServer(srv, cfg.Port, apiHandler, log)

	restart, err := waitForShutdown(serveErr, restarter, log)
	shutdown(srv, services, adv, log)
	if err != nil {
		return err
	}

	if restart {
		log.Infow("restarting")
		_ = log.Sync()
		_ = conn.Close()
		return restarter.Exec()
	}
	return nil
}

func settingsFrom(cfg *config.Config) service.Settings {
	return service.Settings{
		Connectivity: service.ConnectivityConfig{
			Hostname:           cfg.Device.Hostname,
			Defaults:           models.NetworkCredentials{SSID: cfg.Wifi.DefaultSSID, Password: cfg.Wifi.DefaultPassword},
			AccessPoint:        models.NetworkCredentials{SSID: cfg.Wifi.APSSID, Password: cfg.Wifi.APPassword},
			BootTimeout:        cfg.Wifi.BootTimeout,
			InteractiveTimeout: cfg.Wifi.InteractiveTimeout,
			PollInterval:       cfg.Wifi.PollInterval,
			SettleDelay:        cfg.Wifi.SettleDelay,
		},
		PumpDuration:   cfg.Pump.Duration,
		SensorCacheTTL: cfg.Sensors.CacheTTL,
	}
}

// openDB initializes the SQLite database using configuration.
func openDB(cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	path := cfg.DB.Path
	if path == "" {
		log.Infow("db.path not set in config; using default file", "default", "greenstack.db")
		path = "greenstack.db"
	}
	return db.InitDB(path)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		if port == "" {
			port = "8080"
		}
		log.Infow("http_listening", "port", port)
		errCh <- srv.Run(port, handler.InitRoutes())
	}()
	return errCh
}

// waitForShutdown blocks until a signal, a restart request or a server
// failure. It reports whether a restart was requested.
func waitForShutdown(serveErr <-chan error, restarter *hardware.ProcessRestarter, log *logger.Logger) (bool, error) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		log.Infow("shutting down server...", "signal", sig.String())
		return false, nil
	case <-restarter.Requested():
		log.Infow("shutting down server...", "reason", "restart requested")
		return true, nil
	case err := <-serveErr:
		if err != nil {
			log.Errorw("error starting server", "err", err)
		}
		return false, err
	}
}

// shutdown drains HTTP requests, lets an active pump run finish and
// withdraws the mDNS record.
func shutdown(srv *server.Server, services *service.Service, adv *discovery.Advertiser, log *logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
	if err := services.Pump.Wait(ctx); err != nil {
		log.Warnw("pump_run_interrupted", "err", err)
	}
	if adv != nil {
		adv.Withdraw()
	}
}
