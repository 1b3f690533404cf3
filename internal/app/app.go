package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	server "boxwalk/server"
	servernet "boxwalk/server/internal/net"
	"boxwalk/server/internal/world"
	"boxwalk/server/logging"
	loggingSinks "boxwalk/server/logging/sinks"
)

// Config carries the optional collaborators Run accepts from callers.
// Everything else comes from the environment.
type Config struct {
	Logger *log.Logger
}

// Run wires the logging router, level, hub, and HTTP surface together and
// serves until the listener fails.
//
// Environment:
//
//	ADDR          listen address, default :8080
//	LEVEL_PATH    level document to load, default built-in layout
//	LOG_JSON_PATH enable the JSON log sink at this path
func Run(ctx context.Context, cfg Config) error {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	logConfig := logging.DefaultConfig()
	namedSinks := []logging.NamedSink{
		{Name: "console", Sink: loggingSinks.NewConsole(os.Stdout)},
	}

	var jsonFile *os.File
	if path := os.Getenv("LOG_JSON_PATH"); path != "" {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open json log file: %w", err)
		}
		jsonFile = file
		logConfig.EnabledSinks = append(logConfig.EnabledSinks, "json")
		logConfig.JSON.FilePath = path
		namedSinks = append(namedSinks, logging.NamedSink{
			Name: "json",
			Sink: loggingSinks.NewJSON(file, logConfig.JSON.FlushInterval),
		})
	}

	router, err := logging.NewRouter(logging.SystemClock{}, logConfig, namedSinks)
	if err != nil {
		if jsonFile != nil {
			jsonFile.Close()
		}
		return fmt.Errorf("failed to construct logging router: %w", err)
	}
	defer func() {
		if cerr := router.Close(ctx); cerr != nil {
			logger.Printf("failed to close logging router: %v", cerr)
		}
		if jsonFile != nil {
			jsonFile.Close()
		}
	}()

	deps := world.Deps{Publisher: router}

	var level *world.Level
	if path := os.Getenv("LEVEL_PATH"); path != "" {
		level, err = world.LoadLevel(path, deps)
		if err != nil {
			return fmt.Errorf("failed to load level %q: %w", path, err)
		}
		logger.Printf("loaded level from %s", path)
	} else {
		level, err = world.NewLevel(world.DefaultConfig(), world.DefaultObjects(), deps)
		if err != nil {
			return fmt.Errorf("failed to build default level: %w", err)
		}
	}

	hub := server.NewHub(server.HubConfig{
		Level:     level,
		Publisher: router,
		Logger:    logger,
	})

	stop := make(chan struct{})
	go hub.RunSimulation(stop)
	defer close(stop)

	handler := servernet.NewHTTPHandler(hub, servernet.HTTPHandlerConfig{
		Logger: logger,
	})

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{Addr: addr, Handler: handler}
	logger.Printf("server listening on %s", srv.Addr)

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
