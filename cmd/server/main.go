package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/baditaflorin/go_fuzzy_compare/internal/adapters/logger"
	"github.com/baditaflorin/go_fuzzy_compare/internal/api"
	"github.com/baditaflorin/go_fuzzy_compare/internal/config"
	"github.com/baditaflorin/go_fuzzy_compare/internal/core/algorithm"
	"github.com/baditaflorin/go_fuzzy_compare/internal/core/fuzzy"
	"github.com/baditaflorin/go_fuzzy_compare/internal/ports"
	"github.com/baditaflorin/go_fuzzy_compare/internal/warmup"
	"github.com/baditaflorin/l"
	"github.com/valyala/fasthttp"
)

func main() {
	configPath := flag.String("config", "", "TOML config file (optional)")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	readTimeout := flag.Duration("read-timeout", 0, "HTTP read timeout (overrides config)")
	writeTimeout := flag.Duration("write-timeout", 0, "HTTP write timeout (overrides config)")
	maxRequestSize := flag.Int("max-request-size", 0, "Maximum request size in bytes (overrides config)")
	concurrency := flag.Int("concurrency", -1, "Maximum number of concurrent requests, 0 = fasthttp default (overrides config)")
	warmUp := flag.Bool("warm-up", true, "Perform system warm-up on startup")
	logFile := flag.String("log-file", "", "Log file path (empty = stdout, overrides config)")
	watchConfig := flag.Bool("watch-config", true, "Reload compare defaults when the config file changes")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	applyFlags(&cfg, *port, *readTimeout, *writeTimeout, *maxRequestSize, *concurrency, *logFile)
	cfg.Server.WarmUp = cfg.Server.WarmUp && *warmUp
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := createLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting fuzzy compare HTTP server",
		"port", cfg.Server.Port,
		"read_timeout", cfg.Server.ReadTimeout.Duration,
		"write_timeout", cfg.Server.WriteTimeout.Duration,
		"max_request_size", cfg.Server.MaxRequestSize,
		"concurrency", cfg.Server.Concurrency,
		"algorithm", cfg.Compare.Algorithm,
		"preprocessor", cfg.Compare.Preprocessor,
	)

	if cfg.Server.WarmUp {
		if err := warmUpDefaults(cfg.Compare, log); err != nil {
			log.Error("Warm-up failed", "error", err)
			os.Exit(1)
		}
	}

	handler := api.NewHandler(cfg, log)

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	if *configPath != "" && *watchConfig {
		go func() {
			err := config.Watch(watchCtx, *configPath, config.DefaultWatchDebounce, log, func(next config.Config) {
				// Listener, timeouts and logging are fixed at startup.
				handler.SetDefaults(next.Compare)
			})
			if err != nil {
				log.Error("Config watcher stopped", "error", err)
			}
		}()
	}
	server := &fasthttp.Server{
		Handler:               handler.HandleRequest,
		ReadTimeout:           cfg.Server.ReadTimeout.Duration,
		WriteTimeout:          cfg.Server.WriteTimeout.Duration,
		MaxRequestBodySize:    cfg.Server.MaxRequestSize,
		Concurrency:           cfg.Server.Concurrency,
		DisableKeepalive:      false,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
		Logger:                nil, // requests are logged by the handler
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		log.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			log.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("Server listening", "address", addr)
	if err := server.ListenAndServe(addr); err != nil {
		log.Error("Server error", "error", err)
		return
	}

	<-idleConnsClosed
	log.Info("Server stopped")
}

func applyFlags(cfg *config.Config, port int, readTimeout, writeTimeout time.Duration, maxRequestSize, concurrency int, logFile string) {
	if port > 0 {
		cfg.Server.Port = port
	}
	if readTimeout > 0 {
		cfg.Server.ReadTimeout.Duration = readTimeout
	}
	if writeTimeout > 0 {
		cfg.Server.WriteTimeout.Duration = writeTimeout
	}
	if maxRequestSize > 0 {
		cfg.Server.MaxRequestSize = maxRequestSize
	}
	if concurrency >= 0 {
		cfg.Server.Concurrency = concurrency
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}
}

// warmUpDefaults exercises the configured preprocessor and every registered scorer once per
// iteration so the first requests do not pay for cold caches.
func warmUpDefaults(cc config.CompareConfig, log ports.Logger) error {
	p, err := cc.BuildPreprocessor()
	if err != nil {
		return err
	}

	mgr := warmup.NewManager(log, warmup.DefaultWarmupConfig())
	mgr.RegisterPreprocessor(p)
	for _, name := range fuzzy.Names() {
		scorer, err := fuzzy.ByName(name)
		if err != nil {
			return err
		}
		mgr.RegisterComparer(algorithm.NewWithPreprocessor(scorer, p))
	}
	mgr.WarmUp(context.Background())

	log.Info("Similarity algorithms warmed up",
		"scorers", len(fuzzy.Names()),
		"cpus", runtime.NumCPU(),
	)
	return nil
}

// createLogger creates and configures a logger
func createLogger(lc config.LogConfig) (ports.Logger, error) {
	var output io.Writer = os.Stdout
	if lc.File != "" {
		file, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	lcfg := logger.DefaultConfig(output, lc.JSON)
	lcfg.MaxFileSize = 100 * 1024 * 1024 // 100MB
	lg, err := l.NewStandardFactory().CreateLogger(lcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return logger.FromExisting(lg), nil
}
