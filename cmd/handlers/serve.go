package handlers

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"neighborly/internal/llm"
	"neighborly/internal/logger"
	"neighborly/internal/planner"
	"neighborly/internal/server"
)

// NewServeCmd creates the serve command for starting the HTTP server
func NewServeCmd() *cobra.Command {
	var (
		port        int
		host        string
		templateDir string
		dev         bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the event planning web form",
		Long: `Start the Neighborly web server.

The server provides:
  • The planning form at / (HTMX enhanced)
  • POST /api/plan for JSON clients
  • /health and Prometheus /metrics endpoints

Examples:
  # Start server on default port 8080
  neighborly serve

  # Start on custom port with template hot-reload
  neighborly serve --port 3000 --dev`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port, host, templateDir, dev)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "HTTP server port (default from config: 8080)")
	cmd.Flags().StringVar(&host, "host", "", "HTTP server host (default from config: 0.0.0.0)")
	cmd.Flags().StringVar(&templateDir, "template-dir", "", "Template directory (default from config)")
	cmd.Flags().BoolVar(&dev, "dev", false, "Reload templates on every request")

	return cmd
}

func runServe(port int, host, templateDir string, dev bool) error {
	cfg, err := loadConfig(os.Stdout)
	if err != nil {
		return err
	}
	log := logger.Get()

	serverCfg := cfg.Server
	if port != 0 {
		serverCfg.Port = port
	}
	if host != "" {
		serverCfg.Host = host
	}
	if templateDir != "" {
		serverCfg.TemplateDir = templateDir
	}
	if dev {
		serverCfg.DevMode = true
	}

	gen, err := llm.New(cfg.AI)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer closeGenerator(gen)

	p := planner.New(gen, cfg.Planner)
	if !p.Enabled() {
		log.Warn("Model generation disabled, serving fallback content only", "provider", cfg.AI.Provider)
	}

	srv, err := server.New(p, serverCfg, cfg.Metrics)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	go func() {
		log.Info(fmt.Sprintf("Server listening on http://%s", serverCfg.Address()))
		log.Info("Press Ctrl+C to stop")
		serverErrors <- srv.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil

	case sig := <-shutdown:
		log.Info("Server shutdown initiated", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), srv.ShutdownTimeout())
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown failed", "error", err)
			return err
		}

		log.Info("Server stopped successfully")
	}

	return nil
}
