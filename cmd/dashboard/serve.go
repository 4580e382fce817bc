package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/channel-dashboard/internal/config"
	"github.com/jonathan/channel-dashboard/internal/server"
	"github.com/jonathan/channel-dashboard/internal/session"
)

var (
	servePort             int
	serveConfig           string
	serveFile             string
	serveRateLimit        bool
	serveUploadsPerMinute int
	serveMaxUploadMB      int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that accepts workbook uploads and serves channel reports, filter options and supply/demand series.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default: DASHBOARD_PORT or 8080)")
	serveCmd.Flags().StringVarP(&serveConfig, "config", "c", "", "Path to JSON or YAML config (default: DASHBOARD_CONFIG)")
	serveCmd.Flags().StringVarP(&serveFile, "file", "f", "", "Workbook to load at startup")
	serveCmd.Flags().BoolVar(&serveRateLimit, "rate-limit", true, "Throttle uploads and reports per client")
	serveCmd.Flags().IntVar(&serveUploadsPerMinute, "uploads-per-minute", 30, "Upload limit per client when rate limiting")
	serveCmd.Flags().IntVar(&serveMaxUploadMB, "max-upload-mb", 32, "Largest accepted upload in MiB")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	env, err := config.NewEnv()
	if err != nil {
		return err
	}
	port := servePort
	if port == 0 {
		port = env.Port
	}

	configPath := serveConfig
	if configPath == "" {
		configPath = env.ConfigPath
	}
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	sess := session.New(cfg, session.WithLogger(logger))
	if serveFile != "" {
		if _, err := sess.LoadFile(serveFile); err != nil {
			return fmt.Errorf("failed to load dataset: %w", err)
		}
	}

	srv := server.New(server.Config{
		Port:             port,
		RateLimit:        serveRateLimit,
		UploadsPerMinute: serveUploadsPerMinute,
		MaxUploadBytes:   int64(serveMaxUploadMB) << 20,
	}, sess, logger)

	logger.Info("starting dashboard", zap.Int("port", port), zap.Bool("preloaded", serveFile != ""))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return srv.Start(ctx)
}
