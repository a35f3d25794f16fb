package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpadapter "github.com/Okyu59/astro-seek/internal/adapters/http"
	"github.com/Okyu59/astro-seek/internal/config"
	"github.com/Okyu59/astro-seek/internal/domain"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "astroseek",
	Short:         "Birth chart and reading service",
	Long:          "astroseek resolves natal charts through a prioritized list of sources and answers questions about them.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadDotEnv(envFile)
	},
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var chartFlags struct {
	date, time, city string
}

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Resolve one chart and print it as JSON",
	Args:  cobra.NoArgs,
	RunE:  runChart,
}

var askFlags struct {
	question string
}

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Resolve a chart and ask a question about it",
	Args:  cobra.NoArgs,
	RunE:  runAsk,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	for _, c := range []*cobra.Command{chartCmd, askCmd} {
		c.Flags().StringVar(&chartFlags.date, "date", "", "birth date, YYYY-MM-DD")
		c.Flags().StringVar(&chartFlags.time, "time", "12:00", "birth time, HH:MM")
		c.Flags().StringVar(&chartFlags.city, "city", "Seoul", "birth city label")
		_ = c.MarkFlagRequired("date")
	}
	askCmd.Flags().StringVarP(&askFlags.question, "question", "q", "", "question about the chart")
	_ = askCmd.MarkFlagRequired("question")

	rootCmd.AddCommand(serveCmd, chartCmd, askCmd)
}

func newLogger(level slog.Level, w io.Writer) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := newLogger(cfg.LogLevel, os.Stdout)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := build(ctx, cfg, logger)
	logger.Info("capabilities",
		"sources", svc.caps.Sources,
		"ephemeris", svc.caps.Ephemeris,
		"browser", svc.caps.Browser,
		"llm_provider", svc.caps.LLMProvider,
		"llm", svc.caps.LLM,
		"frontend", svc.caps.Frontend,
	)

	handler := httpadapter.NewHandler(svc.charts, svc.asker, svc.caps, cfg.FrontendDir, logger)
	e := httpadapter.NewServer(handler, logger, cfg.CORSOrigins)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.HTTPAddr)
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	return nil
}

func runChart(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := newLogger(cfg.LogLevel, cmd.ErrOrStderr())
	svc := build(cmd.Context(), cfg, logger)

	res := svc.charts.Resolve(cmd.Context(), chartRequest())
	return printJSON(cmd.OutOrStdout(), res)
}

func runAsk(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := newLogger(cfg.LogLevel, cmd.ErrOrStderr())
	svc := build(cmd.Context(), cfg, logger)

	chart := svc.charts.Resolve(cmd.Context(), chartRequest())
	resp := svc.asker.Ask(cmd.Context(), domain.InterpretationRequest{
		Question: askFlags.question,
		Planets:  chart.Planets,
	})
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, chart.Summary)
	fmt.Fprintln(out)
	fmt.Fprintln(out, resp.Answer)
	return nil
}

func chartRequest() domain.ChartRequest {
	return domain.ChartRequest{Date: chartFlags.date, Time: chartFlags.time, City: chartFlags.city}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
