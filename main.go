package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sys/unix"

	"github.com/jiyeol-lee/psgnews/pkg/config"
	"github.com/jiyeol-lee/psgnews/pkg/logging"
	"github.com/jiyeol-lee/psgnews/pkg/news"
	"github.com/jiyeol-lee/psgnews/pkg/screen"
	"github.com/jiyeol-lee/psgnews/pkg/webview"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (default $PSGNEWS_CONFIG)")
	endpoint := flag.String("endpoint", "", "news endpoint URL, overrides the config file")
	logFile := flag.String("log-file", "", "diagnostic log file, overrides the config file")
	flag.Parse()

	cfg := config.Load(*configPath, logging.New(os.Stderr, "warn").Warn)
	if *endpoint != "" {
		cfg.Endpoint = *endpoint
	}
	if *logFile != "" {
		cfg.Logging.File = *logFile
	}

	logger, f, err := logging.NewFile(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Error opening log file: %v", err)
	}
	defer f.Close()
	slog.SetDefault(logger)

	n, err := news.NewNews(cfg.Endpoint, logger)
	if err != nil {
		log.Fatalf("Error creating news client: %v", err)
	}

	fetcher := webview.NewFetcher(webview.Options{
		Timeout:     cfg.WebView.Timeout,
		MaxBodySize: cfg.WebView.MaxBodySize,
		UserAgent:   cfg.WebView.UserAgent,
	})
	s := screen.New(n, webview.New(fetcher, logger), screen.Options{
		PlaceholderImage: cfg.PlaceholderImage,
		Logger:           logger,
	})

	p := tea.NewProgram(s, tea.WithAltScreen(), tea.WithoutSignalHandler())

	// to handle graceful shutdown on SIGINT or SIGTERM
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, unix.SIGINT, unix.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("received signal, shutting down", slog.String("signal", sig.String()))
		p.Send(screen.TeardownMsg{})
	}()

	logger.Info("starting news reader", slog.String("endpoint", n.Endpoint()))
	if _, err := p.Run(); err != nil {
		logger.Error("program stopped", slog.String("error", err.Error()))
		log.Fatalf("Error running program: %v", err)
	}
}

