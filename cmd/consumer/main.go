package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/config"
	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/internal/display"
	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/internal/pipeline"
	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/internal/transport"
	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("bad environment: " + err.Error() + "\n")
		os.Exit(1)
	}

	flag.StringVar(&cfg.Group, "group", cfg.Group, "multicast group to join")
	flag.IntVar(&cfg.Port, "port", cfg.Port, "UDP port")
	flag.StringVar(&cfg.Listen, "listen", cfg.Listen, "local bind address")
	flag.BoolVar(&cfg.NoDisplay, "no-display", cfg.NoDisplay, "suppress terminal rendering; stats still emitted")
	flag.StringVar(&cfg.MetricsAddress, "metrics", cfg.MetricsAddress, "prometheus listen address (empty = disabled)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug|info|warn|error")
	flag.Parse()

	log := logger.Must(cfg.LogLevel)
	defer log.Sync()

	conn, err := transport.OpenReceiver(cfg.Group, cfg.Port, cfg.Listen)
	if err != nil {
		log.Fatal("startup failed", zap.Error(err))
	}
	log.Info("joined multicast group",
		zap.String("group", cfg.Group),
		zap.Int("port", cfg.Port),
		zap.String("listen", cfg.Listen),
	)

	if cfg.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			if err := http.ListenAndServe(cfg.MetricsAddress, mux); err != nil {
				log.Error("metrics listener", zap.Error(err))
			}
		}()
	}

	obs := display.New(os.Stdout, !cfg.NoDisplay)
	p := pipeline.New(conn, obs, pipeline.DefaultReportInterval, log)
	p.Start()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("shutting down")
	p.Stop()
	conn.Close()
}
