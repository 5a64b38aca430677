package main

import (
	"flag"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/config"
	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/internal/feed"
	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/internal/transport"
	"github.com/Paulo-BatistaFerraz/Real-Time-Market-Data-Feed-Handler/pkg/logger"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to the sim config JSON document")
		rate       = flag.Uint64("rate", 0, "override messages_per_second")
		duration   = flag.Uint64("duration", 0, "override duration_seconds")
		seed       = flag.Int64("seed", 0, "override seed (0 keeps the config value)")
		logLevel   = flag.String("log-level", "info", "debug|info|warn|error")
	)
	flag.Parse()

	log := logger.Must(*logLevel).With(zap.String("session", uuid.NewString()))
	defer log.Sync()

	cfg := config.DefaultSimConfig()
	if *configPath != "" {
		loaded, err := config.LoadSimConfig(*configPath)
		if err != nil {
			log.Fatal("load sim config", zap.Error(err))
		}
		cfg = loaded
	}
	if *rate > 0 {
		cfg.MessagesPerSecond = *rate
	}
	if *duration > 0 {
		cfg.DurationSeconds = *duration
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	conn, err := transport.OpenSender(cfg.MulticastAddress, cfg.Port)
	if err != nil {
		log.Fatal("startup failed", zap.Error(err))
	}
	defer conn.Close()

	log.Info("producing",
		zap.String("group", cfg.MulticastAddress),
		zap.Int("port", cfg.Port),
		zap.Strings("symbols", cfg.Symbols),
		zap.Uint64("rate", cfg.MessagesPerSecond),
		zap.Uint64("duration_s", cfg.DurationSeconds),
		zap.Int64("seed", cfg.Seed),
	)

	gen := feed.NewGenerator(cfg.Seed, cfg.Symbols, cfg.InitialPrices)
	batcher := feed.NewBatcher(gen, conn,
		cfg.MessagesPerSecond,
		time.Duration(cfg.DurationSeconds)*time.Second,
		log,
	)
	if _, err := batcher.Run(); err != nil {
		log.Fatal("send failed", zap.Error(err))
	}
}
