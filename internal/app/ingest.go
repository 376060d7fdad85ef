package app

import (
	"context"
	"fmt"

	"github.com/guttosm/xnftpulse/config"
	"github.com/guttosm/xnftpulse/internal/ingestion"
	"github.com/guttosm/xnftpulse/internal/logger"
	"github.com/guttosm/xnftpulse/internal/publisher"
	"github.com/guttosm/xnftpulse/internal/xrpl"
)

// NewPublisher returns the Kafka publisher when enabled, otherwise a no-op one.
func NewPublisher(cfg config.Config) publisher.Publisher {
	if !cfg.Kafka.Enabled {
		return publisher.NewNop()
	}
	logger.L().Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("kafka publishing enabled")
	return publisher.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
}

// NewDialer opens one XRPL WebSocket connection per call.
func NewDialer(cfg config.Config) ingestion.Dialer {
	xcfg := xrpl.Config{
		URL:       cfg.XRPL.URL,
		Timeout:   cfg.XRPL.Timeout,
		PageLimit: cfg.XRPL.PageLimit,
		MaxPages:  cfg.XRPL.MaxPages,
	}
	return func(ctx context.Context) (ingestion.Fetcher, error) {
		c, err := xrpl.Dial(ctx, xcfg)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

// RunIngestion connects to Postgres and runs one ingestion pass with the
// configured XRPL source and publisher.
func RunIngestion(ctx context.Context, cfg config.Config, opts ingestion.Options) error {
	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize postgres: %w", err)
	}
	defer func() { _ = db.Close() }()

	pub := publisherCtor(cfg)
	defer func() {
		if err := pub.Close(); err != nil {
			logger.L().Warn().Err(err).Msg("close publisher")
		}
	}()

	return ingestion.ProcessNFTs(ctx, db, dialerCtor(cfg), pub, opts)
}

// publisherCtor and dialerCtor are indirections overridden in tests.
var (
	publisherCtor = NewPublisher
	dialerCtor    = NewDialer
)
