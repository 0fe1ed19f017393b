// Package notify publishes content-change events to NATS so sibling
// processes can evict their caches ahead of TTL expiry.
package notify

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/docsite/internal/cache"
	"git.home.luguber.info/inful/docsite/internal/config"
)

// Publisher forwards cache change events to a NATS subject. Delivery is
// fire-and-forget; a lost event is corrected by TTL expiry on the far side.
type Publisher struct {
	conn    *nats.Conn
	subject string
}

// NewPublisher connects to NATS per the notify configuration.
func NewPublisher(cfg config.NotifyConfig) (*Publisher, error) {
	if !cfg.Enabled {
		return nil, fmt.Errorf("notify is disabled")
	}

	conn, err := nats.Connect(cfg.URL,
		nats.Name("docsite"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	slog.Info("NATS change publisher initialized",
		slog.String("url", cfg.URL),
		slog.String("subject", cfg.Subject))

	return &Publisher{conn: conn, subject: cfg.Subject}, nil
}

// Publish implements cache.ChangePublisher.
func (p *Publisher) Publish(event cache.ChangeEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal change event: %w", err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publish change event: %w", err)
	}
	return nil
}

// Close drains and closes the NATS connection.
func (p *Publisher) Close() {
	if p.conn != nil {
		_ = p.conn.Drain()
	}
}
