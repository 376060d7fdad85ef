// Package publisher forwards reconstructed acceptances to downstream sinks.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/guttosm/xnftpulse/internal/domain/models"
)

// Publisher delivers a batch of acceptances, in order.
type Publisher interface {
	Publish(ctx context.Context, events []models.AcceptanceEvent) error
	Close() error
}

type nop struct{}

// NewNop returns a Publisher that drops every event.
func NewNop() Publisher { return nop{} }

func (nop) Publish(context.Context, []models.AcceptanceEvent) error { return nil }
func (nop) Close() error                                            { return nil }

// Console writes one JSON document per event to w.
type Console struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewConsole returns a Console publisher writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{enc: json.NewEncoder(w)}
}

func (c *Console) Publish(ctx context.Context, events []models.AcceptanceEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range events {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.enc.Encode(&events[i]); err != nil {
			return fmt.Errorf("console publish: %w", err)
		}
	}
	return nil
}

func (c *Console) Close() error { return nil }
