// Package xrpl is a minimal WebSocket client for the nft_history method of
// an XRPL Clio server.
package xrpl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/guttosm/xnftpulse/internal/ledger"
	"github.com/guttosm/xnftpulse/internal/logger"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultPageLimit = 100
	defaultMaxPages  = 50
)

// ErrMaxPages is returned by FetchAll when the history still has a marker
// after the configured number of pages.
var ErrMaxPages = errors.New("nft_history page limit reached")

// Config controls the connection and pagination.
//
// Fields:
//   - URL: WebSocket endpoint, e.g. "wss://s2-clio.ripple.com:51233/".
//   - Timeout: per request round-trip deadline (default 30s).
//   - PageLimit: transactions requested per page (default 100).
//   - MaxPages: safety bound on marker pagination (default 50).
type Config struct {
	URL       string
	Timeout   time.Duration
	PageLimit int
	MaxPages  int
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.PageLimit <= 0 {
		c.PageLimit = defaultPageLimit
	}
	if c.MaxPages <= 0 {
		c.MaxPages = defaultMaxPages
	}
	return c
}

// RPCError is an error response returned by the server.
type RPCError struct {
	Code    string
	Message string
}

func (e *RPCError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("xrpl: %s: %s", e.Code, e.Message)
	}
	return "xrpl: " + e.Code
}

// Client holds one WebSocket connection. Requests are serialized; a single
// Client must not be shared across goroutines that need parallel requests.
type Client struct {
	cfg    Config
	conn   *websocket.Conn
	mu     sync.Mutex
	nextID int64
}

// Dial opens a connection to cfg.URL.
func Dial(ctx context.Context, cfg Config) (*Client, error) {
	cfg = cfg.withDefaults()
	if cfg.URL == "" {
		return nil, errors.New("xrpl: empty url")
	}

	dialer := websocket.Dialer{HandshakeTimeout: cfg.Timeout}
	conn, _, err := dialer.DialContext(ctx, cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("xrpl: dial %s: %w", cfg.URL, err)
	}

	return &Client{cfg: cfg, conn: conn}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return c.conn.Close()
}

type historyRequest struct {
	ID        int64           `json:"id"`
	Command   string          `json:"command"`
	NFTokenID string          `json:"nft_id"`
	Limit     int             `json:"limit,omitempty"`
	Forward   bool            `json:"forward"`
	Marker    json.RawMessage `json:"marker,omitempty"`
}

type response struct {
	ID           json.RawMessage `json:"id"`
	Type         string          `json:"type"`
	Status       string          `json:"status"`
	Result       json.RawMessage `json:"result"`
	Error        string          `json:"error"`
	ErrorMessage string          `json:"error_message"`
}

// NFTHistory requests one page of the history of nftID, oldest first.
// marker is the value returned by the previous page, or nil for the first.
func (c *Client) NFTHistory(ctx context.Context, nftID string, marker json.RawMessage) (ledger.History, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID
	req := historyRequest{
		ID:        id,
		Command:   "nft_history",
		NFTokenID: nftID,
		Limit:     c.cfg.PageLimit,
		Forward:   true,
		Marker:    marker,
	}

	deadline := time.Now().Add(c.cfg.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return ledger.History{}, fmt.Errorf("xrpl: set write deadline: %w", err)
	}
	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return ledger.History{}, fmt.Errorf("xrpl: set read deadline: %w", err)
	}
	// registered after the deadlines above so nothing can push them back out
	stop := context.AfterFunc(ctx, func() {
		now := time.Now()
		_ = c.conn.SetWriteDeadline(now)
		_ = c.conn.SetReadDeadline(now)
	})
	defer stop()
	if err := ctx.Err(); err != nil {
		return ledger.History{}, err
	}

	if err := c.conn.WriteJSON(req); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ledger.History{}, ctxErr
		}
		return ledger.History{}, fmt.Errorf("xrpl: write nft_history: %w", err)
	}

	wantID := []byte(fmt.Sprintf("%d", id))
	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ledger.History{}, ctxErr
			}
			return ledger.History{}, fmt.Errorf("xrpl: read nft_history: %w", err)
		}

		var resp response
		if err := json.Unmarshal(msg, &resp); err != nil {
			return ledger.History{}, fmt.Errorf("xrpl: decode response: %w", err)
		}
		if resp.Type != "" && resp.Type != "response" {
			logger.L().Debug().Str("type", resp.Type).Msg("xrpl: ignoring stream message")
			continue
		}
		if !bytes.Equal(bytes.TrimSpace(resp.ID), wantID) {
			logger.L().Debug().RawJSON("id", nonEmpty(resp.ID)).Int64("want", id).Msg("xrpl: ignoring unrelated response")
			continue
		}

		if resp.Status != "success" {
			return ledger.History{}, rpcError(resp)
		}
		h, err := ledger.DecodeHistory(resp.Result)
		if err != nil {
			return ledger.History{}, fmt.Errorf("xrpl: nft_history result: %w", err)
		}
		return h, nil
	}
}

// FetchAll follows markers until the full history of nftID has been read
// and returns the raw transaction entries in ledger order.
func (c *Client) FetchAll(ctx context.Context, nftID string) ([]json.RawMessage, error) {
	var (
		all    []json.RawMessage
		marker json.RawMessage
	)

	for page := 1; ; page++ {
		h, err := c.NFTHistory(ctx, nftID, marker)
		if err != nil {
			return all, fmt.Errorf("page %d: %w", page, err)
		}
		all = append(all, h.Transactions...)

		if !h.HasMarker() {
			return all, nil
		}
		if marker != nil && bytes.Equal(bytes.TrimSpace(marker), bytes.TrimSpace(h.Marker)) {
			return all, fmt.Errorf("page %d: server returned the same marker twice", page)
		}
		if page >= c.cfg.MaxPages {
			return all, fmt.Errorf("%w (%d pages)", ErrMaxPages, page)
		}
		marker = h.Marker
	}
}

func rpcError(resp response) error {
	// HTTP-style errors carry the details inside result
	if resp.Error == "" && len(resp.Result) > 0 {
		var inner struct {
			Error        string `json:"error"`
			ErrorMessage string `json:"error_message"`
		}
		if json.Unmarshal(resp.Result, &inner) == nil {
			resp.Error, resp.ErrorMessage = inner.Error, inner.ErrorMessage
		}
	}
	if resp.Error == "" {
		resp.Error = "unknown_error"
	}
	return &RPCError{Code: resp.Error, Message: resp.ErrorMessage}
}

func nonEmpty(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("null")
	}
	return raw
}
