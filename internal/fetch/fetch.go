// Package fetch talks to the remote calculation service.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/DoyleJ11/lol-damage-calculator/internal/model"
	"github.com/DoyleJ11/lol-damage-calculator/internal/wire"
)

const DefaultPath = "/api/games/calculator"

// MaxResponseSize caps how much of a response body is read.
const MaxResponseSize = 4 << 20

var (
	ErrStatus   = errors.New("fetch: unexpected status")
	ErrTooLarge = errors.New("fetch: response too large")
)

// Sender moves an encoded request to the service and returns the encoded
// response. Cancelling ctx abandons the call.
type Sender interface {
	Send(ctx context.Context, body []byte) ([]byte, error)
}

type HTTPSender struct {
	URL    string
	Client *http.Client
}

// NewHTTPSender joins base and path into the endpoint URL. A zero timeout
// leaves the call bounded only by its context.
func NewHTTPSender(base, path string, client *http.Client) *HTTPSender {
	if path == "" {
		path = DefaultPath
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSender{
		URL:    strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/"),
		Client: client,
	}
}

func (s *HTTPSender) Send(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Accept", "application/octet-stream")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", s.URL, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}
	if len(payload) > MaxResponseSize {
		return nil, fmt.Errorf("%w: over %d bytes", ErrTooLarge, MaxResponseSize)
	}
	return payload, nil
}

// Client encodes requests and decodes responses around a Sender.
type Client struct {
	sender Sender
}

func NewClient(s Sender) *Client { return &Client{sender: s} }

func (c *Client) Calculate(ctx context.Context, in *model.InputGame) (*model.Game, error) {
	payload, err := c.sender.Send(ctx, wire.EncodeInputGame(in))
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return wire.DecodeGame(payload)
}
