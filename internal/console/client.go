package console

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dkeye/Handshake/internal/core"
	"github.com/dkeye/Handshake/internal/telemetry"
)

// Client reads the relay's REST endpoints.
type Client struct {
	base string
	http *http.Client
}

func NewClient(base string, timeout time.Duration) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %s", path, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) Telemetry(ctx context.Context) (map[string][]telemetry.Record, error) {
	var body struct {
		Sessions map[string][]telemetry.Record `json:"sessions"`
	}
	if err := c.getJSON(ctx, "/api/telemetry", &body); err != nil {
		return nil, err
	}
	return body.Sessions, nil
}

func (c *Client) Rooms(ctx context.Context) ([]core.RoomInfo, error) {
	var body struct {
		Rooms []core.RoomInfo `json:"rooms"`
	}
	if err := c.getJSON(ctx, "/api/rooms", &body); err != nil {
		return nil, err
	}
	return body.Rooms, nil
}
