package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"hex/communication"
	"hex/engine"
	"hex/store"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client talks to a hex server over HTTP JSON.
type Client struct {
	serverURL string
	http      *http.Client
}

type Option func(c *Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func New(serverURL string, options ...Option) *Client {
	c := &Client{
		serverURL: strings.TrimRight(serverURL, "/"),
		http:      &http.Client{Timeout: defaultTimeout},
	}
	for _, option := range options {
		option(c)
	}
	return c
}

var _ communication.Communicator = (*Client)(nil)

func (c *Client) CreateGame(ctx context.Context, width, height int) (engine.View, error) {
	var view engine.View
	err := c.do(ctx, http.MethodPost, "/api/games", communication.CreateRequest{Width: width, Height: height}, &view)
	return view, err
}

func (c *Client) GetGame(ctx context.Context, id string) (engine.View, error) {
	var view engine.View
	err := c.do(ctx, http.MethodGet, "/api/games/"+url.PathEscape(id), nil, &view)
	return view, err
}

func (c *Client) Move(ctx context.Context, id string, x, y int) (engine.View, error) {
	var view engine.View
	err := c.do(ctx, http.MethodPost, "/api/games/"+url.PathEscape(id)+"/move", communication.MoveRequest{X: x, Y: y}, &view)
	return view, err
}

// Auto asks the server to play an automated turn. Zero playouts uses the server default.
func (c *Client) Auto(ctx context.Context, id string, playouts int) (communication.AutoResponse, error) {
	var resp communication.AutoResponse
	err := c.do(ctx, http.MethodPost, "/api/games/"+url.PathEscape(id)+"/auto", communication.AutoRequest{Playouts: playouts}, &resp)
	return resp, err
}

func (c *Client) Games(ctx context.Context, limit int) ([]store.Record, error) {
	path := "/api/games"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var records []store.Record
	err := c.do(ctx, http.MethodGet, path, nil, &records)
	return records, err
}

func (c *Client) Evaluate(ctx context.Context, req communication.EvaluateRequest) (communication.EvaluateResponse, error) {
	var resp communication.EvaluateResponse
	err := c.do(ctx, http.MethodPost, "/api/evaluate", req, &resp)
	return resp, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.serverURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return statusError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	var body communication.ErrorResponse
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &body); err != nil || body.Error == "" {
		body.Error = strings.TrimSpace(string(raw))
	}

	var kind error
	switch {
	case resp.StatusCode == http.StatusNotFound:
		kind = communication.ErrNotFound
	case resp.StatusCode == http.StatusConflict:
		kind = communication.ErrConflict
	case resp.StatusCode < http.StatusInternalServerError:
		kind = communication.ErrBadRequest
	default:
		kind = communication.ErrServer
	}
	return fmt.Errorf("%w (%d): %s", kind, resp.StatusCode, body.Error)
}
