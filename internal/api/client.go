package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jpillora/backoff"
	"github.com/pkg/errors"

	"github.com/tcfw/didreg/pkg/ledger"
	"github.com/tcfw/didreg/pkg/registry"
	"github.com/tcfw/didreg/pkg/storage"
	"github.com/tcfw/didreg/pkg/tx"
)

const (
	getAttempts = 3
)

var (
	errTransport = errors.New("transport error")
)

// Client talks to a running daemon's API
type Client struct {
	endpoint string
	hc       *http.Client
	bo       backoff.Backoff
}

func NewClient(endpoint string) (*Client, error) {
	if _, err := url.Parse(endpoint); err != nil {
		return nil, errors.Wrap(err, "parsing api endpoint")
	}

	return &Client{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		hc:       &http.Client{Timeout: 30 * time.Second},
		bo: backoff.Backoff{
			Min:    100 * time.Millisecond,
			Max:    2 * time.Second,
			Jitter: true,
		},
	}, nil
}

// Invoke submits a signed Tx
func (c *Client) Invoke(ctx context.Context, t *tx.Tx) (*ledger.Result, error) {
	b, err := t.Marshal()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/v1/invoke", bytes.NewReader(b))
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", contentTypeMsgpack)

	res := &ledger.Result{}
	if err := c.do(req, res); err != nil {
		return nil, err
	}

	return res, nil
}

func (c *Client) View(ctx context.Context, addr string) (*ledger.Result, error) {
	res := &ledger.Result{}
	if err := c.get(ctx, "/v1/identities/"+url.PathEscape(addr), res); err != nil {
		return nil, err
	}

	return res, nil
}

func (c *Client) Count(ctx context.Context) (uint64, error) {
	res := &ledger.Result{}
	if err := c.get(ctx, "/v1/count", res); err != nil {
		return 0, err
	}

	return res.Count, nil
}

func (c *Client) Lease(ctx context.Context) (storage.Lease, error) {
	l := storage.Lease{}
	err := c.get(ctx, "/v1/lease", &l)

	return l, err
}

// get retries reads which failed to reach the daemon
func (c *Client) get(ctx context.Context, path string, v interface{}) error {
	bo := c.bo

	for attempt := 1; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+path, nil)
		if err != nil {
			return errors.Wrap(err, "building request")
		}

		err = c.do(req, v)
		if err == nil || !errors.Is(err, errTransport) || attempt == getAttempts {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(bo.Duration()):
		}
	}
}

func (c *Client) do(req *http.Request, v interface{}) error {
	resp, err := c.hc.Do(req)
	if err != nil {
		return errors.Wrap(errors.WithMessage(errTransport, err.Error()), "calling daemon")
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "reading response")
	}

	if resp.StatusCode != http.StatusOK {
		return remoteError(resp.StatusCode, b)
	}

	if err := json.Unmarshal(b, v); err != nil {
		return errors.Wrap(err, "decoding response")
	}

	return nil
}

// remoteError maps an error response back onto the registry's error kinds
func remoteError(status int, body []byte) error {
	er := &errorResponse{}
	if err := json.Unmarshal(body, er); err != nil || er.Error == "" {
		er.Error = http.StatusText(status)
	}

	var kind error
	switch status {
	case http.StatusConflict:
		kind = registry.ErrAlreadyRegistered
	case http.StatusNotFound:
		kind = registry.ErrRecordNotFound
	case http.StatusUnauthorized:
		kind = registry.ErrUnauthorized
	default:
		return errors.Errorf("daemon returned %d: %s", status, er.Error)
	}

	return errors.WithMessage(kind, fmt.Sprintf("daemon returned %d", status))
}
