package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/crudkeeper/internal/common"
)

// DefaultTimeout bounds every request when the caller does not set one.
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of an error response is kept for the message.
const maxErrorBody = 512

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*HTTPClient)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.httpClient.Timeout = d }
}

// WithHTTPClient swaps the underlying client; its Timeout is used as-is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.httpClient = hc }
}

// NewHTTPClient builds a client for <baseURL>/<endpointID>. An empty
// endpointID addresses collections directly under baseURL.
func NewHTTPClient(baseURL, endpointID string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}

	base := strings.TrimRight(u.String(), "/")
	if endpointID != "" {
		base += "/" + url.PathEscape(endpointID)
	}

	c := &HTTPClient{
		baseURL:    base,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func (c *HTTPClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) List(ctx context.Context, collection string) (json.RawMessage, error) {
	return c.do(ctx, collection+".list", http.MethodGet, c.url(collection, ""), nil)
}

func (c *HTTPClient) Get(ctx context.Context, collection, id string) (json.RawMessage, error) {
	return c.do(ctx, collection+".get", http.MethodGet, c.url(collection, id), nil)
}

func (c *HTTPClient) Create(ctx context.Context, collection string, body []byte) (json.RawMessage, error) {
	return c.do(ctx, collection+".create", http.MethodPost, c.url(collection, ""), body)
}

func (c *HTTPClient) Update(ctx context.Context, collection, id string, body []byte) (json.RawMessage, error) {
	return c.do(ctx, collection+".update", http.MethodPut, c.url(collection, id), body)
}

func (c *HTTPClient) Delete(ctx context.Context, collection, id string) error {
	_, err := c.do(ctx, collection+".delete", http.MethodDelete, c.url(collection, id), nil)
	return err
}

func (c *HTTPClient) Ping(ctx context.Context, collection string) error {
	_, err := c.do(ctx, collection+".ping", http.MethodGet, c.url(collection, ""), nil)
	return err
}

func (c *HTTPClient) url(collection, id string) string {
	u := c.baseURL + "/" + url.PathEscape(collection)
	if id != "" {
		u += "/" + url.PathEscape(id)
	}
	return u
}

func (c *HTTPClient) do(ctx context.Context, op, method, target string, body []byte) (json.RawMessage, error) {
	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, rdr)
	if err != nil {
		return nil, &common.Error{Kind: common.KindFetch, Op: op, Msg: "cannot build request", Err: err}
	}
	req.Header.Set("Accept", common.ContentTypeJSON)
	if body != nil {
		req.Header.Set("Content-Type", common.ContentTypeJSON)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.mapError(op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &common.Error{Kind: common.KindFetch, Op: op, Status: resp.StatusCode, Msg: "cannot read response", Err: err}
	}

	if err := checkStatus(op, method, resp.StatusCode, data); err != nil {
		return nil, err
	}
	return json.RawMessage(bytes.TrimSpace(data)), nil
}

// checkStatus turns a received status into a taxonomy error, or nil.
func checkStatus(op, method string, status int, body []byte) error {
	switch {
	case method == http.MethodDelete && status == http.StatusOK:
		return nil
	case method == http.MethodDelete && status < 300:
		return &common.Error{Kind: common.KindFetch, Op: op, Status: status, Msg: "delete not confirmed"}
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusNotFound:
		return &common.Error{Kind: common.KindNotFound, Op: op, Status: status, Msg: "record not found"}
	case method == http.MethodPut && status == http.StatusInternalServerError:
		return &common.Error{Kind: common.KindUnprocessableUpdate, Op: op, Status: status, Msg: "store rejected the update payload"}
	default:
		return &common.Error{Kind: common.KindFetch, Op: op, Status: status, Msg: summarize(status, body)}
	}
}

func summarize(status int, body []byte) string {
	msg := http.StatusText(status)
	if msg == "" {
		msg = "unexpected status"
	}
	b := strings.TrimSpace(string(body))
	if len(b) > maxErrorBody {
		b = b[:maxErrorBody]
	}
	if b != "" {
		msg += ": " + b
	}
	return msg
}

// mapError classifies a failure where no response was received.
func (c *HTTPClient) mapError(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return &common.Error{Kind: common.KindFetch, Op: op, Msg: "request canceled", Err: err}
	}

	msg := "no response from server"
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		msg = "request timed out"
	}
	return &common.Error{Kind: common.KindConnectivity, Op: op, Msg: msg, Err: err}
}
