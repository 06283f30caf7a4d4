package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"imagique/internal/status"
	"imagique/monitoring"
	"imagique/utils"
)

const maxReplySize = 4 << 20

type Config struct {
	BaseURL string        `json:"baseUrl"`
	Timeout time.Duration `json:"timeout"`
}

// Client talks to the booking backend REST API.
type Client struct {
	// baseURL is the scheme and host of the backend, without a trailing slash.
	baseURL string

	// hc is the http client.
	hc *http.Client

	// breaker stops calls while the backend keeps failing.
	breaker *utils.CircuitBreaker

	// monitor records per-operation metrics. May be nil.
	monitor *monitoring.Monitor
}

func NewClient(cfg Config, breaker *utils.CircuitBreaker, monitor *monitoring.Monitor) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("backend: invalid base url %q", cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if breaker == nil {
		breaker = utils.NewCircuitBreaker("backend", utils.Settings{})
	}
	return &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		hc: &http.Client{
			Timeout: timeout,
		},
		breaker: breaker,
		monitor: monitor,
	}, nil
}

// APIError is a non-2xx reply from the backend.
type APIError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: backend returned %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: backend returned %d: %s", e.Op, e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == status.ErrNotFound && e.StatusCode == http.StatusNotFound
}

// StatusCode returns the backend status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func newAPIError(op string, code int, body []byte) *APIError {
	return &APIError{Op: op, StatusCode: code, Message: replyMessage(body)}
}

// replyMessage pulls a human readable message out of an error body. The
// backend answers with JSON objects, JSON strings or plain text.
func replyMessage(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ""
	}
	if !gjson.ValidBytes(body) {
		return string(body)
	}
	res := gjson.ParseBytes(body)
	if res.Type == gjson.String {
		return res.String()
	}
	for _, path := range []string{"message", "error", "detail", "errors.0.defaultMessage"} {
		if v := res.Get(path); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return ""
}

type request struct {
	op          string
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
}

type reply struct {
	status int
	body   []byte
}

// do sends r through the breaker and decodes a 2xx JSON reply into out when
// out is non-nil. Only transport errors and 5xx replies count against the
// breaker.
func (c *Client) do(ctx context.Context, r request, out interface{}) error {
	start := time.Now()
	res, err := c.breaker.Execute(ctx, func() (interface{}, error) {
		return c.send(ctx, r)
	})
	if err != nil {
		label := "error"
		if code := StatusCode(err); code != 0 {
			label = strconv.Itoa(code)
		}
		c.monitor.TrackBackendRequest(r.op, label, time.Since(start))
		if errors.Is(err, utils.ErrOpenState) || errors.Is(err, utils.ErrTooManyRequests) {
			return fmt.Errorf("%s: %w", r.op, err)
		}
		return err
	}

	rep := res.(*reply)
	c.monitor.TrackBackendRequest(r.op, strconv.Itoa(rep.status), time.Since(start))
	if rep.status < 200 || rep.status > 299 {
		return newAPIError(r.op, rep.status, rep.body)
	}
	if out == nil || len(bytes.TrimSpace(rep.body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(rep.body, out); err != nil {
		return fmt.Errorf("%s: json.Unmarshal: %w", r.op, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, r request) (*reply, error) {
	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, r.body)
	if err != nil {
		return nil, fmt.Errorf("%s: http.NewRequest: %w", r.op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: hc.Do: %w", r.op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReplySize))
	if err != nil {
		return nil, fmt.Errorf("%s: io.ReadAll: %w", r.op, err)
	}

	rep := &reply{status: resp.StatusCode, body: body}
	if resp.StatusCode >= http.StatusInternalServerError {
		return rep, newAPIError(r.op, resp.StatusCode, body)
	}
	return rep, nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, out interface{}) error {
	return c.do(ctx, request{op: op, method: http.MethodGet, path: path}, out)
}

// sendJSON marshals in as the request body. in may be nil for an empty body.
func (c *Client) sendJSON(ctx context.Context, op, method, path string, in, out interface{}) error {
	r := request{op: op, method: method, path: path}
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: json.Marshal: %w", op, err)
		}
		r.body = bytes.NewReader(b)
		r.contentType = "application/json"
	}
	return c.do(ctx, r, out)
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
