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

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const DefaultTimeout = 30 * time.Second

var ErrNoMock = errors.New("no mock registered for request")

// Request is an HTTP-shaped call relative to a service's base path.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// Protocol executes requests and decodes the JSON response into out.
type Protocol interface {
	Do(ctx context.Context, req Request, out any) error
}

// HTTPError is returned for non-2xx responses.
type HTTPError struct {
	Method string
	URL    string
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.Status, http.StatusText(e.Status))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// RestProtocol sends JSON requests over HTTP, or answers them from a mock
// map when mocks are enabled.
type RestProtocol struct {
	baseURL   string
	basePath  string
	timeout   time.Duration
	client    *http.Client
	useMocks  bool
	mockDelay time.Duration
	mocks     func() MockMap
	logger    zerolog.Logger
}

// NewRestProtocol builds a protocol for a service mounted at basePath.
// mocks is consulted on every request so maps registered later still apply.
func NewRestProtocol(cfg Config, basePath string, mocks func() MockMap, l zerolog.Logger) *RestProtocol {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if mocks == nil {
		mocks = func() MockMap { return nil }
	}
	return &RestProtocol{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		basePath:  "/" + strings.Trim(basePath, "/"),
		timeout:   timeout,
		client:    &http.Client{},
		useMocks:  cfg.UseMocks,
		mockDelay: cfg.MockDelay,
		mocks:     mocks,
		logger:    l,
	}
}

func (p *RestProtocol) Timeout() time.Duration {
	return p.timeout
}

func (p *RestProtocol) Get(ctx context.Context, path string, out any) error {
	return p.Do(ctx, Request{Method: http.MethodGet, Path: path}, out)
}

func (p *RestProtocol) Post(ctx context.Context, path string, body any, out any) error {
	return p.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

func (p *RestProtocol) Do(ctx context.Context, req Request, out any) error {
	if req.Method == "" {
		req.Method = http.MethodGet
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if p.useMocks {
		return p.doMock(ctx, req, out)
	}
	return p.doHTTP(ctx, req, out)
}

func (p *RestProtocol) doMock(ctx context.Context, req Request, out any) error {
	f, key, ok := p.mocks().Lookup(req.Method, req.Path)
	if !ok {
		return errors.Wrapf(ErrNoMock, "%s %s", req.Method, req.Path)
	}
	if p.mockDelay > 0 {
		t := time.NewTimer(p.mockDelay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return errors.Wrapf(ctx.Err(), "%s %s", req.Method, req.Path)
		case <-t.C:
		}
	}
	p.logger.Debug().Str("mock", key).Str("path", req.Path).Msg("mock response")

	body, err := CallFactory(f)
	if err != nil {
		return errors.Wrapf(err, "mock %s", key)
	}
	b, err := json.Marshal(body)
	if err != nil {
		return errors.Wrapf(err, "marshal mock %s", key)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return errors.Wrapf(err, "decode mock %s", key)
	}
	return nil
}

func (p *RestProtocol) doHTTP(ctx context.Context, req Request, out any) error {
	u := p.baseURL + p.basePath + req.Path
	if len(req.Query) > 0 {
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		u += sep + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return errors.Wrap(err, "marshal request body")
		}
		body = bytes.NewReader(b)
	}

	hreq, err := http.NewRequestWithContext(ctx, req.Method, u, body)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	hreq.Header.Set("Accept", "application/json")
	if body != nil {
		hreq.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := p.client.Do(hreq)
	if err != nil {
		return errors.Wrapf(err, "%s %s", req.Method, u)
	}
	defer func() { _ = resp.Body.Close() }()
	p.logger.Debug().Str("method", req.Method).Str("url", u).Int("status", resp.StatusCode).Dur("took", time.Since(start)).Msg("http response")

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read response")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{Method: req.Method, URL: u, Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	if out == nil || len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return errors.Wrapf(err, "decode %s", u)
	}
	return nil
}

// CallFactory runs a mock factory, turning a panic into an error.
func CallFactory(f MockFactory) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = errors.Errorf("mock factory panicked: %v", r)
		}
	}()
	return f(), nil
}
