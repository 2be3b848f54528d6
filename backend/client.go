package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/project-sync-web/internal/errors"
	"github.com/jrsteele09/project-sync-web/token"
	"golang.org/x/oauth2"
)

// Backend REST paths, relative to the configured API root
const (
	PathProfile = "/user/profile"
	PathLogin   = "/user/login"
	PathSignup  = "/user/signup"
	PathLogout  = "/user/logout"
)

const (
	headerRequestID   = "X-Request-ID"
	contentTypeJSON   = "application/json"
	maxErrorBodyBytes = 64 << 10
)

// Client talks to the Project Sync REST backend. It keeps the backend's
// session cookie in a jar and, once a credential token is set, sends it as
// a bearer token on every request.
type Client struct {
	baseURL string
	http    *http.Client

	tokenLock sync.RWMutex
	token     *oauth2.Token
}

// ClientOption defines a function type to modify the Client instance.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client. Its transport is still
// wrapped so request IDs and bearer tokens are applied.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

// New creates a backend client rooted at baseURL (e.g. "http://localhost:5000/api").
func New(baseURL string, timeout time.Duration, options ...ClientOption) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("[backend.New] baseURL is required")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("[backend.New] cookie jar: %w", err)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout, Jar: jar},
	}
	for _, opt := range options {
		opt(c)
	}
	if c.http.Jar == nil {
		c.http.Jar = jar
	}

	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.http.Transport = &transport{base: base, client: c}

	return c, nil
}

// SetToken installs the credential token sent with subsequent requests
func (c *Client) SetToken(raw string) {
	c.tokenLock.Lock()
	defer c.tokenLock.Unlock()
	if raw == "" {
		c.token = nil
		return
	}
	c.token = token.OAuth2Token(raw)
}

// ClearToken stops sending a credential token
func (c *Client) ClearToken() {
	c.SetToken("")
}

// HasToken reports whether a non-expired token is installed
func (c *Client) HasToken() bool {
	return c.currentToken() != nil
}

func (c *Client) currentToken() *oauth2.Token {
	c.tokenLock.RLock()
	defer c.tokenLock.RUnlock()
	if c.token == nil || !c.token.Valid() {
		return nil
	}
	return c.token
}

// Profile asks the backend who the current browser session belongs to
func (c *Client) Profile(ctx context.Context) (*ProfileResponse, error) {
	var resp ProfileResponse
	if err := c.do(ctx, http.MethodGet, PathProfile, nil, &resp); err != nil {
		return nil, fmt.Errorf("[Client.Profile] %w", err)
	}
	return &resp, nil
}

// Login submits credentials
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, PathLogin, req, &resp); err != nil {
		return nil, fmt.Errorf("[Client.Login] %w", err)
	}
	return &resp, nil
}

// Signup registers a new account
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error) {
	var resp SignupResponse
	if err := c.do(ctx, http.MethodPost, PathSignup, req, &resp); err != nil {
		return nil, fmt.Errorf("[Client.Signup] %w", err)
	}
	return &resp, nil
}

// Logout ends the backend session. The response body is ignored.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, PathLogout, struct{}{}, nil); err != nil {
		return fmt.Errorf("[Client.Logout] %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", contentTypeJSON)
	if in != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", apperrors.ErrTransportFailure, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding %s %s: %v", apperrors.ErrInvalidResponse, method, path, err)
	}
	return nil
}

// transport stamps every request with a request ID and, when the client
// holds a token, hands the request to an oauth2.Transport to add the
// Authorization header.
type transport struct {
	base   http.RoundTripper
	client *Client
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	if r.Header.Get(headerRequestID) == "" {
		r.Header.Set(headerRequestID, uuid.NewString())
	}

	tok := t.client.currentToken()
	if tok == nil {
		return t.base.RoundTrip(r)
	}
	bearer := &oauth2.Transport{Source: oauth2.StaticTokenSource(tok), Base: t.base}
	return bearer.RoundTrip(r)
}
