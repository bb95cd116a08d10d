// Authenticated HTTP client for the management API
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/kmx/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL   = "http://localhost:8080"
	defaultLoginPath = "/login"
)

// Client issues requests to the management API with an authorization header.
//
// Status handling:
//   - 401: redirect to the login page, nothing is decoded, [shared.ErrUnauthorized] is returned
//   - 200-399: the body, when non-empty, is decoded as JSON
//   - anything else: the body is logged and [shared.ErrAPIRequest] is returned
type Client struct {
	baseURL           string
	loginPath         string
	httpClient        *http.Client
	creds             CredentialSource
	nav               Navigator
	limiter           *rate.Limiter
	requireCredential bool
	logger            *log.Logger
}

// ClientOpts contains configuration options for creating a [Client].
type ClientOpts struct {
	BaseURL    string
	LoginPath  string
	HTTPClient *http.Client
	Credential CredentialSource
	Navigator  Navigator
	Logger     *log.Logger

	// RequestsPerSecond paces outgoing requests; zero disables pacing.
	RequestsPerSecond float64

	// RequireCredential aborts requests when no credential is available instead of sending them unauthenticated.
	RequireCredential bool
}

// Response is a raw API response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Decode unmarshals the body into v. An empty body leaves v untouched.
func (r *Response) Decode(v any) error {
	if v == nil || len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrDecode, err)
	}
	return nil
}

// NewClient creates a new management API client.
func NewClient(opts ClientOpts) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.LoginPath == "" {
		opts.LoginPath = defaultLoginPath
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Credential == nil {
		opts.Credential = BasicCredential{}
	}
	if opts.Navigator == nil {
		opts.Navigator = NewBrowserNavigator(opts.BaseURL, nil, opts.Logger)
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	return &Client{
		baseURL:           opts.BaseURL,
		loginPath:         opts.LoginPath,
		httpClient:        opts.HTTPClient,
		creds:             opts.Credential,
		nav:               opts.Navigator,
		limiter:           limiter,
		requireCredential: opts.RequireCredential,
		logger:            shared.WithLogger(opts.Logger, "component", "client"),
	}
}

// NewClientFromConfig builds a [Client] from the api and credentials sections of conf.
func NewClientFromConfig(conf *shared.Config, httpClient *http.Client, logger *log.Logger) *Client {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	var open func(string) error
	if conf.API.OpenBrowser {
		open = shared.OpenBrowser
	}

	return NewClient(ClientOpts{
		BaseURL:           conf.API.BaseURL,
		LoginPath:         conf.API.LoginPath,
		HTTPClient:        httpClient,
		Credential:        CredentialFromConfig(conf.Credentials),
		Navigator:         NewBrowserNavigator(conf.API.BaseURL, open, logger),
		Logger:            logger,
		RequestsPerSecond: conf.API.RequestsPerSecond,
		RequireCredential: conf.API.RequireCredential,
	})
}

// Navigator returns the navigator used for login redirects.
func (c *Client) Navigator() Navigator {
	return c.nav
}

// SetLogger replaces the client's logger, and the navigator's when it logs.
// Not safe to call while requests are in flight.
func (c *Client) SetLogger(logger *log.Logger) {
	c.logger = shared.WithLogger(logger, "component", "client")
	if nav, ok := c.nav.(interface{ SetLogger(*log.Logger) }); ok {
		nav.SetLogger(logger)
	}
}

// Do performs a request against an application-relative path.
//
// The returned [Response] is non-nil whenever the server answered, including for error statuses.
func (c *Client) Do(ctx context.Context, method, path string, body io.Reader, contentType string) (*Response, error) {
	fullURL, err := shared.JoinURL(c.baseURL, path)
	if err != nil {
		return nil, err
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	auth, err := c.creds.Authorization(ctx)
	if err != nil {
		return nil, err
	}
	if auth == "" {
		c.nav.Redirect(c.loginPath)
		if c.requireCredential {
			return nil, fmt.Errorf("%w: no credential for %s %s", shared.ErrNotAuthenticated, method, path)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	apiResp := &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       data,
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.nav.Redirect(c.loginPath)
		return apiResp, fmt.Errorf("%w: %s %s", shared.ErrUnauthorized, method, path)
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		return apiResp, nil
	default:
		c.logger.Error("request failed", "method", method, "path", path, "status", resp.StatusCode, "body", string(data))
		return apiResp, fmt.Errorf("%w: %s %s: status %d", shared.ErrAPIRequest, method, path, resp.StatusCode)
	}
}

// Get fetches path and decodes the JSON body into v.
func (c *Client) Get(ctx context.Context, path string, v any) error {
	return c.send(ctx, http.MethodGet, path, nil, "", v)
}

// Delete deletes the resource at path and decodes any JSON body into v.
func (c *Client) Delete(ctx context.Context, path string, v any) error {
	return c.send(ctx, http.MethodDelete, path, nil, "", v)
}

// PostForm posts form as multipart/form-data and decodes any JSON body into v.
func (c *Client) PostForm(ctx context.Context, path string, form *Form, v any) error {
	if form == nil {
		form = NewForm()
	}
	body, contentType, err := form.Encode()
	if err != nil {
		return err
	}
	return c.send(ctx, http.MethodPost, path, body, contentType, v)
}

func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string, v any) error {
	resp, err := c.Do(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	return resp.Decode(v)
}
