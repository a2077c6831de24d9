// Package cvp implements a REST client for the CloudVision provisioning
// API, covering the container and configlet calls the topology manager
// depends on. It owns session authentication and response decoding; retry
// and resilience policies are deliberately left to the HTTP client.
package cvp

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/guillaumeVilar/ansible-cvp/pkg/types"
)

// defaultTimeout bounds every API call when no timeout is configured.
const defaultTimeout = 30 * time.Second

// Config holds the connection settings for a CloudVision instance.
type Config struct {
	// Host is the CloudVision hostname or address, without scheme.
	Host string

	// Port is the HTTPS port, 443 when zero.
	Port int

	// Username and Password authenticate the provisioning session.
	Username string
	Password string

	// Insecure skips TLS certificate verification, for lab instances
	// with self-signed certificates.
	Insecure bool

	// Timeout bounds each API call, defaultTimeout when zero.
	Timeout time.Duration
}

// Client talks to one CloudVision instance. The session cookie obtained by
// Authenticate is carried in the client's cookie jar and reused across
// calls; the client is not safe for concurrent mutating calls, matching
// the single-threaded execution model of the topology manager.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
}

// NewClient constructs a client for the given CloudVision instance. The
// returned client is unauthenticated until Authenticate is called.
func NewClient(config Config) (*Client, error) {
	port := config.Port
	if port == 0 {
		port = 443
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errRequestFailed, err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if config.Insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // Explicitly requested via --insecure.
	}

	return &Client{
		baseURL:  fmt.Sprintf("https://%s:%d", config.Host, port),
		username: config.Username,
		password: config.Password,
		httpClient: &http.Client{
			Jar:       jar,
			Timeout:   timeout,
			Transport: transport,
		},
	}, nil
}

// newTestClient constructs a client pointed at an arbitrary base URL,
// bypassing the https://host:port composition. Used by tests with
// httptest servers.
func newTestClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient.Jar == nil {
		httpClient.Jar, _ = cookiejar.New(nil)
	}

	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// Authenticate opens a provisioning session. The session cookie is stored
// in the client's jar and sent on every subsequent call.
func (c *Client) Authenticate(ctx context.Context) error {
	payload := map[string]string{
		"userId":   c.username,
		"password": c.password,
	}

	var response struct {
		SessionID string `json:"sessionId"`
	}

	err := c.post(ctx, "/cvpservice/login/authenticate.do", nil, payload, &response)
	if err != nil {
		return fmt.Errorf("%w: %w", errAuthenticationFailed, err)
	}

	logrus.WithField("host", c.baseURL).Debug("Authenticated against CloudVision")

	return nil
}

// GetContainerByName fetches a container record by exact name.
//
// The provisioning search endpoint matches substrings, so the result list
// is scanned for an exact name match. A miss returns nil with no error.
func (c *Client) GetContainerByName(ctx context.Context, name string) (*types.ContainerInfo, error) {
	query := url.Values{
		"queryParam": {name},
		"startIndex": {"0"},
		"endIndex":   {"0"},
	}

	var response struct {
		ContainerList []types.ContainerInfo `json:"containerList"`
	}

	err := c.get(ctx, "/cvpservice/provisioning/searchTopology.do", query, &response)
	if err != nil {
		return nil, err
	}

	for i := range response.ContainerList {
		if response.ContainerList[i].Name == name {
			return &response.ContainerList[i], nil
		}
	}

	return nil, nil
}

// FilterTopology fetches the topology node for a container key, carrying
// the child container and device counts used by emptiness checks.
func (c *Client) FilterTopology(ctx context.Context, nodeID string) (*types.ContainerInfo, error) {
	query := url.Values{
		"nodeId":     {nodeID},
		"format":     {"topology"},
		"startIndex": {"0"},
		"endIndex":   {"0"},
	}

	var response struct {
		Topology types.ContainerInfo `json:"topology"`
	}

	err := c.get(ctx, "/cvpservice/provisioning/filterTopology.do", query, &response)
	if err != nil {
		return nil, err
	}

	return &response.Topology, nil
}

// GetConfigletByName fetches a configlet record by exact name. A miss
// returns nil with no error; any other API error is returned as-is.
func (c *Client) GetConfigletByName(ctx context.Context, name string) (*types.ConfigletInfo, error) {
	query := url.Values{"name": {name}}

	var configlet types.ConfigletInfo

	err := c.get(ctx, "/cvpservice/configlet/getConfigletByName.do", query, &configlet)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.NotFound() {
			return nil, nil
		}

		return nil, err
	}

	return &configlet, nil
}

// get performs a GET call and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", errRequestFailed, err)
	}

	return c.do(req, out)
}

// post performs a POST call with a JSON body and decodes the response into
// out when out is non-nil.
func (c *Client) post(ctx context.Context, path string, query url.Values, body any, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: %w", errRequestFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("%w: %w", errRequestFailed, err)
	}

	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

// do executes the request, surfaces transport failures, HTTP error
// statuses, and CloudVision error envelopes, then decodes the body.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", errRequestFailed, err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s %s: %s",
			errUnexpectedStatus, req.Method, req.URL.Path, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %w", errDecodeFailed, err)
	}

	// The provisioning API reports failures inside 200 responses.
	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Code != "" {
		return &apiErr
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %w", errDecodeFailed, err)
	}

	return nil
}

// drainAndClose consumes the remaining body so the connection can be
// reused, then closes it.
func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
