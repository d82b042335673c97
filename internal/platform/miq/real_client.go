package miq

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
)

// RealClient implements Gateway against a live management server.
type RealClient struct {
	apiURL     string
	username   string
	password   string
	httpClient *http.Client
	log        *zap.Logger
}

// ClientOption configures a RealClient.
type ClientOption func(*RealClient)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *RealClient) {
		c.httpClient = hc
	}
}

// WithTLSConfig installs a TLS configuration on the client's transport.
func WithTLSConfig(cfg *tls.Config) ClientOption {
	return func(c *RealClient) {
		c.httpClient.Transport = &http.Transport{TLSClientConfig: cfg}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *RealClient) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the request logger.
func WithLogger(log *zap.Logger) ClientOption {
	return func(c *RealClient) {
		c.log = log
	}
}

// NewRealClient creates a client for the management server at url,
// authenticating every request with basic auth. The /api suffix is
// appended here; callers pass the bare environment URL.
func NewRealClient(url, username, password string, opts ...ClientOption) *RealClient {
	c := &RealClient{
		apiURL:     url + "/api",
		username:   username,
		password:   password,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewTLSConfig builds the TLS configuration for the verify_ssl toggle and
// the optional CA bundle path.
func NewTLSConfig(verify bool, caBundlePath string) (*tls.Config, error) {
	cfg := &tls.Config{MinVersion: tls.VersionTLS12}
	if !verify {
		cfg.InsecureSkipVerify = true
		return cfg, nil
	}
	if caBundlePath != "" {
		pem, err := os.ReadFile(caBundlePath) // #nosec G304
		if err != nil {
			return nil, fmt.Errorf("failed to read CA bundle: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates found in CA bundle %s", caBundlePath)
		}
		cfg.RootCAs = pool
	}
	return cfg, nil
}

// ListCollection implements CollectionLister.
func (c *RealClient) ListCollection(ctx context.Context, collection string) ([]Ref, error) {
	var out struct {
		Resources []Ref `json:"resources"`
	}
	if err := c.get(ctx, fmt.Sprintf("/%s?expand=resources", collection), &out); err != nil {
		return nil, err
	}
	return out.Resources, nil
}

// GetProviderEndpoints implements ProviderManager.
func (c *RealClient) GetProviderEndpoints(ctx context.Context, id ID) (*ProviderEndpoints, error) {
	var out ProviderEndpoints
	if err := c.get(ctx, fmt.Sprintf("/providers/%d/?attributes=endpoints", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProviderAuthentications implements ProviderManager.
func (c *RealClient) GetProviderAuthentications(ctx context.Context, id ID) ([]ValidationRecord, error) {
	var out struct {
		Authentications []ValidationRecord `json:"authentications"`
	}
	if err := c.get(ctx, fmt.Sprintf("/providers/%d/?attributes=authentications", id), &out); err != nil {
		return nil, err
	}
	return out.Authentications, nil
}

// CreateProvider implements ProviderManager.
func (c *RealClient) CreateProvider(ctx context.Context, req CreateProviderRequest) (ID, error) {
	var out struct {
		Results []struct {
			ID ID `json:"id"`
		} `json:"results"`
	}
	if err := c.post(ctx, "/providers", req, &out); err != nil {
		return 0, err
	}
	if len(out.Results) == 0 {
		return 0, fmt.Errorf("provider create returned no results")
	}
	return out.Results[0].ID, nil
}

// EditProvider implements ProviderManager.
func (c *RealClient) EditProvider(ctx context.Context, id ID, req EditProviderRequest) error {
	body := struct {
		Action string `json:"action"`
		EditProviderRequest
	}{Action: "edit", EditProviderRequest: req}
	return c.post(ctx, fmt.Sprintf("/providers/%d", id), body, nil)
}

// DeleteProvider implements ProviderManager.
func (c *RealClient) DeleteProvider(ctx context.Context, id ID) (*DeleteResponse, error) {
	body := struct {
		Action string `json:"action"`
	}{Action: "delete"}
	var out DeleteResponse
	if err := c.post(ctx, fmt.Sprintf("/providers/%d", id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCustomAttributes implements CustomAttributeManager.
func (c *RealClient) ListCustomAttributes(ctx context.Context, collection string, id ID) ([]CustomAttribute, error) {
	var out struct {
		CustomAttributes []CustomAttribute `json:"custom_attributes"`
	}
	if err := c.get(ctx, fmt.Sprintf("/%s/%d?expand=custom_attributes", collection, id), &out); err != nil {
		return nil, err
	}
	return out.CustomAttributes, nil
}

// AddCustomAttributes implements CustomAttributeManager.
func (c *RealClient) AddCustomAttributes(ctx context.Context, collection string, id ID, attrs []CustomAttribute) ([]CustomAttribute, error) {
	return c.customAttributeAction(ctx, collection, id, "add", attrs)
}

// EditCustomAttributes implements CustomAttributeManager.
func (c *RealClient) EditCustomAttributes(ctx context.Context, collection string, id ID, attrs []CustomAttribute) ([]CustomAttribute, error) {
	return c.customAttributeAction(ctx, collection, id, "edit", attrs)
}

// DeleteCustomAttributes implements CustomAttributeManager.
func (c *RealClient) DeleteCustomAttributes(ctx context.Context, collection string, id ID, attrs []CustomAttribute) error {
	_, err := c.customAttributeAction(ctx, collection, id, "delete", attrs)
	return err
}

func (c *RealClient) customAttributeAction(ctx context.Context, collection string, id ID, action string, attrs []CustomAttribute) ([]CustomAttribute, error) {
	body := struct {
		Action    string            `json:"action"`
		Resources []CustomAttribute `json:"resources"`
	}{Action: action, Resources: attrs}
	var out struct {
		Results []CustomAttribute `json:"results"`
	}
	path := fmt.Sprintf("/%s/%d/custom_attributes", collection, id)
	if err := c.post(ctx, path, body, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

func (c *RealClient) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *RealClient) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *RealClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, reader)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("management API request",
		zap.String("method", method),
		zap.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// decodeError extracts the server's error message when it sends the
// standard {"error": {"message": ...}} envelope, falling back to the raw
// body.
func (c *RealClient) decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	msg := ""
	if err := json.Unmarshal(data, &envelope); err == nil {
		msg = envelope.Error.Message
	}
	if msg == "" {
		msg = string(bytes.TrimSpace(data))
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}
