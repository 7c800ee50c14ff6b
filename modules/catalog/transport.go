package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-monolith/mono/pkg/types"
)

// APIPath is the REST prefix of the store API.
const APIPath = "/wp-json/wc/v3/"

const maxResponseBytes = 8 << 20

// Transport performs one GET against the store API and returns the raw body.
// endpoint is relative to APIPath, e.g. "products" or "products/42".
type Transport interface {
	Fetch(ctx context.Context, endpoint string, query url.Values) ([]byte, error)
}

// HTTPTransport talks to the store over HTTP. Credentials travel only in the
// query string of the outgoing request.
type HTTPTransport struct {
	baseURL string
	key     string
	secret  string
	client  *http.Client
	logger  types.Logger
}

var _ Transport = (*HTTPTransport)(nil)

// NewHTTPTransport builds the network transport. cfg must already be valid.
// A nil client gets one with cfg.Timeout.
func NewHTTPTransport(cfg Config, client *http.Client, logger types.Logger) *HTTPTransport {
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPTransport{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		key:     cfg.ConsumerKey,
		secret:  cfg.ConsumerSecret,
		client:  client,
		logger:  logger,
	}
}

func (t *HTTPTransport) Fetch(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	endpoint = strings.TrimLeft(endpoint, "/")
	loggedQuery := query.Encode()

	authed := url.Values{}
	for k, vs := range query {
		authed[k] = append([]string(nil), vs...)
	}
	authed.Set("consumer_key", t.key)
	authed.Set("consumer_secret", t.secret)

	reqURL := t.baseURL + APIPath + endpoint + "?" + authed.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		t.logger.Warn("Store request failed", "endpoint", endpoint, "query", loggedQuery, "error", redactErr(err))
		return nil, fmt.Errorf("woocommerce %s: %s", endpoint, redactErr(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", endpoint, err)
	}

	t.logger.Debug("Store request",
		"endpoint", endpoint,
		"query", loggedQuery,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteError{
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Reason:   remoteReason(body),
		}
	}
	return body, nil
}

// remoteReason extracts the message of a store error payload
// ({"code":..., "message":..., "data":{"status":...}}).
func remoteReason(body []byte) string {
	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}

// redactErr drops the request URL from transport errors, since it carries
// the consumer secret.
func redactErr(err error) string {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err.Error()
	}
	return err.Error()
}
