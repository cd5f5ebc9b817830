package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	pkgerrors "sayitloud/pkg/errors"
)

const (
	defaultHTTPTimeout        = 60 * time.Second
	defaultHTTPConnectTimeout = 5 * time.Second
	defaultHTTPTLSTimeout     = 5 * time.Second
)

// TokenSource exposes the current session token. An empty string means no
// authenticated session.
type TokenSource interface {
	Token() string
}

// SessionInvalidator clears the authenticated session. Implemented by the
// session store; invoked by the client on session expiry.
type SessionInvalidator interface {
	Clear()
}

// Navigator performs the full navigation to the login entry point after
// session expiry. Implementations belong to the presentation layer.
type Navigator interface {
	NavigateToLogin()
}

// NavigatorFunc adapts a plain function to the Navigator interface.
type NavigatorFunc func()

func (f NavigatorFunc) NavigateToLogin() { f() }

// Encoding selects how a request body is serialized on the wire.
type Encoding int

const (
	EncodingJSON Encoding = iota
	EncodingMultipart
)

// successBody is the synthetic body substituted for empty or unparseable
// 2xx responses so callers never fail merely because a 200 has no body.
var successBody = []byte(`{"success":true}`)

// Client is the single chokepoint for all network calls: it injects bearer
// auth, negotiates JSON vs multipart encoding, normalizes error and
// empty-body responses, and enforces the global session-expiry policy.
// It performs no retries; retry policy belongs to callers.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	session    SessionInvalidator
	navigator  Navigator
	logger     *zap.Logger

	// expiry guard: the policy fires at most once per token value, so
	// concurrent 401s cause exactly one store clear and one redirect.
	mu            sync.Mutex
	expiredTokens map[string]bool
}

// NewClient creates a transport client against the given base URL.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, session SessionInvalidator, navigator Navigator, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient:    defaultHTTPClient(timeout),
		tokens:        tokens,
		session:       session,
		navigator:     navigator,
		logger:        logger,
		expiredTokens: make(map[string]bool),
	}
}

// defaultHTTPClient builds an http.Client with explicit dial and TLS
// handshake timeouts instead of the zero-timeout default.
func defaultHTTPClient(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout: defaultHTTPConnectTimeout,
	}
	transport := &http.Transport{
		DialContext:         dialer.DialContext,
		TLSHandshakeTimeout: defaultHTTPTLSTimeout,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

// Request performs one HTTP call. path is relative to the base URL. For
// EncodingJSON, body may be nil or any JSON-serializable value; for
// EncodingMultipart it must be a *MultipartBody. The returned bytes are
// always valid JSON: 204 and empty or unparseable 2xx bodies are replaced
// with {"success":true}.
func (c *Client) Request(ctx context.Context, method, path string, body any, enc Encoding) ([]byte, error) {
	var reqBody io.Reader
	contentType := ""

	switch enc {
	case EncodingJSON:
		if body != nil {
			data, err := json.Marshal(body)
			if err != nil {
				return nil, pkgerrors.NewInternalError("encoding request body").WithCause(err)
			}
			reqBody = bytes.NewReader(data)
		}
		// the content type is fixed even for bodyless JSON requests,
		// matching what the backend expects
		contentType = "application/json"
	case EncodingMultipart:
		mp, ok := body.(*MultipartBody)
		if !ok || mp == nil {
			return nil, pkgerrors.NewValidationError("multipart encoding requires a multipart body")
		}
		data, boundary, err := mp.encode()
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(data)
		// content-type negotiation stays with the multipart writer so
		// the boundary is generated correctly
		contentType = boundary
	default:
		return nil, pkgerrors.NewValidationError(fmt.Sprintf("unknown encoding %d", enc))
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, pkgerrors.NewInternalError("building request").WithCause(err)
	}
	req.Header.Set("Content-Type", contentType)

	// attach bearer auth only when a session token is present
	sentToken := c.tokens.Token()
	if sentToken != "" {
		req.Header.Set("Authorization", "Bearer "+sentToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request transport failure",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, pkgerrors.NewTransportError(fmt.Sprintf("%s %s failed", method, path), err)
	}
	defer resp.Body.Close()

	respBody, readErr := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusUnauthorized && sentToken != "" {
		c.expireSession(sentToken, method, path)
		return nil, pkgerrors.NewSessionExpiredError()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := extractErrorMessage(resp, respBody)
		c.logger.Warn("request rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", message),
		)
		return nil, pkgerrors.NewRejectedError(message, resp.StatusCode)
	}

	if resp.StatusCode == http.StatusNoContent {
		return successBody, nil
	}
	if readErr != nil {
		return nil, pkgerrors.NewTransportError(fmt.Sprintf("reading %s %s response", method, path), readErr)
	}
	if len(bytes.TrimSpace(respBody)) == 0 || !json.Valid(respBody) {
		return successBody, nil
	}
	return respBody, nil
}

// expireSession applies the 401 policy: clear the session store and issue
// the login navigation, exactly once per expired token value.
func (c *Client) expireSession(token, method, path string) {
	c.mu.Lock()
	if c.expiredTokens[token] {
		c.mu.Unlock()
		return
	}
	c.expiredTokens[token] = true
	c.mu.Unlock()

	c.logger.Warn("session expired",
		zap.String("method", method),
		zap.String("path", path),
	)
	c.session.Clear()
	c.navigator.NavigateToLogin()
}

// extractErrorMessage reads a structured error message from a non-2xx
// response: JSON {message} preferred, else raw text, else empty (the error
// constructor synthesizes one from the status code).
func extractErrorMessage(resp *http.Response, body []byte) string {
	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
			return payload.Message
		}
	}
	return strings.TrimSpace(string(body))
}
