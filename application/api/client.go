package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"sayitloud/infrastructure/transport"
	pkgerrors "sayitloud/pkg/errors"
)

// Client is the fixed catalogue of typed operations against the remote
// service. It is the only way other components touch the network. Input
// constraints are structural only; all semantic validation (uniqueness,
// permissions, ownership) is delegated to the server and surfaces as a
// message-bearing error. No operation retries or batches internally.
type Client struct {
	transport *transport.Client
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewClient creates an API client over the given transport.
func NewClient(t *transport.Client, logger *zap.Logger) *Client {
	return &Client{
		transport: t,
		validate:  validator.New(),
		logger:    logger,
	}
}

// MessageResult is the generic {message} success shape, also produced for
// bodyless 2xx responses via the transport's {"success":true} synthesis.
type MessageResult struct {
	Message string `json:"message,omitempty"`
	Success bool   `json:"success,omitempty"`
}

// do issues one request through the transport and decodes the JSON result.
func do[R any](ctx context.Context, c *Client, method, path string, body any, enc transport.Encoding) (R, error) {
	var result R
	data, err := c.transport.Request(ctx, method, path, body, enc)
	if err != nil {
		return result, err
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, pkgerrors.NewInternalError(fmt.Sprintf("decoding %s %s response", method, path)).WithCause(err)
	}
	return result, nil
}

// checkArgs applies the structural validation rules declared on an args
// struct.
func (c *Client) checkArgs(args any) error {
	if err := c.validate.Struct(args); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	return nil
}

// requireID rejects empty path parameters before they reach the wire.
func requireID(name, value string) error {
	if value == "" {
		return pkgerrors.NewValidationError(name + " is required")
	}
	return nil
}
