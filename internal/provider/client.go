// Package provider implements the HTTP client for the external
// direct-message provider. Each registered channel instance maps to one
// provider instance, addressed by name and authenticated by token.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/monere-app/monere/internal/models"
	"github.com/monere-app/monere/pkg/logger"
)

// recipientDomain is the fixed suffix denoting the provider's messaging
// domain, appended to the bare recipient identifier.
const recipientDomain = "@s.whatsapp.net"

// ErrMalformedResponse is returned when a provider response parses as JSON
// but carries none of the expected fields.
var ErrMalformedResponse = errors.New("malformed provider response")

// Address builds the full recipient address for a phone number.
func Address(phone string) string {
	return phone + recipientDomain
}

// Client is a typed client for the provider API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewClient creates a provider client with a bounded request timeout.
func NewClient(baseURL string, logger *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

type connectionStateResponse struct {
	Instance struct {
		InstanceName string `json:"instanceName"`
		State        string `json:"state"`
	} `json:"instance"`
}

type sendTextRequest struct {
	Number string `json:"number"`
	Text   string `json:"text"`
}

type sendTextResponse struct {
	Key struct {
		ID string `json:"id"`
	} `json:"key"`
	Status string `json:"status"`
}

// ConnectionState queries the provider's connection state for the instance.
// It returns the raw provider state string ("open", "connecting", "close").
func (c *Client) ConnectionState(ctx context.Context, instance *models.ChannelInstance) (string, error) {
	url := fmt.Sprintf("%s/instance/connectionState/%s", c.baseURL, instance.InstanceName)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create connection state request: %w", err)
	}
	c.setHeaders(req, instance.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to query connection state: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", c.handleErrorResponse(resp)
	}

	var state connectionStateResponse
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return "", fmt.Errorf("failed to decode connection state response: %w", err)
	}
	if state.Instance.State == "" {
		return "", ErrMalformedResponse
	}
	return state.Instance.State, nil
}

// SendText sends a plain-text message to the given recipient address through
// the instance. Any transport error or provider error marker is a failure.
func (c *Client) SendText(ctx context.Context, instance *models.ChannelInstance, recipient, body string) error {
	url := fmt.Sprintf("%s/message/sendText/%s", c.baseURL, instance.InstanceName)
	payload, err := json.Marshal(sendTextRequest{Number: recipient, Text: body})
	if err != nil {
		return fmt.Errorf("failed to marshal send text request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create send text request: %w", err)
	}
	c.setHeaders(req, instance.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send text: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return c.handleErrorResponse(resp)
	}

	var sent sendTextResponse
	if err := json.NewDecoder(resp.Body).Decode(&sent); err != nil {
		return fmt.Errorf("failed to decode send text response: %w", err)
	}
	if sent.Key.ID == "" {
		return ErrMalformedResponse
	}
	c.logger.Debug("Provider accepted message ", "instance ", instance.InstanceName, " id ", sent.Key.ID)
	return nil
}

func (c *Client) setHeaders(req *http.Request, token string) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", token)
}

func (c *Client) handleErrorResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("provider returned status %d and unreadable body", resp.StatusCode)
	}
	return fmt.Errorf("provider returned status %d: %s", resp.StatusCode, string(body))
}
