package glpi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// componentTypes lists the GLPI item-device types fetched for each computer.
// The order here is the order components are synced in.
var componentTypes = []string{
	"Item_DeviceProcessor",
	"Item_DeviceMemory",
	"Item_DeviceHardDrive",
	"Item_DeviceNetworkCard",
	"Item_DeviceGraphicCard",
	"Item_DeviceMotherboard",
	"Item_DevicePowerSupply",
	"Item_DeviceDrive",
	"Item_DeviceSoundCard",
	"Item_DeviceBattery",
}

// ComponentTypes returns the item-device types in sync order.
func ComponentTypes() []string {
	out := make([]string, len(componentTypes))
	copy(out, componentTypes)
	return out
}

// Client defines the interface for GLPI API operations the sync engine needs.
type Client interface {
	// InitSession authenticates against GLPI and stores the session token
	// used by subsequent calls.
	InitSession(ctx context.Context) error
	// GetComputers returns one page of raw computer records starting at the
	// given offset. An empty or short page signals end of data.
	GetComputers(ctx context.Context, start, limit int) ([]map[string]any, error)
	// GetAllComponents returns the component records of a computer, keyed by
	// the GLPI item-device type name.
	GetAllComponents(ctx context.Context, computerID int) (map[string][]map[string]any, error)
	// KillSession invalidates the session token. Best effort; callers are
	// expected to swallow the error.
	KillSession(ctx context.Context) error
}

// NewClient creates a new GLPI REST client based on the configuration.
func NewClient(cfg Config) Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ResponseHeaderTimeout: timeoutDuration,
	}

	return &httpClient{
		baseURL:   strings.TrimRight(cfg.URL, "/"),
		appToken:  cfg.AppToken,
		userToken: cfg.UserToken,
		http: &http.Client{
			Transport: transport,
			Timeout:   timeoutDuration,
		},
	}
}

type httpClient struct {
	baseURL      string
	appToken     string
	userToken    string
	sessionToken string
	http         *http.Client
}

func (c *httpClient) InitSession(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/initSession", nil)
	if err != nil {
		return err
	}
	req.Header.Set("App-Token", c.appToken)
	req.Header.Set("Authorization", "user_token "+c.userToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("glpi session init failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("glpi session init failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload struct {
		SessionToken string `json:"session_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("glpi session init: decoding response: %w", err)
	}
	if payload.SessionToken == "" {
		return fmt.Errorf("glpi session init: empty session token")
	}

	c.sessionToken = payload.SessionToken
	return nil
}

func (c *httpClient) GetComputers(ctx context.Context, start, limit int) ([]map[string]any, error) {
	// GLPI ranges are inclusive: range=0-49 returns 50 records.
	url := fmt.Sprintf("%s/Computer?range=%d-%d&expand_dropdowns=true", c.baseURL, start, start+limit-1)

	var computers []map[string]any
	if err := c.getJSON(ctx, url, &computers); err != nil {
		return nil, err
	}
	return computers, nil
}

func (c *httpClient) GetAllComponents(ctx context.Context, computerID int) (map[string][]map[string]any, error) {
	components := make(map[string][]map[string]any, len(componentTypes))

	for _, itemType := range componentTypes {
		url := fmt.Sprintf("%s/Computer/%d/%s?expand_dropdowns=true", c.baseURL, computerID, itemType)

		var items []map[string]any
		if err := c.getJSON(ctx, url, &items); err != nil {
			return nil, fmt.Errorf("fetching %s for computer %d: %w", itemType, computerID, err)
		}
		components[itemType] = items
	}

	return components, nil
}

func (c *httpClient) KillSession(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/killSession", nil)
	if err != nil {
		return err
	}
	c.setSessionHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("glpi session teardown failed: status %d", resp.StatusCode)
	}
	return nil
}

func (c *httpClient) setSessionHeaders(req *http.Request) {
	req.Header.Set("App-Token", c.appToken)
	req.Header.Set("Session-Token", c.sessionToken)
}

// getJSON performs an authenticated GET and decodes a JSON list response.
// GLPI answers 206 Partial Content for ranged list queries and 400/404 for
// ranges past the end of data or item types the computer has none of; those
// are treated as an empty list, not an error.
func (c *httpClient) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	c.setSessionHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusPartialContent:
		// fall through to decode
	case http.StatusBadRequest, http.StatusNotFound:
		io.Copy(io.Discard, resp.Body)
		return nil
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("glpi request failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding glpi response: %w", err)
	}
	return nil
}
