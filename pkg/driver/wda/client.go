package wda

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff"

	"github.com/devicelab-dev/pageobject/pkg/core"
	"github.com/devicelab-dev/pageobject/pkg/logger"
)

// Locator strategies understood by WDA.
const (
	UsingClassChain = "class chain"
	UsingPredicate  = "predicate string"
)

// Client is an HTTP client for WebDriverAgent.
type Client struct {
	baseURL    string
	sessionID  string
	httpClient *http.Client
}

// NewClient creates a new WDA client for the server at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// BaseURL returns the server URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Session management

// CreateSession creates a new WDA session. An empty bundleID starts a
// session without launching an app.
func (c *Client) CreateSession(bundleID string) error {
	match := map[string]interface{}{}
	if bundleID != "" {
		match["bundleId"] = bundleID
	}
	caps := map[string]interface{}{
		"capabilities": map[string]interface{}{
			"alwaysMatch": match,
		},
	}

	resp, err := c.post("/session", caps)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	// Extract session ID
	if value, ok := resp["value"].(map[string]interface{}); ok {
		if sessionID, ok := value["sessionId"].(string); ok {
			c.sessionID = sessionID
		}
	}
	if c.sessionID == "" {
		if sessionID, ok := resp["sessionId"].(string); ok {
			c.sessionID = sessionID
		}
	}
	if c.sessionID == "" {
		return core.ErrNoSession.WithMessage("WDA returned no session id")
	}

	logger.Info("wda: session %s created", c.sessionID)
	return nil
}

// DeleteSession ends the current session.
func (c *Client) DeleteSession() error {
	if c.sessionID == "" {
		return nil
	}
	_, err := c.delete(fmt.Sprintf("/session/%s", c.sessionID))
	c.sessionID = ""
	return err
}

// HasSession returns true if a session is active.
func (c *Client) HasSession() bool {
	return c.sessionID != ""
}

// SessionID returns the current session ID.
func (c *Client) SessionID() string {
	return c.sessionID
}

// Status returns WDA status.
func (c *Client) Status() (map[string]interface{}, error) {
	return c.get("/status")
}

// WaitForStatus polls /status until the server answers or ctx ends.
func (c *Client) WaitForStatus(ctx context.Context, interval time.Duration) error {
	b := backoff.WithContext(backoff.NewConstantBackOff(interval), ctx)
	err := backoff.Retry(func() error {
		_, err := c.Status()
		return err
	}, b)
	if err != nil {
		return core.ErrServerUnreachable.WithMessagef("WDA at %s not ready", c.baseURL).WithCause(err)
	}
	return nil
}

// App management

// LaunchApp launches an app with optional arguments and environment variables.
func (c *Client) LaunchApp(bundleID string, arguments []string, environment map[string]string) error {
	body := map[string]interface{}{
		"bundleId": bundleID,
	}
	if len(arguments) > 0 {
		body["arguments"] = arguments
	}
	if len(environment) > 0 {
		body["environment"] = environment
	}
	_, err := c.post(c.sessionPath("/wda/apps/launch"), body)
	return err
}

// TerminateApp terminates an app by bundle ID.
func (c *Client) TerminateApp(bundleID string) error {
	_, err := c.post(c.sessionPath("/wda/apps/terminate"), map[string]interface{}{
		"bundleId": bundleID,
	})
	return err
}

// Touch actions

// Tap performs a tap at coordinates.
func (c *Client) Tap(x, y float64) error {
	_, err := c.post(c.sessionPath("/wda/tap"), map[string]interface{}{
		"x": x,
		"y": y,
	})
	return err
}

// Screen

// Source returns the UI hierarchy as XML.
func (c *Client) Source() (string, error) {
	resp, err := c.get(c.sessionPath("/source"))
	if err != nil {
		return "", err
	}

	if value, ok := resp["value"].(string); ok {
		return value, nil
	}
	return "", fmt.Errorf("invalid source response")
}

// Element finding

// FindElements finds every element matching the locator.
func (c *Client) FindElements(using, value string) ([]string, error) {
	resp, err := c.post(c.sessionPath("/elements"), map[string]interface{}{
		"using": using,
		"value": value,
	})
	if err != nil {
		return nil, err
	}

	var elements []string
	if val, ok := resp["value"].([]interface{}); ok {
		for _, elem := range val {
			if id, ok := elementID(elem); ok {
				elements = append(elements, id)
			}
		}
	}
	return elements, nil
}

// elementID reads an element reference in JSONWP ("ELEMENT") or W3C format.
func elementID(v interface{}) (string, bool) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return "", false
	}
	if id, ok := m["ELEMENT"].(string); ok {
		return id, true
	}
	for k, v := range m {
		if str, ok := v.(string); ok && k != "error" {
			return str, true
		}
	}
	return "", false
}

// Element actions

// ElementClick clicks an element.
func (c *Client) ElementClick(elementID string) error {
	_, err := c.post(c.sessionPath(fmt.Sprintf("/element/%s/click", elementID)), nil)
	return err
}

// ElementSendKeys types text into an element. Picker wheels and sliders
// take their new value through the same endpoint.
func (c *Client) ElementSendKeys(elementID, text string) error {
	_, err := c.post(c.sessionPath(fmt.Sprintf("/element/%s/value", elementID)), map[string]interface{}{
		"value": strings.Split(text, ""),
		"text":  text,
	})
	return err
}

// ElementSwipe swipes on an element in direction ("up", "down", "left", "right").
func (c *Client) ElementSwipe(elementID, direction string) error {
	_, err := c.post(c.sessionPath(fmt.Sprintf("/wda/element/%s/swipe", elementID)), map[string]interface{}{
		"direction": direction,
	})
	return err
}

// ElementAttribute returns an attribute of an element as a string.
// A null attribute reports ok=false.
func (c *Client) ElementAttribute(elementID, name string) (value string, ok bool, err error) {
	resp, err := c.get(c.sessionPath(fmt.Sprintf("/element/%s/attribute/%s", elementID, name)))
	if err != nil {
		return "", false, err
	}
	switch v := resp["value"].(type) {
	case nil:
		return "", false, nil
	case string:
		return v, true, nil
	default:
		return fmt.Sprint(v), true, nil
	}
}

// ElementRect returns the smallest whole-point bounds enclosing an element's rect.
func (c *Client) ElementRect(elementID string) (core.Bounds, error) {
	resp, err := c.get(c.sessionPath(fmt.Sprintf("/element/%s/rect", elementID)))
	if err != nil {
		return core.Bounds{}, err
	}
	var b core.Bounds
	if value, ok := resp["value"].(map[string]interface{}); ok {
		x, _ := value["x"].(float64)
		y, _ := value["y"].(float64)
		w, _ := value["width"].(float64)
		h, _ := value["height"].(float64)
		// Snap outward to whole points so a sub-point element keeps a non-zero size.
		b.X, b.Y = int(math.Floor(x)), int(math.Floor(y))
		if w > 0 {
			b.Width = int(math.Ceil(x+w)) - b.X
		}
		if h > 0 {
			b.Height = int(math.Ceil(y+h)) - b.Y
		}
	}
	return b, nil
}

// HTTP helpers

func (c *Client) sessionPath(path string) string {
	if c.sessionID != "" {
		return fmt.Sprintf("/session/%s%s", c.sessionID, path)
	}
	return path
}

func (c *Client) get(path string) (map[string]interface{}, error) {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return nil, unreachable(err)
	}
	defer resp.Body.Close()
	return c.parseResponse(resp)
}

func (c *Client) post(path string, body interface{}) (map[string]interface{}, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(data)
	}

	logger.Debug("wda: POST %s", path)
	resp, err := c.httpClient.Post(c.baseURL+path, "application/json", reqBody)
	if err != nil {
		return nil, unreachable(err)
	}
	defer resp.Body.Close()
	return c.parseResponse(resp)
}

func (c *Client) delete(path string) (map[string]interface{}, error) {
	req, err := http.NewRequest(http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, unreachable(err)
	}
	defer resp.Body.Close()
	return c.parseResponse(resp)
}

func (c *Client) parseResponse(resp *http.Response) (map[string]interface{}, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w (body: %s)", err, string(body))
	}

	// Check for WDA error
	if value, ok := result["value"].(map[string]interface{}); ok {
		if errMsg, ok := value["error"].(string); ok {
			message := errMsg
			if msg, ok := value["message"].(string); ok {
				message = msg
			}
			return nil, &Error{Code: errMsg, Message: message}
		}
	}

	return result, nil
}

// Error is an error reported by WDA in a response body.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return "WDA error: " + e.Message
}

// IsNoSuchElement reports whether err says the element is gone.
func IsNoSuchElement(err error) bool {
	var wdaErr *Error
	if errors.As(err, &wdaErr) {
		return wdaErr.Code == "no such element" || wdaErr.Code == "stale element reference"
	}
	return false
}

func unreachable(err error) error {
	return core.ErrServerUnreachable.WithCause(err)
}
