package supplychain

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client talks to the supply-chain backend. Every response is
// normalized at decode time: nested date containers flatten to
// YYYY-MM-DD, numeric strings coerce to numbers and missing nested
// collections come back as empty slices.
type Client struct {
	baseURL    string
	limit      int
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient builds a backend client with a bounded request timeout.
func NewClient(baseURL string, timeout time.Duration, pageLimit int, logger *zap.Logger) *Client {
	if pageLimit <= 0 {
		pageLimit = 5
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		limit:      pageLimit,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// PageLimit is the page size sent with every list request.
func (c *Client) PageLimit() int { return c.limit }

func (c *Client) pageQuery(page int) url.Values {
	if page < 1 {
		page = 1
	}
	return url.Values{
		"page":  []string{strconv.Itoa(page)},
		"limit": []string{strconv.Itoa(c.limit)},
	}
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &statusError{Status: resp.StatusCode, Message: remoteMessage(resp.Body)}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &statusError{Status: resp.StatusCode, Message: remoteMessage(resp.Body)}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// remoteMessage pulls the backend's {"message": ...} out of an error
// body when there is one.
func remoteMessage(r io.Reader) string {
	var remote struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r).Decode(&remote); err != nil {
		return ""
	}
	return remote.Message
}
