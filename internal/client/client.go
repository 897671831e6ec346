// Package client provides an HTTP client for the amlak JSON API.
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/evcraddock/amlak/internal/catalog"
	"github.com/evcraddock/amlak/internal/property"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client is an HTTP client for the amlak API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ListProperties returns the listings matching c. Prices are in toman.
func (c *Client) ListProperties(crit property.Criteria) ([]*property.Property, error) {
	path := "/api/properties"
	if params := Values(crit); len(params) > 0 {
		path += "?" + params.Encode()
	}

	var props []*property.Property
	if err := c.get(path, &props); err != nil {
		return nil, err
	}
	return props, nil
}

// GetProperty returns a single listing.
func (c *Client) GetProperty(id string) (*property.Property, error) {
	var p property.Property
	if err := c.get("/api/properties/"+url.PathEscape(id), &p); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", catalog.ErrNotFound, id)
		}
		return nil, err
	}
	return &p, nil
}

// Featured returns the featured listings.
func (c *Client) Featured() ([]*property.Property, error) {
	var props []*property.Property
	if err := c.get("/api/featured", &props); err != nil {
		return nil, err
	}
	return props, nil
}

// Neighborhoods returns the distinct neighborhood names.
func (c *Client) Neighborhoods() ([]string, error) {
	var names []string
	if err := c.get("/api/neighborhoods", &names); err != nil {
		return nil, err
	}
	return names, nil
}

// Agency returns the agency contact details.
func (c *Client) Agency() (*catalog.Agency, error) {
	var a catalog.Agency
	if err := c.get("/api/agency", &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Health checks that the server is up.
func (c *Client) Health() error {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.get("/health", &resp); err != nil {
		return err
	}
	if resp.Status != "ok" {
		return fmt.Errorf("unexpected health status %q", resp.Status)
	}
	return nil
}

// Values encodes crit as the query parameters understood by the API.
func Values(crit property.Criteria) url.Values {
	v := url.Values{}
	f := crit.Filter
	if crit.Search != "" {
		v.Set("q", crit.Search)
	}
	if f.MinPrice != nil {
		v.Set("min_price", strconv.FormatInt(*f.MinPrice, 10))
	}
	if f.MaxPrice != nil {
		v.Set("max_price", strconv.FormatInt(*f.MaxPrice, 10))
	}
	if f.MinArea != nil {
		v.Set("min_area", strconv.Itoa(*f.MinArea))
	}
	if f.MaxArea != nil {
		v.Set("max_area", strconv.Itoa(*f.MaxArea))
	}
	if f.MinRooms != nil {
		v.Set("min_rooms", strconv.Itoa(*f.MinRooms))
	}
	if f.Type != "" {
		v.Set("type", string(f.Type))
	}
	if f.Status != "" {
		v.Set("status", string(f.Status))
	}
	if f.Neighborhood != "" {
		v.Set("neighborhood", f.Neighborhood)
	}
	if f.Featured != nil {
		v.Set("featured", strconv.FormatBool(*f.Featured))
	}
	if crit.Sort != property.SortNone {
		v.Set("sort", string(crit.Sort))
	}
	return v
}

// get performs a GET request and decodes the response.
func (c *Client) get(path string, result interface{}) error {
	req, err := http.NewRequest("GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

// do executes an HTTP request with a fresh request ID and handles errors.
func (c *Client) do(req *http.Request, result interface{}) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			fmt.Printf("warning: closing response body: %v\n", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Message:    "server error: " + http.StatusText(resp.StatusCode),
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			apiErr.Message = errResp.Error
		}
		return apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
