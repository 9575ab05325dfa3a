package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"estepage_storefront/internal/model"
	"estepage_storefront/pkg/metrics"

	"go.uber.org/zap"
)

// ErrNotFound matches a StatusError carrying 404.
var ErrNotFound = errors.New("not found")

// StatusError is a non-2xx answer from the property API.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("property API error: status %d: %s", e.Code, e.Body)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

// Client talks to the remote property, favorites and inquiry API.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
	logger  *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// WithToken returns a copy that forwards the session's bearer token.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// ListOptions selects and orders a property listing.
type ListOptions struct {
	Limit   int
	Page    int
	SortBy  string
	Order   string
	Filters url.Values
}

func (o ListOptions) query() url.Values {
	q := url.Values{}
	for k, vs := range o.Filters {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.SortBy != "" {
		q.Set("sortBy", o.SortBy)
	}
	if o.Order != "" {
		q.Set("order", o.Order)
	}
	return q
}

// PropertyList is one page of listings.
type PropertyList struct {
	Properties []model.Property `json:"properties"`
	Total      int              `json:"total"`
}

type favoriteResponse struct {
	IsFavorite bool `json:"isFavorite"`
}

func (c *Client) GetAllProperties(ctx context.Context, opts ListOptions) (*PropertyList, error) {
	path := "/properties"
	if q := opts.query(); len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out PropertyList
	if err := c.do(ctx, "list", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if out.Total < len(out.Properties) {
		out.Total = len(out.Properties)
	}
	return &out, nil
}

func (c *Client) GetPropertyByID(ctx context.Context, id string) (*model.Property, error) {
	var out model.Property
	if err := c.do(ctx, "get", http.MethodGet, "/properties/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetSimilarProperties(ctx context.Context, id string) ([]model.Property, error) {
	var out []model.Property
	if err := c.do(ctx, "similar", http.MethodGet, "/properties/"+url.PathEscape(id)+"/similar", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CheckFavorite(ctx context.Context, propertyID string) (bool, error) {
	var out favoriteResponse
	if err := c.do(ctx, "favorite_check", http.MethodGet, "/favorites/"+url.PathEscape(propertyID)+"/check", nil, &out); err != nil {
		return false, err
	}
	return out.IsFavorite, nil
}

func (c *Client) ToggleFavorite(ctx context.Context, propertyID string) (bool, error) {
	var out favoriteResponse
	if err := c.do(ctx, "favorite_toggle", http.MethodPost, "/favorites/"+url.PathEscape(propertyID)+"/toggle", nil, &out); err != nil {
		return false, err
	}
	return out.IsFavorite, nil
}

func (c *Client) SendInquiry(ctx context.Context, req model.InquiryRequest) error {
	return c.do(ctx, "inquiry", http.MethodPost, "/inquiries", req, nil)
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out interface{}) (err error) {
	start := time.Now()
	defer func() {
		metrics.UpstreamLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
		metrics.UpstreamRequests.WithLabelValues(op, metrics.Outcome(err)).Inc()
	}()

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error marshaling request: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Debug("Property API error",
			zap.String("operation", op),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", respBody))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("error decoding %s response: %w", op, err)
	}
	return nil
}

// FeaturedOptions selects the home page's featured listings.
func FeaturedOptions(limit int) ListOptions {
	return ListOptions{Limit: limit, SortBy: "createdAt", Order: "desc"}
}
