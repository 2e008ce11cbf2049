package content

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/civiclens/prerender/internal/metrics"
)

// Client reads records from the content API and the legislator registry.
// Every method treats the upstream as unreliable: a non-200 response, network
// failure, or decode failure yields a zero value and an error the caller is
// expected to swallow into "section omitted" or "matcher doesn't match".
type Client struct {
	httpClient   *http.Client
	contentBase  string
	registryBase string
	logger       *zap.Logger
}

// NewClient builds a Client with a bounded per-request timeout.
func NewClient(contentBase, registryBase string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: timeout},
		contentBase:  strings.TrimRight(contentBase, "/"),
		registryBase: strings.TrimRight(registryBase, "/"),
		logger:       logger,
	}
}

// ListQuery filters the listing endpoint.
type ListQuery struct {
	Category  string
	Countries []string
	Limit     int
}

// Event fetches a single event record.
func (c *Client) Event(ctx context.Context, id, lang string) (Event, error) {
	var rec Event
	err := c.getJSON(ctx, "events", c.contentBase+"/events/"+url.PathEscape(id)+"?lang="+url.QueryEscape(lang), &rec)
	return rec, err
}

// Brief fetches a single daily brief.
func (c *Client) Brief(ctx context.Context, id, lang string) (Brief, error) {
	var rec Brief
	err := c.getJSON(ctx, "briefs", c.contentBase+"/briefs/"+url.PathEscape(id)+"?lang="+url.QueryEscape(lang), &rec)
	return rec, err
}

// Column fetches a single opinion column.
func (c *Client) Column(ctx context.Context, id, lang string) (Column, error) {
	var rec Column
	err := c.getJSON(ctx, "columns", c.contentBase+"/columns/"+url.PathEscape(id)+"?lang="+url.QueryEscape(lang), &rec)
	return rec, err
}

// BlogPost fetches a single blog post.
func (c *Client) BlogPost(ctx context.Context, id, lang string) (BlogPost, error) {
	var rec BlogPost
	err := c.getJSON(ctx, "posts", c.contentBase+"/posts/"+url.PathEscape(id)+"?lang="+url.QueryEscape(lang), &rec)
	return rec, err
}

// List fetches listing items filtered by category and/or country keys.
func (c *Client) List(ctx context.Context, q ListQuery, lang string) ([]ListItem, error) {
	params := url.Values{}
	params.Set("lang", lang)
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if len(q.Countries) > 0 {
		params.Set("country", strings.Join(q.Countries, ","))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	var items []ListItem
	err := c.getJSON(ctx, "items", c.contentBase+"/items?"+params.Encode(), &items)
	return items, err
}

// Similar fetches related items for a record. It backs an optional enrichment
// section, so callers bound it with their own short timeout.
func (c *Client) Similar(ctx context.Context, id, lang string) ([]ListItem, error) {
	var items []ListItem
	err := c.getJSON(ctx, "similar", c.contentBase+"/items/"+url.PathEscape(id)+"/similar?lang="+url.QueryEscape(lang), &items)
	return items, err
}

// Legislator fetches one person record from the registry upstream.
func (c *Client) Legislator(ctx context.Context, id string) (Legislator, error) {
	var rec Legislator
	err := c.getJSON(ctx, "legislators", c.registryBase+"/legislators/"+url.PathEscape(id), &rec)
	return rec, err
}

// Legislators fetches the full registry roster.
func (c *Client) Legislators(ctx context.Context) ([]Legislator, error) {
	var recs []Legislator
	err := c.getJSON(ctx, "legislators", c.registryBase+"/legislators/all", &recs)
	return recs, err
}

// LegislatorHistory fetches a legislator's voting history.
func (c *Client) LegislatorHistory(ctx context.Context, id string) ([]VoteRecord, error) {
	var recs []VoteRecord
	err := c.getJSON(ctx, "history", c.registryBase+"/legislators/"+url.PathEscape(id)+"/history", &recs)
	return recs, err
}

func (c *Client) getJSON(ctx context.Context, endpoint, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return c.fail(endpoint, rawURL, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail(endpoint, rawURL, fmt.Errorf("fetch: %w", err))
	}
	defer resp.Body.Close() //nolint:errcheck // read-only response body

	if resp.StatusCode != http.StatusOK {
		return c.fail(endpoint, rawURL, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return c.fail(endpoint, rawURL, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func (c *Client) fail(endpoint, rawURL string, err error) error {
	metrics.ObserveUpstreamError(endpoint)
	if c.logger != nil {
		c.logger.Debug("upstream fetch failed",
			zap.String("endpoint", endpoint),
			zap.String("url", rawURL),
			zap.Error(err),
		)
	}
	return err
}
