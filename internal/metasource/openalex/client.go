// Package openalex implements the metasource.Client capability against the
// OpenAlex works API.
//
// OpenAlex is a free, open catalog of scholarly papers, authors, venues,
// institutions, and concepts. Works are returned as-is, as untyped records:
// normalization into the stable consumer schema happens in the normalize
// package, independent of how a record was obtained.
//
// API Documentation: https://docs.openalex.org/
package openalex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/helixir/paper-metadata-service/internal/domain"
	"github.com/helixir/paper-metadata-service/internal/metasource"
)

const (
	// DefaultBaseURL is the default OpenAlex API base URL.
	DefaultBaseURL = "https://api.openalex.org"

	// DefaultRateLimit is the default rate limit for requests per second.
	// OpenAlex polite pool (with email) allows higher rates.
	DefaultRateLimit = 10.0

	// DefaultBurstSize is the default burst size for rate limiting.
	DefaultBurstSize = 10

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 30 * time.Second

	// doiPrefix is the URL prefix that OpenAlex uses for DOIs.
	doiPrefix = "https://doi.org/"

	// openAlexIDPrefix is the URL prefix for OpenAlex IDs.
	openAlexIDPrefix = "https://openalex.org/"

	// maxResponseBytes limits decoded response bodies to prevent resource
	// exhaustion from a misbehaving upstream.
	maxResponseBytes = 10 << 20
)

// Config holds configuration for the OpenAlex client.
type Config struct {
	// BaseURL is the OpenAlex API base URL.
	// Defaults to https://api.openalex.org
	BaseURL string

	// Email is the contact email for the polite pool.
	// Providing an email grants access to higher rate limits.
	// See: https://docs.openalex.org/how-to-use-the-api/rate-limits-and-authentication
	Email string

	// Timeout is the request timeout.
	// Defaults to 30 seconds.
	Timeout time.Duration

	// RateLimit is the maximum requests per second.
	// Defaults to 10 req/sec (polite pool with email gets higher).
	RateLimit float64

	// BurstSize is the maximum burst of requests allowed.
	// Defaults to 10.
	BurstSize int
}

// applyDefaults sets default values for unset configuration fields.
func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RateLimit == 0 {
		c.RateLimit = DefaultRateLimit
	}
	if c.BurstSize == 0 {
		c.BurstSize = DefaultBurstSize
	}
}

// Client implements the metasource.Client interface for OpenAlex.
type Client struct {
	config     Config
	httpClient *metasource.HTTPClient
}

// Ensure Client implements the metasource.Client interface.
var _ metasource.Client = (*Client)(nil)

// New creates a new OpenAlex client with the given configuration.
func New(cfg Config) *Client {
	cfg.applyDefaults()

	httpClient := metasource.NewHTTPClient(metasource.HTTPClientConfig{
		Timeout:   cfg.Timeout,
		RateLimit: cfg.RateLimit,
		BurstSize: cfg.BurstSize,
		UserAgent: "Helixir-PaperMetadataService/1.0 (mailto:" + cfg.Email + ")",
	})

	return &Client{
		config:     cfg,
		httpClient: httpClient,
	}
}

// NewWithHTTPClient creates a new OpenAlex client with a custom HTTP client.
// This is useful for testing with mock servers.
func NewWithHTTPClient(cfg Config, httpClient *metasource.HTTPClient) *Client {
	cfg.applyDefaults()

	return &Client{
		config:     cfg,
		httpClient: httpClient,
	}
}

// worksResponse is the top-level shape of the works search endpoint.
// Individual works stay untyped; their exact shape is not under our control.
type worksResponse struct {
	Meta    worksMeta          `json:"meta"`
	Results []domain.RawRecord `json:"results"`
}

// worksMeta contains pagination metadata for a works search.
type worksMeta struct {
	Count   int `json:"count"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// Works queries the OpenAlex works endpoint with the given composed request.
func (c *Client) Works(ctx context.Context, req metasource.WorksRequest) (*metasource.WorksResult, error) {
	searchURL, err := c.buildWorksURL(req)
	if err != nil {
		return nil, fmt.Errorf("building works URL: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return nil, domain.NewExternalAPIError(
			"OpenAlex",
			resp.StatusCode,
			string(body),
			nil,
		)
	}

	var worksResp worksResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&worksResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	page := worksResp.Meta.Page
	if page == 0 {
		page = req.Page
	}
	perPage := worksResp.Meta.PerPage
	if perPage == 0 {
		perPage = req.PerPage
	}

	return &metasource.WorksResult{
		Records:      worksResp.Results,
		TotalResults: worksResp.Meta.Count,
		Page:         page,
		PerPage:      perPage,
	}, nil
}

// GetWork retrieves a single work by its OpenAlex ID or DOI.
func (c *Client) GetWork(ctx context.Context, id string) (domain.RawRecord, error) {
	fetchURL, err := c.buildGetWorkURL(id)
	if err != nil {
		return nil, fmt.Errorf("building fetch URL: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.NewNotFoundError("work", id)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return nil, domain.NewExternalAPIError(
			"OpenAlex",
			resp.StatusCode,
			string(body),
			nil,
		)
	}

	var record domain.RawRecord
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&record); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return record, nil
}

// Name returns the human-readable name for this source.
func (c *Client) Name() string {
	return "OpenAlex"
}

// buildWorksURL constructs the works search URL with query parameters.
// Filter expressions are joined in the order the request builder composed them.
func (c *Client) buildWorksURL(req metasource.WorksRequest) (string, error) {
	baseURL, err := url.Parse(c.config.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}

	baseURL.Path = "/works"

	query := url.Values{}

	if req.Query != "" {
		query.Set("search", req.Query)
	}

	if len(req.Filters) > 0 {
		query.Set("filter", strings.Join(req.Filters, ","))
	}

	if req.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(req.PerPage))
	}
	if req.Page > 0 {
		query.Set("page", strconv.Itoa(req.Page))
	}

	// Add mailto for polite pool
	if c.config.Email != "" {
		query.Set("mailto", c.config.Email)
	}

	baseURL.RawQuery = query.Encode()
	return baseURL.String(), nil
}

// buildGetWorkURL constructs the URL for fetching a work by ID.
func (c *Client) buildGetWorkURL(id string) (string, error) {
	baseURL, err := url.Parse(c.config.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}

	// Determine the ID format and construct the path.
	// OpenAlex accepts: OpenAlex ID, DOI, MAG ID, PubMed ID, PMC ID.
	var workID string
	switch {
	case strings.HasPrefix(id, openAlexIDPrefix):
		// Full OpenAlex URL - extract the ID part
		workID = strings.TrimPrefix(id, openAlexIDPrefix)
	case strings.HasPrefix(id, "W"):
		// Short OpenAlex ID (e.g., W2741809807)
		workID = id
	case strings.HasPrefix(id, doiPrefix):
		// Full DOI URL
		workID = id
	case strings.HasPrefix(id, "10."):
		// Short DOI format - prefix with https://doi.org/
		workID = doiPrefix + id
	case strings.HasPrefix(id, "doi:"):
		workID = doiPrefix + strings.TrimPrefix(id, "doi:")
	default:
		// Assume it is an OpenAlex ID or other supported format
		workID = id
	}

	// OpenAlex expects the DOI as-is in the path and handles URL decoding
	// on their side.
	baseURL.Path = "/works/" + workID

	if c.config.Email != "" {
		query := url.Values{}
		query.Set("mailto", c.config.Email)
		baseURL.RawQuery = query.Encode()
	}

	return baseURL.String(), nil
}
