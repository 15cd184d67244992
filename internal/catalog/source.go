package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/nexcommerce/catalogd/config"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Entry is one raw record from the content source. Field presence is
// validated by the mapper, not here.
type Entry struct {
	Sys struct {
		ID        string `json:"id"`
		CreatedAt string `json:"createdAt"`
		UpdatedAt string `json:"updatedAt"`
	} `json:"sys"`
	Fields EntryFields `json:"fields"`
}

// EntryFields models the dynamic field block with explicit optionals.
// Numeric values are kept untyped because the CMS occasionally delivers
// them as strings; the mapper normalizes them.
type EntryFields struct {
	Sku      *string     `json:"sku"`
	Name     *string     `json:"name"`
	Brand    *string     `json:"brand"`
	Model    *string     `json:"model"`
	Category *string     `json:"category"`
	Color    *string     `json:"color"`
	Price    interface{} `json:"price"`
	Currency *string     `json:"currency"`
	Stock    interface{} `json:"stock"`
}

type entriesResponse struct {
	Total int     `json:"total"`
	Skip  int     `json:"skip"`
	Limit int     `json:"limit"`
	Items []Entry `json:"items"`
}

// Source fetches the full external record set. Either every available
// record is returned or none is.
type Source interface {
	FetchAll(ctx context.Context) ([]Entry, error)
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ContentfulSource reads product entries from the Contentful delivery API.
// It pages with skip/limit until the reported total is exhausted, so a
// catalog larger than one page is still fully synchronized.
type ContentfulSource struct {
	cfg     config.ContentfulConfig
	client  *http.Client
	limiter *rate.Limiter
}

func NewContentfulSource(cfg config.ContentfulConfig) *ContentfulSource {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://cdn.contentful.com"
	}
	if cfg.Environment == "" {
		cfg.Environment = "master"
	}
	if cfg.ContentType == "" {
		cfg.ContentType = "product"
	}
	if cfg.PageLimit <= 0 || cfg.PageLimit > 1000 {
		cfg.PageLimit = 100
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 5
	}
	return &ContentfulSource{
		cfg:     cfg,
		client:  &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second},
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
	}
}

func (s *ContentfulSource) FetchAll(ctx context.Context) ([]Entry, error) {
	var all []Entry
	skip := 0
	for {
		page, err := s.fetchPage(ctx, skip)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Items...)
		skip += len(page.Items)
		if skip >= page.Total || len(page.Items) == 0 {
			break
		}
	}
	zap.L().Info("fetched catalog entries from content source", zap.Int("count", len(all)))
	return all, nil
}

func (s *ContentfulSource) fetchPage(ctx context.Context, skip int) (*entriesResponse, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %v: %w", err, ErrSourceUnavailable)
	}

	endpoint := fmt.Sprintf("%s/spaces/%s/environments/%s/entries",
		s.cfg.BaseURL, s.cfg.SpaceID, s.cfg.Environment)
	params := url.Values{}
	params.Set("access_token", s.cfg.AccessToken)
	params.Set("content_type", s.cfg.ContentType)
	params.Set("limit", strconv.Itoa(s.cfg.PageLimit))
	params.Set("skip", strconv.Itoa(skip))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %v: %w", err, ErrSourceUnavailable)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v: %w", err, ErrSourceUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %s: %s: %w", resp.Status, string(body), ErrSourceUnavailable)
	}

	var page entriesResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode entries: %v: %w", err, ErrBadPayload)
	}
	return &page, nil
}
