package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/nexcommerce/catalogd/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSourceConfig(baseURL string) config.ContentfulConfig {
	return config.ContentfulConfig{
		BaseURL:     baseURL,
		SpaceID:     "space1",
		Environment: "master",
		AccessToken: "token1",
		ContentType: "product",
		PageLimit:   2,
		Timeout:     5,
		RateLimit:   1000,
	}
}

func entryJSON(id, sku string) string {
	return fmt.Sprintf(`{
		"sys": {"id": %q, "createdAt": "2024-01-02T03:04:05Z", "updatedAt": "2024-02-02T03:04:05Z"},
		"fields": {"sku": %q, "name": "Keyboard", "brand": "Acme", "model": "K-100",
			"category": "peripherals", "color": "black", "price": 49.9, "currency": "USD", "stock": 12}
	}`, id, sku)
}

func TestFetchAllPaginates(t *testing.T) {
	entries := []string{
		entryJSON("e1", "SKU-1"),
		entryJSON("e2", "SKU-2"),
		entryJSON("e3", "SKU-3"),
	}
	var requests int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "/spaces/space1/environments/master/entries", r.URL.Path)
		assert.Equal(t, "token1", r.URL.Query().Get("access_token"))
		assert.Equal(t, "product", r.URL.Query().Get("content_type"))

		skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		end := skip + limit
		if end > len(entries) {
			end = len(entries)
		}
		items := ""
		for i := skip; i < end; i++ {
			if items != "" {
				items += ","
			}
			items += entries[i]
		}
		fmt.Fprintf(w, `{"total": %d, "skip": %d, "limit": %d, "items": [%s]}`,
			len(entries), skip, limit, items)
	}))
	defer srv.Close()

	source := NewContentfulSource(testSourceConfig(srv.URL))
	got, err := source.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "e1", got[0].Sys.ID)
	assert.Equal(t, "e3", got[2].Sys.ID)
	assert.Equal(t, 2, requests)
}

func TestFetchAllTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	source := NewContentfulSource(testSourceConfig(srv.URL))
	_, err := source.FetchAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestFetchAllAuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"sys":{"id":"AccessTokenInvalid"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	source := NewContentfulSource(testSourceConfig(srv.URL))
	_, err := source.FetchAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestFetchAllMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"total": "many", "items": [{`)
	}))
	defer srv.Close()

	source := NewContentfulSource(testSourceConfig(srv.URL))
	_, err := source.FetchAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadPayload)
	assert.NotErrorIs(t, err, ErrSourceUnavailable)
}

func TestNewContentfulSourceDefaults(t *testing.T) {
	source := NewContentfulSource(config.ContentfulConfig{SpaceID: "s", AccessToken: "t"})
	assert.Equal(t, "https://cdn.contentful.com", source.cfg.BaseURL)
	assert.Equal(t, "master", source.cfg.Environment)
	assert.Equal(t, "product", source.cfg.ContentType)
	assert.Equal(t, 100, source.cfg.PageLimit)
}
