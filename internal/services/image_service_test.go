package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestImageClient(baseURL string) *ImageSearchClient {
	return &ImageSearchClient{
		HTTP:    http.DefaultClient,
		BaseURL: baseURL,
	}
}

func TestSearchImageURLReturnsReference(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"image_url": "https://img.example.com/cho_dem.jpg"}`))
	}))
	defer srv.Close()

	got := newTestImageClient(srv.URL).SearchImageURL(context.Background(), "Chợ đêm Đà Lạt")

	assert.Equal(t, "https://img.example.com/cho_dem.jpg", got)
	assert.Equal(t, "/images/"+url.PathEscape("Chợ đêm Đà Lạt"), gotPath)
}

func TestSearchImageURLDegradesOnConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	got := newTestImageClient(srv.URL).SearchImageURL(context.Background(), "Hồ Xuân Hương")
	assert.Empty(t, got)
}

func TestSearchImageURLDegradesOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	got := newTestImageClient(srv.URL).SearchImageURL(context.Background(), "Hồ Xuân Hương")
	assert.Empty(t, got)
}

func TestSearchImageURLDegradesOnMissingField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"something_else": true}`))
	}))
	defer srv.Close()

	got := newTestImageClient(srv.URL).SearchImageURL(context.Background(), "Hồ Xuân Hương")
	assert.Empty(t, got)
}

func TestSearchImageURLDegradesOnGarbageBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json at all`))
	}))
	defer srv.Close()

	got := newTestImageClient(srv.URL).SearchImageURL(context.Background(), "Hồ Xuân Hương")
	assert.Empty(t, got)
}

func TestSearchImageURLSkipsWhenUnconfigured(t *testing.T) {
	got := newTestImageClient("").SearchImageURL(context.Background(), "Hồ Xuân Hương")
	assert.Empty(t, got)
}
