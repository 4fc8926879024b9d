package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// ImageSearchServiceInterface looks up a representative image for a place
// display name. The contract is best-effort: every failure mode degrades to an
// empty reference, it never aborts the caller.
type ImageSearchServiceInterface interface {
	SearchImageURL(ctx context.Context, placeName string) string
}

type ImageSearchClient struct {
	HTTP    *http.Client
	BaseURL string
}

func NewImageSearchClient() *ImageSearchClient {
	return &ImageSearchClient{
		HTTP:    &http.Client{Timeout: 10 * time.Second},
		BaseURL: os.Getenv("IMAGE_SEARCH_URL"),
	}
}

func (c *ImageSearchClient) SearchImageURL(ctx context.Context, placeName string) string {
	if c.BaseURL == "" || strings.TrimSpace(placeName) == "" {
		return ""
	}

	u := fmt.Sprintf("%s/images/%s", strings.TrimRight(c.BaseURL, "/"), url.PathEscape(placeName))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return ""
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		log.Printf("image search failed for %q: %v", placeName, err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		log.Printf("image search bad status for %q: %s", placeName, resp.Status)
		return ""
	}

	var payload struct {
		ImageURL string `json:"image_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return ""
	}

	return payload.ImageURL
}
