package scraper

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"

	"spotisync/internal/models"
)

// oembedResponse is the subset of the oEmbed payload the fallback needs.
type oembedResponse struct {
	Title      string `json:"title"`
	AuthorName string `json:"author_name"`
}

// newOEmbedClient builds the resty client for the fallback lookup endpoint.
func newOEmbedClient(endpoint string) *resty.Client {
	return resty.New().
		SetBaseURL(endpoint).
		SetTimeout(10 * time.Second)
}

// resolveFallback resolves each track URL through the oEmbed endpoint,
// skipping any that fail, and preserves request order as index order.
func (s *Spider) resolveFallback(ctx context.Context, urls []string) []models.Candidate {
	candidates := make([]models.Candidate, 0, len(urls))

	for _, trackURL := range urls {
		var body oembedResponse
		resp, err := s.oembed.R().
			SetContext(ctx).
			SetQueryParam("url", trackURL).
			SetResult(&body).
			Get("")
		if err != nil || resp.IsError() {
			s.logger.Warn("oembed lookup failed, skipping", "url", trackURL)
			continue
		}
		if body.Title == "" {
			continue
		}

		artist := body.AuthorName
		if artist == "" {
			artist = unknownArtist
		}
		candidates = append(candidates, models.Candidate{Title: body.Title, Artist: artist})
	}

	return candidates
}
