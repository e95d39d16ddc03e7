package utils

import (
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

type oEmbedResponse struct {
	Title      string `json:"title"`
	AuthorName string `json:"author_name"`
}

var oembedClient = resty.New().SetTimeout(5 * time.Second)

// LookupVideoTitle asks YouTube's oEmbed endpoint for the title of a
// video URL. Failures only produce a log line, a missing title never
// blocks an edit.
func LookupVideoTitle(videoURL string) string {
	if videoURL == "" {
		return ""
	}

	var out oEmbedResponse
	resp, err := oembedClient.R().
		SetQueryParams(map[string]string{
			"url":    videoURL,
			"format": "json",
		}).
		SetResult(&out).
		Get("https://www.youtube.com/oembed")
	if err != nil {
		log.Printf("[YOUTUBE] oEmbed lookup failed for %s: %v", videoURL, err)
		return ""
	}
	if resp.StatusCode() != 200 {
		log.Printf("[YOUTUBE] oEmbed returned %d for %s", resp.StatusCode(), videoURL)
		return ""
	}
	return out.Title
}
