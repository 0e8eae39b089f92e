package scraper

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/WACPAC/wacpac-virtual-contest/pkg/logger"
)

// DefaultRatingColor is used for unrated users and whenever the profile
// page can't be read.
const DefaultRatingColor = "black"

// AtCoder rating tiers, as the span classes on the profile page name them
var ratingColors = map[string]string{
	"user-red":    "red",
	"user-orange": "orange",
	"user-yellow": "yellow",
	"user-blue":   "blue",
	"user-cyan":   "cyan",
	"user-green":  "green",
	"user-brown":  "brown",
	"user-gray":   "gray",
}

// ScrapeUserColor reads a participant's rating tier color from their
// AtCoder profile. Any failure degrades to the default color; adding a
// user should never be blocked by a profile scrape.
func (c *Client) ScrapeUserColor(handle string) string {
	url := fmt.Sprintf("%s/users/%s", c.baseURL, handle)

	doc, err := c.fetchDocument(url)
	if err != nil {
		logger.Warn().Err(err).Str("handle", handle).Msg("Failed to fetch user profile, using default color")
		return DefaultRatingColor
	}

	color := DefaultRatingColor
	doc.Find("span").EachWithBreak(func(_ int, span *goquery.Selection) bool {
		class, ok := span.Attr("class")
		if !ok {
			return true
		}
		if mapped, ok := ratingColors[class]; ok {
			color = mapped
			return false
		}
		return true
	})

	return color
}
