package web

import (
	"net/url"
	"strings"

	"github.com/vidsponential/website/internal/view"
)

// FilterURL returns the address-bar URL after selecting slug on the page
// at current. Selecting all niches removes the niche parameter; any other
// slug sets it. Other query parameters are kept. The result is
// path-absolute.
func FilterURL(current *url.URL, slug string) string {
	q := current.Query()
	if slug == "" || slug == view.AllNiches {
		q.Del("niche")
	} else {
		q.Set("niche", slug)
	}
	u := url.URL{Path: current.Path, RawQuery: q.Encode()}
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String()
}

// currentPortfolioURL reads the page URL the browser reported with a
// fragment request. Pre-filtered pages (/portfolio/<slug>/) map back to
// /portfolio/ so the niche parameter alone selects the filter.
func currentPortfolioURL(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil || !strings.HasPrefix(u.Path, "/portfolio/") {
		return &url.URL{Path: "/portfolio/"}
	}
	return &url.URL{Path: "/portfolio/", RawQuery: u.RawQuery}
}

func portfolioPath(slug string) string {
	return "/portfolio/" + url.PathEscape(slug) + "/"
}
