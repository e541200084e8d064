package web

import (
	"net/url"
	"testing"
)

func TestFilterURL(t *testing.T) {
	tests := []struct {
		current string
		slug    string
		want    string
	}{
		{"/portfolio/", "tech", "/portfolio/?niche=tech"},
		{"/portfolio/?niche=tech", "all", "/portfolio/"},
		{"/portfolio/?niche=tech", "", "/portfolio/"},
		{"/portfolio/?niche=tech&pdf=3", "travel", "/portfolio/?niche=travel&pdf=3"},
		{"/portfolio/?pdf=3&niche=tech", "all", "/portfolio/?pdf=3"},
		{"/portfolio/", "food & drink", "/portfolio/?niche=food+%26+drink"},
	}
	for _, tt := range tests {
		u, err := url.Parse(tt.current)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.current, err)
		}
		if got := FilterURL(u, tt.slug); got != tt.want {
			t.Errorf("FilterURL(%q, %q) = %q, want %q", tt.current, tt.slug, got, tt.want)
		}
	}
}

func TestCurrentPortfolioURL(t *testing.T) {
	tests := map[string]string{
		"http://localhost/portfolio/?pdf=3":      "/portfolio/?pdf=3",
		"http://localhost/portfolio/tech/?pdf=3": "/portfolio/?pdf=3",
		"http://localhost/blog/":                 "/portfolio/",
		"":                                       "/portfolio/",
		"%zz":                                    "/portfolio/",
	}
	for raw, want := range tests {
		if got := currentPortfolioURL(raw).String(); got != want {
			t.Errorf("currentPortfolioURL(%q) = %q, want %q", raw, got, want)
		}
	}
}
