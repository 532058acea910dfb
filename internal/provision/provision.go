// Package provision supplies card content for a deck.
package provision

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/kokistudios/swipe/internal/deck"
)

const (
	DefaultBaseURL    = "https://cataas.com/cat"
	DefaultQueryParam = "random"
)

// URLProvisioner builds image locators that differ per call by tagging
// each URL with a fresh uuid.
type URLProvisioner struct {
	BaseURL    string
	QueryParam string
	newToken   func() string
}

// NewURL returns a provisioner for baseURL. Empty arguments fall back to
// the defaults.
func NewURL(baseURL, queryParam string) (*URLProvisioner, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if queryParam == "" {
		queryParam = DefaultQueryParam
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid provider base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("provider base url %q must be absolute", baseURL)
	}
	return &URLProvisioner{
		BaseURL:    baseURL,
		QueryParam: queryParam,
		newToken:   func() string { return uuid.New().String() },
	}, nil
}

func (p *URLProvisioner) Provision(ctx context.Context, count int) ([]deck.Item, error) {
	if count < 0 {
		return nil, fmt.Errorf("negative card count %d", count)
	}
	base, err := url.Parse(p.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid provider base url %q: %w", p.BaseURL, err)
	}
	items := make([]deck.Item, 0, count)
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		token := p.token()
		u := *base
		q := u.Query()
		q.Set(p.QueryParam, token)
		u.RawQuery = q.Encode()
		items = append(items, deck.Item{ID: token, URL: u.String()})
	}
	return items, nil
}

func (p *URLProvisioner) token() string {
	if p.newToken == nil {
		return uuid.NewString()
	}
	return p.newToken()
}

// Static provisions from a fixed list of locators, in order. Every call
// tags the items with new ids so identities never repeat across restarts.
type Static struct {
	URLs []string
}

func (s *Static) Provision(ctx context.Context, count int) ([]deck.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if count > len(s.URLs) {
		return nil, fmt.Errorf("static provisioner has %d cards, %d requested", len(s.URLs), count)
	}
	items := make([]deck.Item, count)
	for i := range items {
		items[i] = deck.Item{ID: uuid.NewString(), URL: s.URLs[i]}
	}
	return items, nil
}
