package provision

import (
	"context"
	"net/url"
	"strings"
	"testing"
)

func TestNewURL_Defaults(t *testing.T) {
	p, err := NewURL("", "")
	if err != nil {
		t.Fatalf("NewURL: %v", err)
	}
	if p.BaseURL != DefaultBaseURL || p.QueryParam != DefaultQueryParam {
		t.Errorf("defaults = %q %q", p.BaseURL, p.QueryParam)
	}
}

func TestNewURL_RejectsRelative(t *testing.T) {
	if _, err := NewURL("/cat", ""); err == nil {
		t.Error("expected error for relative base url")
	}
}

func TestURLProvisioner_UniquePerCall(t *testing.T) {
	p, _ := NewURL("https://cataas.com/cat", "random")
	first, err := p.Provision(context.Background(), 5)
	if err != nil {
		t.Fatalf("Provision: %v", err)
	}
	second, err := p.Provision(context.Background(), 5)
	if err != nil {
		t.Fatalf("Provision: %v", err)
	}
	seen := make(map[string]bool)
	for _, it := range append(first, second...) {
		if seen[it.URL] {
			t.Fatalf("duplicate url %s", it.URL)
		}
		seen[it.URL] = true
		u, err := url.Parse(it.URL)
		if err != nil {
			t.Fatalf("bad url %q: %v", it.URL, err)
		}
		if u.Query().Get("random") != it.ID {
			t.Errorf("url %s does not carry token %s", it.URL, it.ID)
		}
		if !strings.HasPrefix(it.URL, "https://cataas.com/cat?") {
			t.Errorf("unexpected url %s", it.URL)
		}
	}
}

func TestURLProvisioner_KeepsExistingQuery(t *testing.T) {
	p, _ := NewURL("https://example.test/img?size=large", "seed")
	items, err := p.Provision(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	u, _ := url.Parse(items[0].URL)
	if u.Query().Get("size") != "large" || u.Query().Get("seed") == "" {
		t.Errorf("query lost: %s", items[0].URL)
	}
}

func TestURLProvisioner_Cancelled(t *testing.T) {
	p, _ := NewURL("", "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Provision(ctx, 3); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestStatic(t *testing.T) {
	s := &Static{URLs: []string{"a", "b", "c"}}
	items, err := s.Provision(context.Background(), 3)
	if err != nil {
		t.Fatal(err)
	}
	again, _ := s.Provision(context.Background(), 3)
	for i := range items {
		if items[i].URL != s.URLs[i] {
			t.Errorf("item %d url = %q", i, items[i].URL)
		}
		if items[i].ID == again[i].ID {
			t.Errorf("item %d kept id across calls", i)
		}
	}
	if _, err := s.Provision(context.Background(), 4); err == nil {
		t.Error("expected error when asking for more cards than available")
	}
}

func TestURLProvisioner_Literal(t *testing.T) {
	p := &URLProvisioner{BaseURL: "https://cataas.com/cat", QueryParam: "random"}
	items, err := p.Provision(context.Background(), 3)
	if err != nil {
		t.Fatalf("Provision: %v", err)
	}
	seen := make(map[string]bool)
	for _, it := range items {
		if it.ID == "" || seen[it.ID] {
			t.Errorf("expected a fresh id, got %q", it.ID)
		}
		seen[it.ID] = true
		if !strings.Contains(it.URL, "random="+it.ID) {
			t.Errorf("url %s should carry its id", it.URL)
		}
	}
}
