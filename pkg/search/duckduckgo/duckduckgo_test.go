package duckduckgo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/OFFIS-RIT/greenlens/pkg/search"

	"github.com/google/go-cmp/cmp"
)

const resultsPage = `<html><body>
<div class="result results_links result--ad">
  <a class="result__a" href="https://ads.example.com">Sponsored</a>
  <a class="result__snippet">Buy now</a>
</div>
<div class="result results_links">
  <h2><a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fcdp.net%2Facme-report&amp;rut=abc">Acme <b>CDP</b> report</a></h2>
  <a class="result__snippet" href="#">Acme disclosed   scope 3
    emissions of 1.2 Mt.</a>
</div>
<div class="result results_links">
  <a class="result__a" href="https://news.example.org/acme">Acme criticised</a>
  <a class="result__snippet">NGO questions net zero claim.</a>
</div>
<div class="result results_links">
  <a class="result__a" href="https://third.example.org">Third</a>
  <a class="result__snippet">Third snippet</a>
</div>
</body></html>`

func TestParseResults(t *testing.T) {
	got, err := parseResults(strings.NewReader(resultsPage), 2)
	if err != nil {
		t.Fatalf("parseResults() error = %v", err)
	}
	want := []search.Result{
		{Title: "Acme CDP report", Snippet: "Acme disclosed scope 3 emissions of 1.2 Mt.", Link: "https://cdp.net/acme-report"},
		{Title: "Acme criticised", Snippet: "NGO questions net zero claim.", Link: "https://news.example.org/acme"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("parseResults() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseResults_NoResults(t *testing.T) {
	got, err := parseResults(strings.NewReader(`<html><body><div class="no-results">No results.</div></body></html>`), 10)
	if err != nil {
		t.Fatalf("parseResults() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no results, got %v", got)
	}
}

func TestSearch_PostsQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		_ = r.ParseForm()
		gotQuery = r.PostForm.Get("q")
		_, _ = w.Write([]byte(resultsPage))
	}))
	defer srv.Close()

	client := New(Params{BaseURL: srv.URL})
	results, err := client.Search(context.Background(), "acme net zero -site:acme.com")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if gotQuery != "acme net zero -site:acme.com" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
}

func TestSearch_Non2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := New(Params{BaseURL: srv.URL})
	if _, err := client.Search(context.Background(), "q"); err == nil {
		t.Fatal("expected error for 429 response")
	}
}

func TestUnwrapRedirect(t *testing.T) {
	tests := map[string]string{
		"//duckduckgo.com/l/?uddg=https%3A%2F%2Fun.org%2Fx": "https://un.org/x",
		"https://example.com/page":                          "https://example.com/page",
		"":                                                  "",
	}
	for in, want := range tests {
		if got := unwrapRedirect(in); got != want {
			t.Fatalf("unwrapRedirect(%q) = %q, want %q", in, got, want)
		}
	}
}
