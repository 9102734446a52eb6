package trust

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewContentSample(t *testing.T) {
	sample := NewContentSample("  hello\n\tworld  ")
	if sample.Text != "hello world" {
		t.Errorf("Text = %q, want %q", sample.Text, "hello world")
	}

	var b strings.Builder
	for i := 0; i < MaxContentTokens+500; i++ {
		fmt.Fprintf(&b, "tok%d ", i)
	}
	sample = NewContentSample(b.String())
	if got := len(strings.Fields(sample.Text)); got != MaxContentTokens {
		t.Errorf("token count = %d, want %d", got, MaxContentTokens)
	}
	if !strings.HasSuffix(sample.Text, fmt.Sprintf("tok%d", MaxContentTokens-1)) {
		t.Error("truncation must keep leading tokens")
	}
}

func TestContentSamplePreview(t *testing.T) {
	sample := ContentSample{Text: "short"}
	if got := sample.Preview(500); got != "short" {
		t.Errorf("Preview = %q", got)
	}

	sample = ContentSample{Text: strings.Repeat("x", 600)}
	got := sample.Preview(500)
	if len(got) != 503 || !strings.HasSuffix(got, "...") {
		t.Errorf("Preview length = %d, want 503 with ellipsis", len(got))
	}
}

func TestFetchContentStripsMarkup(t *testing.T) {
	t.Setenv("SKIP_CHROMEDP", "true")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "Mozilla") {
			t.Errorf("missing browser User-Agent, got %q", ua)
		}
		fmt.Fprint(w, `<html><head><title>t</title></head><body>
			<h1>Welcome</h1>
			<p>Claim your prize now</p>
			<script>var hidden = "tracker";</script>
		</body></html>`)
	}))
	defer srv.Close()

	sample, err := FetchContent(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lower := strings.ToLower(sample.Text)
	if !strings.Contains(lower, "welcome") || !strings.Contains(lower, "claim your prize now") {
		t.Errorf("visible text missing from %q", sample.Text)
	}
	if strings.Contains(lower, "tracker") {
		t.Errorf("script content leaked into %q", sample.Text)
	}
}

func TestFetchContentHTTPFailure(t *testing.T) {
	t.Setenv("SKIP_CHROMEDP", "true")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := FetchContent(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestFetchContentUnreachable(t *testing.T) {
	t.Setenv("SKIP_CHROMEDP", "true")

	if _, err := FetchContent(context.Background(), "http://127.0.0.1:1"); err == nil {
		t.Fatal("expected error for unreachable host")
	}
}
