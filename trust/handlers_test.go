package trust

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantURL  string
		wantHost string
		wantErr  bool
	}{
		{name: "bare domain", in: "example.com", wantURL: "https://example.com", wantHost: "example.com"},
		{name: "with path", in: "example.com/shop", wantURL: "https://example.com/shop", wantHost: "example.com"},
		{name: "http kept", in: "http://example.com", wantURL: "http://example.com", wantHost: "example.com"},
		{name: "https kept", in: "https://sub.example.com", wantURL: "https://sub.example.com", wantHost: "sub.example.com"},
		{name: "whitespace trimmed", in: "  example.com  ", wantURL: "https://example.com", wantHost: "example.com"},
		{name: "empty", in: "", wantErr: true},
		{name: "spaces only", in: "   ", wantErr: true},
		{name: "garbage", in: "ht tp://nope", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotURL, gotHost, err := NormalizeURL(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", gotURL)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gotURL != tt.wantURL || gotHost != tt.wantHost {
				t.Errorf("NormalizeURL(%q) = (%q, %q), want (%q, %q)",
					tt.in, gotURL, gotHost, tt.wantURL, tt.wantHost)
			}
		})
	}
}

func TestRegistrableDomain(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"example.com", "example.com"},
		{"shop.example.com", "example.com"},
		{"a.b.example.co.uk", "example.co.uk"},
		{"localhost", "localhost"},
	}
	for _, tt := range tests {
		if got := RegistrableDomain(tt.host); got != tt.want {
			t.Errorf("RegistrableDomain(%q) = %q, want %q", tt.host, got, tt.want)
		}
	}
}

type stubAnalyzer struct {
	text string
	err  error
}

func (s stubAnalyzer) AnalyzeContent(ctx context.Context, content string) (string, error) {
	return s.text, s.err
}

type stubReputation struct {
	blacklist BlacklistStatus
	proximity ProximityScore
}

func (s stubReputation) BlacklistStatus(domain string) BlacklistStatus { return s.blacklist }
func (s stubReputation) ProximityScore(domain string) ProximityScore  { return s.proximity }

func newTestChecker(analyzer Analyzer) *Checker {
	rep := stubReputation{
		blacklist: cleanBlacklist(),
		proximity: ProximityScore{Score: 10},
	}
	return &Checker{
		Policy:    DefaultScoringPolicy(),
		Analyzer:  analyzer,
		Blacklist: rep,
		Proximity: rep,
		DomainAge: func(domain string) DomainAgeInfo {
			return DomainAgeInfo{
				Age:       DomainAge{Days: 400, Known: true},
				CreatedOn: "Saturday, 4 May 2019",
			}
		},
		Transport: func(domain string) TransportStatus { return validHTTPS() },
		Content: func(ctx context.Context, url string) (ContentSample, error) {
			return NewContentSample("Welcome to our store"), nil
		},
	}
}

func postCheck(t *testing.T, checker *Checker, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/check", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	checker.CheckHandler(rec, req)
	return rec
}

func TestCheckHandler(t *testing.T) {
	checker := newTestChecker(stubAnalyzer{text: "This site appears safe and trustworthy"})

	rec := postCheck(t, checker, `{"url":"shop.example.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp CheckResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Status != "success" {
		t.Errorf("status = %q", resp.Status)
	}
	if resp.URL != "https://shop.example.com" {
		t.Errorf("url = %q", resp.URL)
	}
	if resp.Domain != "example.com" {
		t.Errorf("domain = %q", resp.Domain)
	}
	if resp.TrustIndex != 100 {
		t.Errorf("trust index = %d, want 100", resp.TrustIndex)
	}
	if resp.TrustStatus != "High Trust" || resp.TrustClass != "success" {
		t.Errorf("trust status/class = %q/%q", resp.TrustStatus, resp.TrustClass)
	}
	if resp.HTTPSClass != "success" || resp.BlacklistClass != "success" || resp.ProximityClass != "success" {
		t.Errorf("signal classes = %q/%q/%q", resp.HTTPSClass, resp.BlacklistClass, resp.ProximityClass)
	}
	if resp.AssessmentID == "" {
		t.Error("missing assessment id")
	}
	if len(resp.TrustReasons) != 2 {
		t.Errorf("reasons = %q", resp.TrustReasons)
	}
}

func TestCheckHandlerAiFailureAborts(t *testing.T) {
	checker := newTestChecker(stubAnalyzer{err: fmt.Errorf("service unreachable")})

	rec := postCheck(t, checker, `{"url":"example.com"}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestCheckHandlerFetchFailure(t *testing.T) {
	checker := newTestChecker(stubAnalyzer{text: "ok"})
	checker.Content = func(ctx context.Context, url string) (ContentSample, error) {
		return ContentSample{}, fmt.Errorf("connection refused")
	}

	rec := postCheck(t, checker, `{"url":"example.com"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCheckHandlerBadRequests(t *testing.T) {
	checker := newTestChecker(stubAnalyzer{text: "ok"})

	rec := postCheck(t, checker, `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing url: status = %d, want 400", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/check", nil)
	rr := httptest.NewRecorder()
	checker.CheckHandler(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET: status = %d, want 405", rr.Code)
	}
}
