package trust

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/jaytaylor/html2text"
)

const fetchUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// NewContentSample builds the bounded content signal, keeping at most
// MaxContentTokens whitespace-delimited tokens.
func NewContentSample(text string) ContentSample {
	tokens := strings.Fields(text)
	if len(tokens) > MaxContentTokens {
		tokens = tokens[:MaxContentTokens]
	}
	return ContentSample{Text: strings.Join(tokens, " ")}
}

// Preview returns the first n characters of the sample, with an ellipsis
// when truncated. Used for display only.
func (c ContentSample) Preview(n int) string {
	if len(c.Text) <= n {
		return c.Text
	}
	return c.Text[:n] + "..."
}

// FetchContent downloads the page and strips its markup down to visible
// text. Plain HTTP handles most pages; when it yields nothing and chromedp
// is not disabled, a headless browser renders script-driven pages as a
// fallback, the same two-step approach used for other page inspections.
func FetchContent(ctx context.Context, url string) (ContentSample, error) {
	text, err := fetchWithHTTP(ctx, url)
	if err == nil && strings.TrimSpace(text) != "" {
		return NewContentSample(text), nil
	}
	if err != nil {
		log.Printf("[CONTENT] HTTP fetch failed for %s: %v", url, err)
	}

	if os.Getenv("SKIP_CHROMEDP") == "true" {
		if err != nil {
			return ContentSample{}, err
		}
		return NewContentSample(text), nil
	}

	log.Printf("[CONTENT] Falling back to chromedp for %s", url)
	rendered, cerr := fetchWithChromedp(ctx, url)
	if cerr != nil {
		if err != nil {
			return ContentSample{}, fmt.Errorf("fetch %s: %w", url, err)
		}
		return ContentSample{}, fmt.Errorf("render %s: %w", url, cerr)
	}
	return NewContentSample(rendered), nil
}

func fetchWithHTTP(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", fetchUserAgent)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", err
	}

	return html2text.FromString(string(body), html2text.Options{TextOnly: true})
}

func fetchWithChromedp(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.UserAgent(fetchUserAgent),
	)
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	var htmlContent string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(2*time.Second), // let JS populate the page
		chromedp.OuterHTML("html", &htmlContent),
	)
	if err != nil {
		return "", err
	}

	return html2text.FromString(htmlContent, html2text.Options{TextOnly: true})
}
