package trust

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/sync/errgroup"
)

// Analyzer produces the natural-language risk assessment for page content.
type Analyzer interface {
	AnalyzeContent(ctx context.Context, content string) (string, error)
}

// Checker wires the six signal collaborators to the scoring engine. Each
// collaborator is invoked once per assessment, results are joined before
// the engine runs.
type Checker struct {
	Policy    ScoringPolicy
	Analyzer  Analyzer
	Blacklist BlacklistOracle
	Proximity ProximityOracle

	DomainAge func(domain string) DomainAgeInfo
	Transport func(domain string) TransportStatus
	Content   func(ctx context.Context, url string) (ContentSample, error)
}

// NewChecker returns a Checker backed by the real collaborators and the
// given analyzer. Blacklist and proximity are simulated, see
// SimulatedReputation.
func NewChecker(policy ScoringPolicy, analyzer Analyzer, reputation *SimulatedReputation) *Checker {
	return &Checker{
		Policy:    policy,
		Analyzer:  analyzer,
		Blacklist: reputation,
		Proximity: reputation,
		DomainAge: WhoisDomainAge,
		Transport: CheckTransport,
		Content:   FetchContent,
	}
}

type CheckRequest struct {
	URL string `json:"url"`
}

type CheckResponse struct {
	AssessmentID string `json:"assessment_id"`
	URL          string `json:"url"`
	Domain       string `json:"domain"`

	DomainCreationDate string `json:"domain_creation_date"`
	DomainAgeDays      int    `json:"domain_age_days"`
	DomainAgeKnown     bool   `json:"domain_age_known"`

	HTTPSStatus string `json:"https_status"`
	HTTPSClass  string `json:"https_class"`

	BlacklistStatus string `json:"blacklist_status"`
	BlacklistClass  string `json:"blacklist_class"`

	ProximityScore int    `json:"proximity_score"`
	ProximityClass string `json:"proximity_class"`

	ContentSample string `json:"content_sample"`
	Analysis      string `json:"analysis"`

	TrustIndex   int      `json:"trust_index"`
	TrustStatus  string   `json:"trust_status"`
	TrustClass   string   `json:"trust_class"`
	TrustReasons []string `json:"trust_reasons"`

	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NormalizeURL defaults the scheme to https and validates the result.
// Returns the full URL and its host.
func NormalizeURL(raw string) (string, string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", fmt.Errorf("URL is required")
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", "", fmt.Errorf("invalid URL format")
	}
	return u.String(), u.Hostname(), nil
}

// RegistrableDomain reduces a hostname to its eTLD+1 for WHOIS and
// reputation lookups; the host itself is kept when the public-suffix list
// cannot split it (bare TLDs, IPs).
func RegistrableDomain(host string) string {
	registrable, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return registrable
}

// CheckHandler implements POST /check: collect the six signals, join, score.
func (c *Checker) CheckHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CheckRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	pageURL, host, err := NormalizeURL(req.URL)
	if err != nil {
		httpError(w, err.Error(), http.StatusBadRequest)
		return
	}
	domain := RegistrableDomain(host)

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	// Content comes first: the AI assessment needs it.
	content, err := c.Content(ctx, pageURL)
	if err != nil {
		httpError(w, fmt.Sprintf("Failed to fetch URL: %v", err), http.StatusBadRequest)
		return
	}

	// The remaining signals are independent, collect them in parallel and
	// join before scoring. Only the AI signal gates the whole assessment:
	// its error aborts via the group, the other collaborators degrade to
	// their own "unknown"/error statuses instead.
	var (
		ageInfo   DomainAgeInfo
		transport TransportStatus
		blacklist BlacklistStatus
		proximity ProximityScore
		analysis  string
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ageInfo = c.DomainAge(domain)
		return nil
	})
	g.Go(func() error {
		transport = c.Transport(host)
		return nil
	})
	g.Go(func() error {
		blacklist = c.Blacklist.BlacklistStatus(domain)
		return nil
	})
	g.Go(func() error {
		proximity = c.Proximity.ProximityScore(domain)
		return nil
	})
	g.Go(func() error {
		text, err := c.Analyzer.AnalyzeContent(gctx, content.Text)
		if err != nil {
			return fmt.Errorf("AI analysis: %w", err)
		}
		analysis = text
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Printf("[CHECK] assessment aborted for %s: %v", domain, err)
		httpError(w, fmt.Sprintf("An error occurred: %v", err), http.StatusBadGateway)
		return
	}

	assessment, err := Assess(Signals{
		DomainAge: ageInfo.Age,
		Content:   content,
		Analysis:  AiAnalysis{Text: analysis},
		Transport: transport,
		Blacklist: blacklist,
		Proximity: proximity,
	}, c.Policy)
	if err != nil {
		httpError(w, fmt.Sprintf("An error occurred: %v", err), http.StatusInternalServerError)
		return
	}

	resp := CheckResponse{
		AssessmentID: uuid.NewString(),
		URL:          pageURL,
		Domain:       domain,

		DomainCreationDate: ageInfo.CreatedOn,
		DomainAgeDays:      ageInfo.Age.Days,
		DomainAgeKnown:     ageInfo.Age.Known,

		HTTPSStatus: transport.Message,
		HTTPSClass:  TransportClass(transport.State),

		BlacklistStatus: blacklist.Message,
		BlacklistClass:  BlacklistClass(blacklist.State),

		ProximityScore: proximity.Score,
		ProximityClass: ProximityClass(proximity.Score),

		ContentSample: content.Preview(500),
		Analysis:      analysis,

		TrustIndex:   assessment.Score,
		TrustStatus:  assessment.Level.StatusLabel(),
		TrustClass:   assessment.Level.StatusClass(),
		TrustReasons: assessment.Reasons,

		Status:    "success",
		Timestamp: time.Now().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)

	log.Printf("[CHECK] completed for %s: score=%d level=%s", domain, assessment.Score, assessment.Level)
}

// TransportClass maps a transport state to its display class.
func TransportClass(state TransportState) string {
	switch state {
	case TransportValid:
		return "success"
	case TransportInvalid:
		return "danger"
	default:
		return "warning"
	}
}

func httpError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
