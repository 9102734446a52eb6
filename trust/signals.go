package trust

import "fmt"

// DomainAge is the registration-age signal. Known distinguishes a domain
// registered today (Days=0, Known=true) from a WHOIS lookup that produced
// no usable creation date (Known=false).
type DomainAge struct {
	Days  int  `json:"days"`
	Known bool `json:"known"`
}

// ContentSample holds the visible text of the page, capped at
// MaxContentTokens whitespace-delimited tokens. Build one with
// NewContentSample so the cap is always applied.
type ContentSample struct {
	Text string `json:"text"`
}

// AiAnalysis is the free-form risk assessment returned by the
// text-generation service. The engine treats it as opaque text.
type AiAnalysis struct {
	Text string `json:"text"`
}

type TransportState string

const (
	TransportValid   TransportState = "valid"
	TransportInvalid TransportState = "invalid"
	TransportError   TransportState = "error"
)

// TransportStatus describes the HTTPS/TLS check result. The calculators key
// off the message text, the state is used for presentation classes.
type TransportStatus struct {
	State   TransportState `json:"state"`
	Message string         `json:"message"`
}

type BlacklistState string

const (
	BlacklistClean      BlacklistState = "clean"
	BlacklistSuspicious BlacklistState = "suspicious"
	BlacklistDetected   BlacklistState = "detected"
)

type BlacklistStatus struct {
	State   BlacklistState `json:"state"`
	Message string         `json:"message"`
}

// ProximityScore is 0-100, higher means closer to known-malicious sites.
type ProximityScore struct {
	Score int `json:"score"`
}

// Signals bundles the six independent inputs of one assessment.
type Signals struct {
	DomainAge DomainAge
	Content   ContentSample
	Analysis  AiAnalysis
	Transport TransportStatus
	Blacklist BlacklistStatus
	Proximity ProximityScore
}

// Validate reports a contract violation by the collaborator that produced a
// signal. The engine performs no sanitization on top of this.
func (s Signals) Validate() error {
	if s.DomainAge.Days < 0 {
		return &InvalidSignalError{Signal: "domain_age", Detail: fmt.Sprintf("negative age %d", s.DomainAge.Days)}
	}
	if s.Proximity.Score < 0 || s.Proximity.Score > 100 {
		return &InvalidSignalError{Signal: "proximity", Detail: fmt.Sprintf("score %d out of range 0-100", s.Proximity.Score)}
	}
	return nil
}

// InvalidSignalError signals malformed input. It propagates immediately,
// there is no partial assessment.
type InvalidSignalError struct {
	Signal string
	Detail string
}

func (e *InvalidSignalError) Error() string {
	return fmt.Sprintf("invalid %s signal: %s", e.Signal, e.Detail)
}

// PenaltyContribution is one calculator's adjustment to the running trust
// total. Negative points are a bonus.
type PenaltyContribution struct {
	Points float64 `json:"points"`
	Reason string  `json:"reason"`
}

type TrustLevel string

const (
	LevelHigh   TrustLevel = "high"
	LevelMedium TrustLevel = "medium"
	LevelLow    TrustLevel = "low"
)

// StatusLabel returns the display label used by the UI.
func (l TrustLevel) StatusLabel() string {
	switch l {
	case LevelHigh:
		return "High Trust"
	case LevelMedium:
		return "Medium Trust"
	default:
		return "Low Trust"
	}
}

// StatusClass maps a level to its bootstrap-style display class.
func (l TrustLevel) StatusClass() string {
	switch l {
	case LevelHigh:
		return "success"
	case LevelMedium:
		return "warning"
	default:
		return "danger"
	}
}

// TrustAssessment is the engine output: a 0-100 trust index, the derived
// level and one reason per calculator that fired, in evaluation order.
type TrustAssessment struct {
	Score   int        `json:"score"`
	Level   TrustLevel `json:"level"`
	Reasons []string   `json:"reasons"`
}
