package trust

import (
	"os"

	"gopkg.in/yaml.v3"
)

// MaxContentTokens caps the content sample handed to the engine and to the
// AI collaborator.
const MaxContentTokens = 2000

// ScoringPolicy holds every weight, cap, vocabulary and threshold used by
// the calculators. Keeping them named here (instead of inlined literals)
// keeps the scoring policy swappable and testable in isolation.
type ScoringPolicy struct {
	// Domain age
	NewDomainDays    int     `yaml:"new_domain_days"`    // Default: 365
	DomainAgeDivisor float64 `yaml:"domain_age_divisor"` // Default: 18.25 (365/20, maps the full gap to the cap)
	DomainAgeCap     float64 `yaml:"domain_age_cap"`     // Default: 20

	// Lexical scam words
	ScamWords      Vocabulary `yaml:"scam_words"`
	ScamWordWeight float64    `yaml:"scam_word_weight"` // Default: 2
	ScamWordCap    float64    `yaml:"scam_word_cap"`    // Default: 15

	// AI analysis phrase scan
	NegativePhrases Vocabulary `yaml:"negative_phrases"`
	PositivePhrases Vocabulary `yaml:"positive_phrases"`
	PhraseWeight    float64    `yaml:"phrase_weight"` // Default: 5
	AiPenaltyCap    float64    `yaml:"ai_penalty_cap"` // Default: 30

	// Transport security
	ValidHTTPSBonus     float64 `yaml:"valid_https_bonus"`     // Default: 5
	InvalidHTTPSPenalty float64 `yaml:"invalid_https_penalty"` // Default: 15

	// Blacklist
	BlacklistPenalty         float64 `yaml:"blacklist_penalty"`          // Default: 15
	BlacklistMultiplePenalty float64 `yaml:"blacklist_multiple_penalty"` // Default: 30

	// Proximity
	ProximityWeight float64 `yaml:"proximity_weight"` // Default: 0.3

	Thresholds ScoringThresholds `yaml:"thresholds"`
}

// ScoringThresholds defines the level bands over the final score.
type ScoringThresholds struct {
	LowTrustMax    int `yaml:"low_trust_max"`    // Default: 40
	MediumTrustMax int `yaml:"medium_trust_max"` // Default: 70
	// High: 71-100
}

// DefaultScoringThresholds returns default thresholds.
func DefaultScoringThresholds() ScoringThresholds {
	return ScoringThresholds{
		LowTrustMax:    40,
		MediumTrustMax: 70,
	}
}

// DefaultScoringPolicy returns the stock policy.
func DefaultScoringPolicy() ScoringPolicy {
	return ScoringPolicy{
		NewDomainDays:    365,
		DomainAgeDivisor: 18.25,
		DomainAgeCap:     20,

		ScamWords: Vocabulary{
			"win", "free", "urgent", "limited", "offer",
			"prize", "congratulations", "lottery", "selected",
		},
		ScamWordWeight: 2,
		ScamWordCap:    15,

		NegativePhrases: Vocabulary{
			"likely scam", "suspicious", "fraudulent",
			"high risk", "be cautious", "phishing",
		},
		PositivePhrases: Vocabulary{
			"likely legitimate", "appears safe", "low risk", "trustworthy",
		},
		PhraseWeight: 5,
		AiPenaltyCap: 30,

		ValidHTTPSBonus:     5,
		InvalidHTTPSPenalty: 15,

		BlacklistPenalty:         15,
		BlacklistMultiplePenalty: 30,

		ProximityWeight: 0.3,

		Thresholds: DefaultScoringThresholds(),
	}
}

// LoadPolicy reads a scoring policy from a YAML file. A missing file is not
// an error, the default policy is returned so the service runs without any
// local configuration.
func LoadPolicy(path string) (ScoringPolicy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultScoringPolicy(), nil
		}
		return ScoringPolicy{}, err
	}

	policy := DefaultScoringPolicy()
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return ScoringPolicy{}, err
	}
	return policy, nil
}
