package trust

import (
	"math/rand"
	"sync"
)

// BlacklistOracle supplies the blacklist-membership signal for a domain.
type BlacklistOracle interface {
	BlacklistStatus(domain string) BlacklistStatus
}

// ProximityOracle supplies the proximity-to-known-threats signal.
type ProximityOracle interface {
	ProximityScore(domain string) ProximityScore
}

// SimulatedReputation stands in for real threat-intelligence feeds
// (Google Safe Browsing, PhishTank and the like). The engine's contract does
// not assume any distribution, it only consumes the produced status and
// score. A production deployment replaces this with real API clients.
type SimulatedReputation struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulatedReputation returns a simulator drawing from src.
func NewSimulatedReputation(src rand.Source) *SimulatedReputation {
	return &SimulatedReputation{rng: rand.New(src)}
}

// BlacklistStatus simulates a multi-engine blacklist lookup: 5% chance of a
// multi-engine detection, 10% of suspicious activity, clean otherwise.
func (s *SimulatedReputation) BlacklistStatus(domain string) BlacklistStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rng.Float64() < 0.05 {
		return BlacklistStatus{State: BlacklistDetected, Message: "Detected by multiple engines"}
	}
	if s.rng.Float64() < 0.1 {
		return BlacklistStatus{State: BlacklistSuspicious, Message: "Suspicious activity detected"}
	}
	return BlacklistStatus{State: BlacklistClean, Message: "Not detected by any blacklist engine"}
}

// ProximityScore simulates a threat-proximity lookup with a uniform 0-100
// draw.
func (s *SimulatedReputation) ProximityScore(domain string) ProximityScore {
	s.mu.Lock()
	defer s.mu.Unlock()

	return ProximityScore{Score: s.rng.Intn(101)}
}

// BlacklistClass maps a blacklist state to its display class.
func BlacklistClass(state BlacklistState) string {
	switch state {
	case BlacklistDetected:
		return "danger"
	case BlacklistSuspicious:
		return "warning"
	default:
		return "success"
	}
}

// ProximityClass maps a proximity score to its display class.
func ProximityClass(score int) string {
	switch {
	case score > 70:
		return "danger"
	case score > 40:
		return "warning"
	default:
		return "success"
	}
}
