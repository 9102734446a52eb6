package trust

import (
	"fmt"
	"math"
	"strings"
)

// Each calculator is a pure function from one signal to a penalty (or bonus)
// plus a reason string. The second return value reports whether the
// calculator fired at all; a silent "no contribution" is valid, never a
// failure.

func domainAgePenalty(age DomainAge, p ScoringPolicy) (PenaltyContribution, bool) {
	if !age.Known {
		// Age unknown is not the same as brand-new; no evidence, no penalty.
		return PenaltyContribution{}, false
	}
	if age.Days >= p.NewDomainDays {
		return PenaltyContribution{}, false
	}
	penalty := math.Min(p.DomainAgeCap, float64(p.NewDomainDays-age.Days)/p.DomainAgeDivisor)
	return PenaltyContribution{
		Points: penalty,
		Reason: fmt.Sprintf("New domain (%d days old): -%.1f%% trust", age.Days, penalty),
	}, true
}

func scamWordPenalty(content ContentSample, p ScoringPolicy) (PenaltyContribution, bool) {
	count := p.ScamWords.Count(content.Text)
	if count == 0 {
		return PenaltyContribution{}, false
	}
	penalty := math.Min(p.ScamWordCap, float64(count)*p.ScamWordWeight)
	return PenaltyContribution{
		Points: penalty,
		Reason: fmt.Sprintf("Suspicious keywords detected: -%.1f%% trust", penalty),
	}, true
}

func aiAnalysisPenalty(analysis AiAnalysis, p ScoringPolicy) (PenaltyContribution, bool) {
	negative := float64(p.NegativePhrases.Count(analysis.Text)) * p.PhraseWeight
	positive := float64(p.PositivePhrases.Count(analysis.Text)) * p.PhraseWeight

	penalty := math.Min(p.AiPenaltyCap, math.Max(0, negative-positive))
	if penalty <= 0 {
		return PenaltyContribution{}, false
	}
	return PenaltyContribution{
		Points: penalty,
		Reason: fmt.Sprintf("AI detected red flags: -%.1f%% trust", penalty),
	}, true
}

// transportPenalty always fires, one of the two branches applies. The typed
// state decides the branch: a naive substring test on the message would also
// match "valid" inside "Invalid or Expired Certificate".
func transportPenalty(status TransportStatus, p ScoringPolicy) (PenaltyContribution, bool) {
	if status.State == TransportValid {
		return PenaltyContribution{
			Points: -p.ValidHTTPSBonus,
			Reason: fmt.Sprintf("Valid HTTPS: +%.0f%% trust", p.ValidHTTPSBonus),
		}, true
	}
	return PenaltyContribution{
		Points: p.InvalidHTTPSPenalty,
		Reason: fmt.Sprintf("Invalid HTTPS: -%.0f%% trust", p.InvalidHTTPSPenalty),
	}, true
}

// blacklistPenalty fires on a suspicious or detected status. The branch is
// decided by the typed state ("Not detected by any blacklist engine" also
// contains "detected" as a substring); the message still decides the
// multi-engine escalation.
func blacklistPenalty(status BlacklistStatus, p ScoringPolicy) (PenaltyContribution, bool) {
	if status.State != BlacklistDetected && status.State != BlacklistSuspicious {
		return PenaltyContribution{}, false
	}
	penalty := p.BlacklistPenalty
	if strings.Contains(strings.ToLower(status.Message), "multiple") {
		penalty = p.BlacklistMultiplePenalty
	}
	return PenaltyContribution{
		Points: penalty,
		Reason: fmt.Sprintf("Blacklist status: -%.0f%% trust", penalty),
	}, true
}

// proximityPenalty is the one calculator with no threshold gate.
func proximityPenalty(proximity ProximityScore, p ScoringPolicy) (PenaltyContribution, bool) {
	penalty := float64(proximity.Score) * p.ProximityWeight
	return PenaltyContribution{
		Points: penalty,
		Reason: fmt.Sprintf("Proximity to suspicious sites: -%.1f%% trust", penalty),
	}, true
}
