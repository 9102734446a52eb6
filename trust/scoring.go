package trust

import "math"

// Assess folds the six signals into one TrustAssessment under the given
// policy. It starts the running total at 100, invokes the calculators in
// fixed order (domain age, lexical, AI analysis, transport, blacklist,
// proximity), subtracts each contribution and collects its reason, then
// clamps to [0,100] and rounds half away from zero.
//
// The function is pure: identical inputs always yield identical output. A
// malformed signal is a contract violation by the collaborator that
// produced it, surfaced as *InvalidSignalError before any computation.
func Assess(sig Signals, p ScoringPolicy) (TrustAssessment, error) {
	if err := sig.Validate(); err != nil {
		return TrustAssessment{}, err
	}

	total := 100.0
	var reasons []string

	apply := func(c PenaltyContribution, fired bool) {
		if !fired {
			return
		}
		total -= c.Points
		reasons = append(reasons, c.Reason)
	}

	apply(domainAgePenalty(sig.DomainAge, p))
	apply(scamWordPenalty(sig.Content, p))
	apply(aiAnalysisPenalty(sig.Analysis, p))
	apply(transportPenalty(sig.Transport, p))
	apply(blacklistPenalty(sig.Blacklist, p))
	apply(proximityPenalty(sig.Proximity, p))

	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}
	score := int(math.Round(total))

	level := LevelLow
	if score > p.Thresholds.MediumTrustMax {
		level = LevelHigh
	} else if score > p.Thresholds.LowTrustMax {
		level = LevelMedium
	}

	return TrustAssessment{
		Score:   score,
		Level:   level,
		Reasons: reasons,
	}, nil
}

// CalculateTrustIndex runs Assess with the default scoring policy.
func CalculateTrustIndex(sig Signals) (TrustAssessment, error) {
	return Assess(sig, DefaultScoringPolicy())
}
