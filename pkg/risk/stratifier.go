package risk

// UI-facing risk tiers shown on the clinician dashboard.
const (
	TierHigh         = "High"
	TierModerateHigh = "Moderate-High"
	TierModerate     = "Moderate"
	TierLowModerate  = "Low-Moderate"
	TierLow          = "Low"
)

// Persistence-facing risk levels used by the records backend.
const (
	LevelLow    = "low"
	LevelMedium = "medium"
	LevelHigh   = "high"
)

// Bands are the confidence thresholds separating risk tiers. Boundaries are
// strict: a confidence exactly on a threshold falls into the lower band.
type Bands struct {
	High     float64
	Moderate float64
}

func DefaultBands() Bands {
	return Bands{High: 0.8, Moderate: 0.6}
}

// Stratifier maps a classifier outcome onto the two parallel risk
// vocabularies. Both tiers come out of the same rule so they can never
// disagree in direction: High always pairs with "high", Low with "low" and
// every middle tier with "medium".
type Stratifier struct {
	bands Bands
}

func NewStratifier(bands Bands) *Stratifier {
	if bands.High <= 0 || bands.Moderate <= 0 || bands.High <= bands.Moderate {
		bands = DefaultBands()
	}
	return &Stratifier{bands: bands}
}

// Stratify evaluates the winning-class confidence against the configured
// bands and returns (uiTier, persistLevel).
func (s *Stratifier) Stratify(label int, confidence float64) (string, string) {
	if label == 1 {
		switch {
		case confidence > s.bands.High:
			return TierHigh, LevelHigh
		case confidence > s.bands.Moderate:
			return TierModerateHigh, LevelMedium
		default:
			return TierModerate, LevelMedium
		}
	}

	switch {
	case confidence > s.bands.High:
		return TierLow, LevelLow
	case confidence > s.bands.Moderate:
		return TierLowModerate, LevelMedium
	default:
		return TierModerate, LevelMedium
	}
}
