package analyze

import "math"

// Support/resistance confidence scoring. Scores start at a 0.6 base and
// accumulate additive bonuses for independent confirmations, capped at 0.95.
const (
	levelScoreBase = 0.60
	levelScoreCap  = 0.95

	bonusReversalShape  = 0.15
	bonusVolumeConfirm  = 0.15
	bonusOBVDivergence  = 0.10
	bonusRSIExtreme     = 0.05
	bonusVolumeRSIAlign = 0.05
)

// SupportConfidence scores how trustworthy a bounce off support looks.
func SupportConfidence(in Inputs) float64 {
	score := levelScoreBase

	if n := len(in.Candles); n > 0 {
		last := in.Candles[n-1]
		// Hammer shape: long lower wick against a small body.
		body := last.Close - last.Open
		if body < 0 {
			body = -body
		}
		lowerWick := math.Min(last.Open, last.Close) - last.Low
		if body > 0 && lowerWick > body*2 {
			score += bonusReversalShape
		}
		if n > 1 && last.Volume > in.Candles[n-2].Volume*in.Config.VolumeConfirmationThreshold {
			score += bonusVolumeConfirm
		}
	}

	if in.OBV.Divergence {
		score += bonusOBVDivergence
	}
	if in.RSI < 30 {
		score += bonusRSIExtreme
	}
	if in.VolumeRSI > 60 {
		score += bonusVolumeRSIAlign
	}

	if score > levelScoreCap {
		score = levelScoreCap
	}
	return score
}

// ResistanceConfidence is the bearish mirror of SupportConfidence.
func ResistanceConfidence(in Inputs) float64 {
	score := levelScoreBase

	if n := len(in.Candles); n > 0 {
		last := in.Candles[n-1]
		// Shooting-star shape: long upper wick against a small body.
		body := last.Close - last.Open
		if body < 0 {
			body = -body
		}
		upperWick := last.High - math.Max(last.Open, last.Close)
		if body > 0 && upperWick > body*2 {
			score += bonusReversalShape
		}
		if n > 1 && last.Volume > in.Candles[n-2].Volume*in.Config.VolumeConfirmationThreshold {
			score += bonusVolumeConfirm
		}
	}

	if in.OBV.Divergence {
		score += bonusOBVDivergence
	}
	if in.RSI > 70 {
		score += bonusRSIExtreme
	}
	if in.VolumeRSI < 40 {
		score += bonusVolumeRSIAlign
	}

	if score > levelScoreCap {
		score = levelScoreCap
	}
	return score
}
