package classify

import "math"

// ViralityScore weights engagement into a single unbounded score:
// likes count once, comments three times, views one hundredth.
// Negative counters are treated as missing.
func ViralityScore(likes, comments, views int) int {
	if likes < 0 {
		likes = 0
	}
	if comments < 0 {
		comments = 0
	}
	if views < 0 {
		views = 0
	}

	score := int(math.Round(float64(likes) + 3*float64(comments) + 0.01*float64(views)))
	if score < 0 {
		return 0
	}
	return score
}

// HeatScore remaps virality into [0,100] over five linear segments. Each
// segment rounds independently; 1,000,000 and above pins to 100.
func HeatScore(virality int) int {
	v := float64(virality)
	switch {
	case virality <= 0:
		return 0
	case virality < 1_000:
		return roundInt(v / 1_000 * 20)
	case virality < 10_000:
		return roundInt(20 + (v-1_000)/9_000*20)
	case virality < 100_000:
		return roundInt(40 + (v-10_000)/90_000*20)
	case virality < 500_000:
		return roundInt(60 + (v-100_000)/400_000*20)
	case virality < 1_000_000:
		return roundInt(80 + (v-500_000)/500_000*20)
	default:
		return 100
	}
}

func roundInt(f float64) int {
	n := int(math.Round(f))
	if n > 100 {
		return 100
	}
	if n < 0 {
		return 0
	}
	return n
}
