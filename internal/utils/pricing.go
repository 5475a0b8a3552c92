package utils

import (
	"math"

	"rentloop-backend/internal/domain"
)

// Round2 rounds a monetary value to 2 decimal places. Monetary values are
// decimal currency units, rounded at every computed boundary.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// TotalPrice computes the minimum cost of covering daysRequested days with
// segments of 1, 3 or 7 days. A missing bundle price falls back to the
// per-day rate times the bundle length, so the renter never pays more than
// buying single days. Bundles compose freely (10 days = 7-bundle + 3-bundle);
// the DP picks globally optimal segment sizes regardless of calendar
// alignment.
func TotalPrice(daysRequested int, perDay float64, bundle3, bundle7 *float64) (float64, error) {
	if daysRequested <= 0 {
		return 0, domain.ErrInvalidDuration
	}

	price3 := perDay * 3
	if bundle3 != nil && *bundle3 > 0 {
		price3 = *bundle3
	}
	price7 := perDay * 7
	if bundle7 != nil && *bundle7 > 0 {
		price7 = *bundle7
	}

	dp := make([]float64, daysRequested+1)
	for i := 1; i <= daysRequested; i++ {
		dp[i] = dp[i-1] + perDay
		if i >= 3 && dp[i-3]+price3 < dp[i] {
			dp[i] = dp[i-3] + price3
		}
		if i >= 7 && dp[i-7]+price7 < dp[i] {
			dp[i] = dp[i-7] + price7
		}
	}
	return Round2(dp[daysRequested]), nil
}
