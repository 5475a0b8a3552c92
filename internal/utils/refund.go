package utils

import "rentloop-backend/internal/domain"

// refundTier holds the day thresholds for a full and a partial refund.
type refundTier struct {
	fullDays    int
	partialDays int
}

var refundTiers = map[domain.CancellationPolicy]refundTier{
	domain.PolicyFlexible: {fullDays: 2, partialDays: 1},
	domain.PolicyMedium:   {fullDays: 7, partialDays: 3},
	domain.PolicyStrict:   {fullDays: 30, partialDays: 14},
}

// RefundPercent maps a cancellation policy and the days remaining until the
// booking starts to a refund percentage. Unknown policies fall back to the
// flexible tier.
func RefundPercent(policy domain.CancellationPolicy, daysUntilStart int) int {
	tier, ok := refundTiers[policy]
	if !ok {
		tier = refundTiers[domain.PolicyFlexible]
	}
	switch {
	case daysUntilStart >= tier.fullDays:
		return 100
	case daysUntilStart >= tier.partialDays:
		return 50
	default:
		return 0
	}
}

// RefundAmount computes the refundable amount for a given total and percent.
// This is advisory only; it does not move money.
func RefundAmount(total float64, percent int) float64 {
	return Round2(total * float64(percent) / 100)
}
