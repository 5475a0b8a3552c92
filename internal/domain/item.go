package domain

import "time"

type ItemStatus string

const (
	ItemStatusPending  ItemStatus = "pending"
	ItemStatusApproved ItemStatus = "approved"
	ItemStatusRejected ItemStatus = "rejected"
)

type CancellationPolicy string

const (
	PolicyFlexible CancellationPolicy = "flexible"
	PolicyMedium   CancellationPolicy = "medium"
	PolicyStrict   CancellationPolicy = "strict"
)

type Item struct {
	ID          string  `json:"id"`
	OwnerID     string  `json:"owner_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	PricePerDay float64 `json:"price_per_day"`
	// Bundle prices are optional; nil means the bundle is not configured and
	// the per-day rate applies.
	Price3Days         *float64           `json:"price_3_days,omitempty"`
	Price7Days         *float64           `json:"price_7_days,omitempty"`
	CancellationPolicy CancellationPolicy `json:"cancellation_policy"`
	City               string             `json:"city"`
	Neighborhood       string             `json:"neighborhood"`
	Category           string             `json:"category"`
	IsActive           bool               `json:"is_active"`
	Status             ItemStatus         `json:"status"`
	CreatedOn          time.Time          `json:"created_on"`
	UpdatedOn          time.Time          `json:"updated_on"`
}
