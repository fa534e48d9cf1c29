package dto

import "github.com/labstock/kiosk-service/internal/model"

// AuthEvent is the tagged outcome of a badge authentication, regardless of
// whether it came from the keystroke path or the realtime channel.
type AuthEvent struct {
	Success bool
	User    *model.User
	Message string
}

// CartSummary aggregates the cart for the review button and the badge.
type CartSummary struct {
	UniqueItems int `json:"unique_items"`
	TotalUnits  int `json:"total_units"`
}

// Snapshot is the full view state handed to the presentation layer. Items is
// already narrowed by the search filter; Cart holds every item with a
// positive quantity independent of the filter.
type Snapshot struct {
	Screen         model.Screen        `json:"screen"`
	User           *model.User         `json:"user,omitempty"`
	Loading        bool                `json:"loading"`
	Items          []model.CatalogItem `json:"items"`
	SearchFilter   string              `json:"search_filter"`
	Cart           []model.CatalogItem `json:"cart"`
	CartSummary    CartSummary         `json:"cart_summary"`
	LastWithdrawal []model.CatalogItem `json:"last_withdrawal"`
	OpenItemID     *int                `json:"open_item_id,omitempty"`
	Toasts         []model.Toast       `json:"toasts"`
	SubmitInFlight bool                `json:"submit_in_flight"`
}
