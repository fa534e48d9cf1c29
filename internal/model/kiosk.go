package model

// User is the authenticated kiosk operator, created on a successful badge
// authentication and discarded on logout or session rollback.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	LabID string `json:"lab_id"`
}

type StockLevel string

const (
	StockNormal   StockLevel = "normal"
	StockCritical StockLevel = "critical"
)

// CatalogItem is one lab supply as shown on the kiosk. Quantity is the
// client-side withdrawal cart amount (0..MaxStock) and is distinct from the
// authoritative stock count the backend reported as MaxStock.
type CatalogItem struct {
	ID       int        `json:"id"`
	Name     string     `json:"name"`
	Code     string     `json:"code"`
	MaxStock int        `json:"max_stock"`
	Stock    StockLevel `json:"stock"`
	ImageURL string     `json:"image_url"`
	Quantity int        `json:"quantity"`
}

// InCart reports whether the item contributes to the cart.
func (i CatalogItem) InCart() bool {
	return i.Quantity > 0
}

// WithdrawalItem is one per-item tuple of a withdrawal request, built
// immutably from the cart snapshot at submission time.
type WithdrawalItem struct {
	ID           int    `json:"id"`
	TakeQuantity int    `json:"takeQuantity"`
	LabID        string `json:"labId"`
}

// Receipt is the backend acknowledgement of a submitted withdrawal.
type Receipt struct {
	Message string `json:"message"`
}

// Screen enumerates the mutually-exclusive kiosk views. Exactly one is
// active at a time; transitions are a total function of screen + event.
type Screen string

const (
	ScreenWelcome      Screen = "welcome"
	ScreenAuthenticate Screen = "authenticate"
	ScreenCatalog      Screen = "catalog"
	ScreenReview       Screen = "review"
	ScreenSuccess      Screen = "success"
	ScreenIdleReturn   Screen = "idle_return"
)

type ToastLevel string

const (
	ToastInfo    ToastLevel = "info"
	ToastSuccess ToastLevel = "success"
	ToastError   ToastLevel = "error"
)

// Toast is a transient notification shown by the presentation layer until
// its auto-dismiss timer fires.
type Toast struct {
	ID      string     `json:"id"`
	Message string     `json:"message"`
	Level   ToastLevel `json:"level"`
}
