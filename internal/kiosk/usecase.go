package kiosk

import (
	"context"

	"github.com/labstock/kiosk-service/internal/kiosk/dto"
)

// UseCase is the kiosk core: the session store, screen state machine and
// cart engine behind every user intent. The presentation layer only ever
// reads Snapshot and fires intents; it never mutates state directly.
type UseCase interface {
	Snapshot() dto.Snapshot

	// Navigation intents.
	Start()
	Logout()
	Exit()
	RequestReview()
	CancelReview()
	ConfirmWithdrawal(ctx context.Context)

	// Cart and catalog intents.
	ChangeQuantity(itemID, delta int)
	SetSearchFilter(text string)
	OpenItemDetail(itemID int)
	CloseItemDetail()

	// HandleScan routes a completed scan code by the active screen: badge
	// authentication on the authenticate screen, catalog filter on the
	// catalog screen.
	HandleScan(ctx context.Context, code string)

	// HandleAuthEvent consumes a normalized authentication event. The scan
	// path and the realtime channel both end up here, so downstream handling
	// is identical regardless of origin.
	HandleAuthEvent(ctx context.Context, ev dto.AuthEvent)
}
