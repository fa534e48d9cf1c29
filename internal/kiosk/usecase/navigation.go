package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/labstock/kiosk-service/internal/model"
)

// Start moves the kiosk to the authenticate screen. It is only meaningful
// from the welcome and idle-return screens; anywhere else it is a no-op so
// transitions stay total and deterministic.
func (uc *kioskUseCase) Start() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.screen != model.ScreenWelcome && uc.screen != model.ScreenIdleReturn {
		return
	}
	uc.screen = model.ScreenAuthenticate
}

// Logout ends the session and returns to the authenticate screen.
func (uc *kioskUseCase) Logout() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.resetLocked()
	uc.screen = model.ScreenAuthenticate
	uc.logger.Info("session ended (logout)")
}

// Exit ends the session and returns to the welcome screen.
func (uc *kioskUseCase) Exit() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.resetLocked()
	uc.screen = model.ScreenWelcome
	uc.logger.Info("session ended (exit)")
}

// RequestReview enters the review screen, permitted only from the catalog
// screen with a non-empty cart.
func (uc *kioskUseCase) RequestReview() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.screen != model.ScreenCatalog {
		return
	}
	if uc.summaryLocked().UniqueItems == 0 {
		return
	}
	uc.screen = model.ScreenReview
}

func (uc *kioskUseCase) CancelReview() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.screen != model.ScreenReview {
		return
	}
	uc.screen = model.ScreenCatalog
}

// ConfirmWithdrawal submits the cart. The in-flight flag guards against a
// double tap firing two submissions; on failure the cart is left untouched
// so the user can retry.
func (uc *kioskUseCase) ConfirmWithdrawal(ctx context.Context) {
	uc.mu.Lock()
	if uc.screen != model.ScreenReview || uc.submitInFlight {
		uc.mu.Unlock()
		return
	}
	cart := uc.cartLocked()
	if len(cart) == 0 {
		uc.pushToastLocked("No items selected for withdrawal.", model.ToastInfo)
		uc.mu.Unlock()
		return
	}
	user := uc.user
	epoch := uc.epoch
	uc.submitInFlight = true
	uc.mu.Unlock()

	request := make([]model.WithdrawalItem, 0, len(cart))
	for _, item := range cart {
		request = append(request, model.WithdrawalItem{
			ID:           item.ID,
			TakeQuantity: item.Quantity,
			LabID:        user.LabID,
		})
	}

	receipt, err := uc.gw.SubmitWithdrawal(ctx, request)

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.epoch != epoch {
		return
	}
	uc.submitInFlight = false
	if err != nil {
		uc.logger.Warn("withdrawal submission failed", zap.Error(err))
		uc.pushToastLocked(err.Error(), model.ToastError)
		return
	}

	uc.logger.Info("withdrawal confirmed",
		zap.Int("unique_items", len(cart)),
		zap.String("receipt", receipt.Message),
	)
	uc.pushToastLocked("Withdrawal confirmed successfully!", model.ToastSuccess)

	// The success screen renders from this snapshot, not the live cart.
	uc.lastWithdrawal = cart
	uc.screen = model.ScreenSuccess
	for i := range uc.items {
		uc.items[i].Quantity = 0
	}

	uc.after(uc.cfg.SuccessDelay, func() { uc.autoReturn(epoch) })
}

// autoReturn leaves the success screen after its dwell time. Stale timers
// (logout or another transition happened first) do nothing.
func (uc *kioskUseCase) autoReturn(epoch uint64) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.epoch != epoch || uc.screen != model.ScreenSuccess {
		return
	}
	uc.screen = model.ScreenIdleReturn
}
