package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/labstock/kiosk-service/config"
	"github.com/labstock/kiosk-service/internal/gateway"
	"github.com/labstock/kiosk-service/internal/kiosk"
	"github.com/labstock/kiosk-service/internal/kiosk/dto"
	"github.com/labstock/kiosk-service/internal/model"
)

// kioskUseCase owns the whole session state behind one mutex, which stands
// in for the original single-threaded event loop: no intent observes a
// half-applied mutation. Network calls run outside the lock; their
// continuations re-acquire it and check the session epoch so a logout or
// reset in between turns them into no-ops.
type kioskUseCase struct {
	gw     gateway.Gateway
	cfg    config.KioskConfig
	logger *zap.Logger

	// after is swappable for tests.
	after func(d time.Duration, f func())

	mu             sync.Mutex
	epoch          uint64
	screen         model.Screen
	user           *model.User
	items          []model.CatalogItem
	loading        bool
	searchFilter   string
	openItemID     *int
	lastWithdrawal []model.CatalogItem
	toasts         []model.Toast
	submitInFlight bool
}

func NewKioskUseCase(cfg config.KioskConfig, gw gateway.Gateway, logger *zap.Logger) kiosk.UseCase {
	return &kioskUseCase{
		gw:     gw,
		cfg:    cfg,
		logger: logger,
		after:  func(d time.Duration, f func()) { time.AfterFunc(d, f) },
		screen: model.ScreenWelcome,
	}
}

func (uc *kioskUseCase) Snapshot() dto.Snapshot {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	filter := strings.ToLower(uc.searchFilter)
	items := make([]model.CatalogItem, 0, len(uc.items))
	for _, item := range uc.items {
		if filter != "" &&
			!strings.Contains(strings.ToLower(item.Name), filter) &&
			!strings.Contains(strings.ToLower(item.Code), filter) {
			continue
		}
		items = append(items, item)
	}

	return dto.Snapshot{
		Screen:         uc.screen,
		User:           uc.user,
		Loading:        uc.loading,
		Items:          items,
		SearchFilter:   uc.searchFilter,
		Cart:           uc.cartLocked(),
		CartSummary:    uc.summaryLocked(),
		LastWithdrawal: append([]model.CatalogItem(nil), uc.lastWithdrawal...),
		OpenItemID:     uc.openItemID,
		Toasts:         append([]model.Toast(nil), uc.toasts...),
		SubmitInFlight: uc.submitInFlight,
	}
}

func (uc *kioskUseCase) HandleScan(ctx context.Context, code string) {
	uc.mu.Lock()
	screen := uc.screen
	uc.mu.Unlock()

	switch screen {
	case model.ScreenAuthenticate:
		uc.authenticate(ctx, code)
	case model.ScreenCatalog:
		uc.mu.Lock()
		uc.searchFilter = code
		uc.pushToastLocked(fmt.Sprintf("Item %s scanned.", code), model.ToastInfo)
		uc.mu.Unlock()
	default:
		uc.logger.Debug("scan ignored on current screen",
			zap.String("screen", string(screen)))
	}
}

func (uc *kioskUseCase) HandleAuthEvent(ctx context.Context, ev dto.AuthEvent) {
	if !ev.Success || ev.User == nil {
		message := ev.Message
		if message == "" {
			message = "Badge not recognized or invalid."
		}
		// A failed authentication only concerns the authenticate screen. A
		// stray failure pushed over the realtime channel mid-session must not
		// yank a live session back to it.
		uc.mu.Lock()
		if uc.screen == model.ScreenWelcome {
			uc.screen = model.ScreenAuthenticate
		}
		uc.pushToastLocked(message, model.ToastError)
		uc.mu.Unlock()
		return
	}
	uc.beginSession(ctx, ev.User)
}

// authenticate runs the badge flow end to end: gateway auth, then session
// start with the catalog fetch. Failures surface as a toast and land the
// kiosk back on the authenticate screen.
func (uc *kioskUseCase) authenticate(ctx context.Context, badgeCode string) {
	uc.mu.Lock()
	uc.pushToastLocked(fmt.Sprintf("Reading badge %s...", badgeCode), model.ToastInfo)
	uc.mu.Unlock()

	user, err := uc.gw.Authenticate(ctx, badgeCode)
	if err != nil {
		uc.logger.Warn("badge authentication failed", zap.Error(err))
		uc.HandleAuthEvent(ctx, dto.AuthEvent{Success: false, Message: err.Error()})
		return
	}

	uc.HandleAuthEvent(ctx, dto.AuthEvent{Success: true, User: user})
}

// beginSession installs the user, enters the catalog screen in loading state
// and fetches the lab's catalog. A fetch failure rolls the session back to
// the authenticate screen with the user cleared. Starting a session is a
// session reset: the epoch bump invalidates any fetch still in flight for a
// superseded authentication, so it cannot overwrite this session's catalog.
func (uc *kioskUseCase) beginSession(ctx context.Context, user *model.User) {
	uc.mu.Lock()
	uc.epoch++
	epoch := uc.epoch
	uc.user = user
	uc.items = nil
	uc.searchFilter = ""
	uc.loading = true
	uc.screen = model.ScreenCatalog
	uc.mu.Unlock()

	uc.logger.Info("session started",
		zap.String("user", user.Name),
		zap.String("lab_id", user.LabID),
	)

	items, err := uc.gw.FetchCatalog(ctx, user.LabID)

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.epoch != epoch {
		// Logged out while the fetch was in flight.
		return
	}
	uc.loading = false
	if err != nil {
		uc.logger.Warn("catalog fetch failed, rolling session back", zap.Error(err))
		uc.user = nil
		uc.items = nil
		uc.screen = model.ScreenAuthenticate
		uc.pushToastLocked(err.Error(), model.ToastError)
		return
	}
	uc.items = items
}

// resetLocked clears the session. Bumping the epoch invalidates every
// in-flight continuation and pending timer.
func (uc *kioskUseCase) resetLocked() {
	uc.epoch++
	uc.user = nil
	uc.items = nil
	uc.loading = false
	uc.searchFilter = ""
	uc.openItemID = nil
	uc.lastWithdrawal = nil
	uc.submitInFlight = false
}
