package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/labstock/kiosk-service/config"
	"github.com/labstock/kiosk-service/internal/kiosk/dto"
	kioskUC "github.com/labstock/kiosk-service/internal/kiosk/usecase"
	"github.com/labstock/kiosk-service/internal/model"
	"github.com/labstock/kiosk-service/internal/scanner"
)

type stubGateway struct {
	user  *model.User
	items []model.CatalogItem
}

func (s *stubGateway) Authenticate(_ context.Context, _ string) (*model.User, error) {
	return s.user, nil
}

func (s *stubGateway) FetchCatalog(_ context.Context, _ string) ([]model.CatalogItem, error) {
	return append([]model.CatalogItem(nil), s.items...), nil
}

func (s *stubGateway) SubmitWithdrawal(_ context.Context, _ []model.WithdrawalItem) (*model.Receipt, error) {
	return &model.Receipt{Message: "ok"}, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	// A generous scan gap keeps the keystroke round trips in
	// TestKeyFeedAuthenticates from tripping the buffer reset on slow CI.
	return newTestServerWithGap(t, 5*time.Second)
}

func newTestServerWithGap(t *testing.T, scanGap time.Duration) *httptest.Server {
	t.Helper()
	gw := &stubGateway{
		user: &model.User{ID: "7", Name: "Ana", LabID: "lab-1"},
		items: []model.CatalogItem{
			{ID: 1, Name: "Sterile Gauze", Code: "C004", MaxStock: 5},
		},
	}
	cfg := config.KioskConfig{
		ScanGap:       scanGap,
		MinScanLength: 2,
		SuccessDelay:  4 * time.Second,
		ToastTTL:      4 * time.Second,
	}
	uc := kioskUC.NewKioskUseCase(cfg, gw, zap.NewNop())
	interp := scanner.New(cfg.ScanGap, cfg.MinScanLength, func(code string) {
		uc.HandleScan(context.Background(), code)
	}, zap.NewNop())

	srv := httptest.NewServer(NewRouter(NewKioskHandler(uc, interp, zap.NewNop())))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path string, body any) dto.Snapshot {
	t.Helper()
	var reqBody bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&reqBody).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	resp, err := http.Post(srv.URL+path, "application/json", &reqBody)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST %s: status %d", path, resp.StatusCode)
	}
	var snap dto.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	return snap
}

func TestStateStartsOnWelcome(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/v1/state")
	if err != nil {
		t.Fatalf("GET /v1/state: %v", err)
	}
	defer resp.Body.Close()

	var snap dto.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.Screen != model.ScreenWelcome {
		t.Errorf("expected welcome screen, got %s", snap.Screen)
	}
}

func TestIntentFlowThroughHTTP(t *testing.T) {
	srv := newTestServer(t)

	snap := post(t, srv, "/v1/intents/start", nil)
	if snap.Screen != model.ScreenAuthenticate {
		t.Fatalf("expected authenticate after start, got %s", snap.Screen)
	}

	snap = post(t, srv, "/v1/intents/simulate-login", map[string]string{"badgeCode": "ABC123"})
	if snap.Screen != model.ScreenCatalog {
		t.Fatalf("expected catalog after login, got %s", snap.Screen)
	}
	if snap.User == nil || snap.User.Name != "Ana" {
		t.Fatalf("expected user installed, got %+v", snap.User)
	}

	snap = post(t, srv, "/v1/intents/quantity", map[string]int{"itemId": 1, "delta": 1})
	if snap.CartSummary.TotalUnits != 1 {
		t.Errorf("expected 1 unit in cart, got %+v", snap.CartSummary)
	}

	snap = post(t, srv, "/v1/intents/quantity", map[string]int{"itemId": 1, "delta": 10})
	if snap.CartSummary.TotalUnits != 1 {
		t.Errorf("out-of-bounds delta must be rejected, got %+v", snap.CartSummary)
	}

	snap = post(t, srv, "/v1/intents/review", nil)
	if snap.Screen != model.ScreenReview {
		t.Fatalf("expected review, got %s", snap.Screen)
	}

	snap = post(t, srv, "/v1/intents/confirm", nil)
	if snap.Screen != model.ScreenSuccess {
		t.Fatalf("expected success, got %s", snap.Screen)
	}
	if len(snap.LastWithdrawal) != 1 || snap.LastWithdrawal[0].Quantity != 1 {
		t.Errorf("success snapshot must carry the withdrawn items, got %+v", snap.LastWithdrawal)
	}

	snap = post(t, srv, "/v1/intents/logout", nil)
	if snap.Screen != model.ScreenAuthenticate || snap.User != nil {
		t.Errorf("logout must clear the session, got %+v", snap)
	}
}

func TestKeyFeedAuthenticates(t *testing.T) {
	srv := newTestServer(t)
	post(t, srv, "/v1/intents/start", nil)

	for _, r := range "ABC123" {
		post(t, srv, "/v1/keys", map[string]string{"key": string(r)})
	}
	snap := post(t, srv, "/v1/keys", map[string]string{"key": "Enter"})

	if snap.Screen != model.ScreenCatalog {
		t.Fatalf("expected wedge-scan burst to authenticate, got %s", snap.Screen)
	}
}

func TestSearchIntent(t *testing.T) {
	srv := newTestServer(t)
	post(t, srv, "/v1/intents/start", nil)
	post(t, srv, "/v1/intents/simulate-login", map[string]string{"badgeCode": "ABC123"})

	snap := post(t, srv, "/v1/intents/search", map[string]string{"text": "gauze"})
	if snap.SearchFilter != "gauze" {
		t.Errorf("expected filter stored, got %q", snap.SearchFilter)
	}
	if len(snap.Items) != 1 {
		t.Errorf("expected matching item visible, got %d", len(snap.Items))
	}
}

func TestBadPayloadRejected(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/v1/keys", "application/json", bytes.NewBufferString("{"))
	if err != nil {
		t.Fatalf("POST /v1/keys: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed payload, got %d", resp.StatusCode)
	}
}
