package realtime

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/labstock/kiosk-service/config"
	"github.com/labstock/kiosk-service/internal/kiosk/dto"
)

// recordingCore captures forwarded auth events; every other intent is a no-op.
type recordingCore struct {
	events []dto.AuthEvent
}

func (c *recordingCore) Snapshot() dto.Snapshot              { return dto.Snapshot{} }
func (c *recordingCore) Start()                              {}
func (c *recordingCore) Logout()                             {}
func (c *recordingCore) Exit()                               {}
func (c *recordingCore) RequestReview()                      {}
func (c *recordingCore) CancelReview()                       {}
func (c *recordingCore) ConfirmWithdrawal(_ context.Context) {}
func (c *recordingCore) ChangeQuantity(_, _ int)             {}
func (c *recordingCore) SetSearchFilter(_ string)            {}
func (c *recordingCore) OpenItemDetail(_ int)                {}
func (c *recordingCore) CloseItemDetail()                    {}
func (c *recordingCore) HandleScan(_ context.Context, _ string) {}

func (c *recordingCore) HandleAuthEvent(_ context.Context, ev dto.AuthEvent) {
	c.events = append(c.events, ev)
}

func newTestListener() (*ScanListener, *recordingCore) {
	core := &recordingCore{}
	l := NewScanListener(config.MQTTConfig{Topic: "kiosk/scan-events"}, core, zap.NewNop())
	return l, core
}

func TestSuccessPayloadForwardsUser(t *testing.T) {
	l, core := newTestListener()

	l.processMessage(context.Background(), []byte(`{
		"status": "SUCCESS",
		"data": {"id": 7, "name": "Ana", "lab": {"id": 3}}
	}`))

	if len(core.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(core.events))
	}
	ev := core.events[0]
	if !ev.Success {
		t.Fatalf("expected success event")
	}
	if ev.User == nil || ev.User.Name != "Ana" || ev.User.LabID != "3" {
		t.Errorf("unexpected user: %+v", ev.User)
	}
}

func TestFailurePayloadForwardsMessage(t *testing.T) {
	l, core := newTestListener()

	l.processMessage(context.Background(), []byte(`{"status": "DENIED", "message": "badge revoked"}`))

	if len(core.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(core.events))
	}
	ev := core.events[0]
	if ev.Success {
		t.Fatalf("expected failure event")
	}
	if ev.Message != "badge revoked" {
		t.Errorf("expected message carried through, got %q", ev.Message)
	}
}

func TestSuccessWithoutUserIsFailure(t *testing.T) {
	l, core := newTestListener()

	l.processMessage(context.Background(), []byte(`{"status": "SUCCESS"}`))

	if len(core.events) != 1 || core.events[0].Success {
		t.Fatalf("SUCCESS without user payload must forward a failure event, got %+v", core.events)
	}
}

func TestMalformedPayloadIgnored(t *testing.T) {
	l, core := newTestListener()

	l.processMessage(context.Background(), []byte(`not json`))

	if len(core.events) != 0 {
		t.Fatalf("malformed payload must not forward events, got %+v", core.events)
	}
}
