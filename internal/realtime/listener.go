package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/labstock/kiosk-service/config"
	gatewaydto "github.com/labstock/kiosk-service/internal/gateway/dto"
	"github.com/labstock/kiosk-service/internal/kiosk"
	"github.com/labstock/kiosk-service/internal/kiosk/dto"
	"github.com/labstock/kiosk-service/internal/model"
)

const statusSuccess = "SUCCESS"

// scanEvent is the push payload on the scan topic. A backend-mediated badge
// reader publishes here as the out-of-band alternative to the wedge-scanner
// keystroke path.
type scanEvent struct {
	Status  string              `json:"status"`
	Data    *gatewaydto.UserDTO `json:"data"`
	Message string              `json:"message"`
}

// ScanListener subscribes to the scan topic and forwards normalized
// authentication events into the kiosk core. Dropped connections are retried
// by the MQTT client itself with a capped interval.
type ScanListener struct {
	cfg    config.MQTTConfig
	uc     kiosk.UseCase
	logger *zap.Logger
	client mqtt.Client
}

func NewScanListener(cfg config.MQTTConfig, uc kiosk.UseCase, logger *zap.Logger) *ScanListener {
	return &ScanListener{
		cfg:    cfg,
		uc:     uc,
		logger: logger,
	}
}

// Start connects to the broker and subscribes. The subscription is
// re-established from OnConnect so it survives reconnections.
func (l *ScanListener) Start(ctx context.Context) error {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s", l.cfg.Broker))
	opts.SetClientID(fmt.Sprintf("%s-%s", l.cfg.ClientID, uuid.New().String()[:8]))
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(2 * time.Second)
	opts.SetMaxReconnectInterval(30 * time.Second)

	opts.OnConnect = func(c mqtt.Client) {
		l.logger.Info("mqtt connection established",
			zap.String("broker", l.cfg.Broker),
			zap.String("topic", l.cfg.Topic),
		)
		token := c.Subscribe(l.cfg.Topic, 1, func(_ mqtt.Client, msg mqtt.Message) {
			l.processMessage(ctx, msg.Payload())
		})
		if token.Wait() && token.Error() != nil {
			l.logger.Error("mqtt subscribe failed", zap.Error(token.Error()))
		}
	}

	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		l.logger.Warn("mqtt connection lost, will auto-reconnect", zap.Error(err))
	}

	l.client = mqtt.NewClient(opts)
	token := l.client.Connect()
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt connect: %w", token.Error())
	}
	return nil
}

func (l *ScanListener) Close() {
	if l.client != nil {
		l.client.Disconnect(250)
	}
}

func (l *ScanListener) processMessage(ctx context.Context, payload []byte) {
	var event scanEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		l.logger.Error("failed to unmarshal scan event", zap.Error(err))
		return
	}

	if event.Status == statusSuccess && event.Data != nil {
		l.logger.Info("badge scan pushed over realtime channel",
			zap.String("user", event.Data.Name))
		l.uc.HandleAuthEvent(ctx, dto.AuthEvent{
			Success: true,
			User: &model.User{
				ID:    event.Data.ID.String(),
				Name:  event.Data.Name,
				LabID: event.Data.LabID(),
			},
		})
		return
	}

	l.uc.HandleAuthEvent(ctx, dto.AuthEvent{
		Success: false,
		Message: event.Message,
	})
}
