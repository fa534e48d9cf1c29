package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/labstock/kiosk-service/config"
	"github.com/labstock/kiosk-service/internal/gateway/dto"
	"github.com/labstock/kiosk-service/internal/model"
)

const placeholderImage = "images/placeholder.png"

// Fallback messages when the backend gives no usable error body.
const (
	msgAuthFallback   = "Badge not recognized or invalid."
	msgFetchFallback  = "Could not load the stock items."
	msgSubmitFallback = "Failed to register the withdrawal."
)

type httpGateway struct {
	baseURL      string
	apiKey       string
	apiKeyHeader string
	client       *http.Client
	logger       *zap.Logger
}

// NewHTTPGateway builds the production Gateway against the cfg backend.
func NewHTTPGateway(cfg config.BackendConfig, logger *zap.Logger) Gateway {
	return &httpGateway{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:       cfg.APIKey,
		apiKeyHeader: cfg.APIKeyHeader,
		client:       &http.Client{Timeout: cfg.Timeout},
		logger:       logger,
	}
}

func (g *httpGateway) Authenticate(ctx context.Context, badgeCode string) (*model.User, error) {
	body, err := g.do(ctx, http.MethodGet, "/users/"+badgeCode, nil, msgAuthFallback, kindAuth)
	if err != nil {
		return nil, err
	}

	var user dto.UserDTO
	if err := json.Unmarshal(body, &user); err != nil {
		g.logger.Error("failed to decode user payload", zap.Error(err))
		return nil, &AuthError{Message: msgAuthFallback}
	}

	return &model.User{
		ID:    user.ID.String(),
		Name:  user.Name,
		LabID: user.LabID(),
	}, nil
}

func (g *httpGateway) FetchCatalog(ctx context.Context, labID string) ([]model.CatalogItem, error) {
	body, err := g.do(ctx, http.MethodGet, "/stock/"+labID, nil, msgFetchFallback, kindFetch)
	if err != nil {
		return nil, err
	}

	var entries []dto.StockItemDTO
	if err := json.Unmarshal(body, &entries); err != nil {
		g.logger.Error("failed to decode stock payload", zap.Error(err))
		return nil, &FetchError{Message: msgFetchFallback}
	}

	items := make([]model.CatalogItem, 0, len(entries))
	for _, e := range entries {
		item := model.CatalogItem{
			ID:       e.ID,
			Name:     e.Name,
			Code:     e.EanCode,
			MaxStock: e.Quantity,
			Stock:    model.StockNormal,
			ImageURL: e.ImageURL,
			Quantity: 0,
		}
		if e.Quantity <= e.MinQuantity {
			item.Stock = model.StockCritical
		}
		if item.ImageURL == "" {
			item.ImageURL = placeholderImage
		}
		items = append(items, item)
	}
	return items, nil
}

func (g *httpGateway) SubmitWithdrawal(ctx context.Context, items []model.WithdrawalItem) (*model.Receipt, error) {
	payload, err := json.Marshal(items)
	if err != nil {
		return nil, &SubmitError{Message: msgSubmitFallback}
	}

	body, err := g.do(ctx, http.MethodPost, "/stock/take", payload, msgSubmitFallback, kindSubmit)
	if err != nil {
		return nil, err
	}

	var receipt dto.ReceiptDTO
	if err := json.Unmarshal(body, &receipt); err != nil {
		// The backend confirmed with a 2xx; a malformed body should not fail
		// the withdrawal on the kiosk side.
		g.logger.Warn("withdrawal confirmed but receipt body malformed", zap.Error(err))
	}
	return &model.Receipt{Message: receipt.Message}, nil
}

type errKind int

const (
	kindAuth errKind = iota
	kindFetch
	kindSubmit
)

func wrapErr(kind errKind, message string) error {
	switch kind {
	case kindAuth:
		return &AuthError{Message: message}
	case kindFetch:
		return &FetchError{Message: message}
	default:
		return &SubmitError{Message: message}
	}
}

// do executes one request and returns the raw response body. Non-2xx
// statuses and transport failures come back as the caller's error kind
// carrying the backend message when one is present.
func (g *httpGateway) do(ctx context.Context, method, path string, payload []byte, fallback string, kind errKind) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reqBody)
	if err != nil {
		return nil, wrapErr(kind, fallback)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if g.apiKey != "" {
		req.Header.Set(g.apiKeyHeader, g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Error("backend unreachable",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, wrapErr(kind, fallback)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapErr(kind, fallback)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := fallback
		var errBody dto.ErrorDTO
		if err := json.Unmarshal(body, &errBody); err == nil && errBody.Message != "" {
			message = errBody.Message
		}
		g.logger.Warn("backend rejected request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", message),
		)
		return nil, wrapErr(kind, message)
	}

	return body, nil
}
