package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/labstock/kiosk-service/internal/kiosk"
	"github.com/labstock/kiosk-service/internal/scanner"
)

// KioskHandler is the presentation-layer boundary. The kiosk view polls the
// state snapshot and posts intents; it carries no business rules of its own.
type KioskHandler struct {
	uc     kiosk.UseCase
	interp *scanner.Interpreter
	logger *zap.Logger
}

func NewKioskHandler(uc kiosk.UseCase, interp *scanner.Interpreter, logger *zap.Logger) *KioskHandler {
	return &KioskHandler{
		uc:     uc,
		interp: interp,
		logger: logger,
	}
}

func NewRouter(h *KioskHandler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	r.HandleFunc("/v1/state", h.GetState).Methods("GET")
	r.HandleFunc("/v1/keys", h.PostKey).Methods("POST")

	r.HandleFunc("/v1/intents/start", h.intent(func(r *http.Request) { h.uc.Start() })).Methods("POST")
	r.HandleFunc("/v1/intents/logout", h.intent(func(r *http.Request) { h.uc.Logout() })).Methods("POST")
	r.HandleFunc("/v1/intents/exit", h.intent(func(r *http.Request) { h.uc.Exit() })).Methods("POST")
	r.HandleFunc("/v1/intents/review", h.intent(func(r *http.Request) { h.uc.RequestReview() })).Methods("POST")
	r.HandleFunc("/v1/intents/cancel-review", h.intent(func(r *http.Request) { h.uc.CancelReview() })).Methods("POST")
	r.HandleFunc("/v1/intents/confirm", h.intent(func(r *http.Request) {
		h.uc.ConfirmWithdrawal(r.Context())
	})).Methods("POST")
	r.HandleFunc("/v1/intents/quantity", h.PostQuantity).Methods("POST")
	r.HandleFunc("/v1/intents/search", h.PostSearch).Methods("POST")
	r.HandleFunc("/v1/intents/item-detail/open", h.PostOpenItemDetail).Methods("POST")
	r.HandleFunc("/v1/intents/item-detail/close", h.intent(func(r *http.Request) { h.uc.CloseItemDetail() })).Methods("POST")
	r.HandleFunc("/v1/intents/simulate-login", h.PostSimulateLogin).Methods("POST")

	return r
}

func (h *KioskHandler) GetState(w http.ResponseWriter, r *http.Request) {
	h.respondSnapshot(w)
}

type keyRequest struct {
	Key string `json:"key"`
}

// PostKey feeds one raw keystroke to the scan interpreter. The view forwards
// every keydown except those landing in a focused text input.
func (h *KioskHandler) PostKey(w http.ResponseWriter, r *http.Request) {
	var req keyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Key == "" {
		http.Error(w, "invalid key payload", http.StatusBadRequest)
		return
	}
	h.interp.Key(req.Key)
	h.respondSnapshot(w)
}

type quantityRequest struct {
	ItemID int `json:"itemId"`
	Delta  int `json:"delta"`
}

func (h *KioskHandler) PostQuantity(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid quantity payload", http.StatusBadRequest)
		return
	}
	h.uc.ChangeQuantity(req.ItemID, req.Delta)
	h.respondSnapshot(w)
}

type searchRequest struct {
	Text string `json:"text"`
}

func (h *KioskHandler) PostSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid search payload", http.StatusBadRequest)
		return
	}
	h.uc.SetSearchFilter(req.Text)
	h.respondSnapshot(w)
}

type itemDetailRequest struct {
	ItemID int `json:"itemId"`
}

func (h *KioskHandler) PostOpenItemDetail(w http.ResponseWriter, r *http.Request) {
	var req itemDetailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid item detail payload", http.StatusBadRequest)
		return
	}
	h.uc.OpenItemDetail(req.ItemID)
	h.respondSnapshot(w)
}

type simulateLoginRequest struct {
	BadgeCode string `json:"badgeCode"`
}

// PostSimulateLogin is a development shortcut that pushes a badge code down
// the same path a completed scan takes. The kiosk must be on the
// authenticate screen, exactly as with a real scan.
func (h *KioskHandler) PostSimulateLogin(w http.ResponseWriter, r *http.Request) {
	var req simulateLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.BadgeCode == "" {
		http.Error(w, "invalid simulate-login payload", http.StatusBadRequest)
		return
	}
	h.uc.HandleScan(r.Context(), req.BadgeCode)
	h.respondSnapshot(w)
}

func (h *KioskHandler) intent(apply func(r *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apply(r)
		h.respondSnapshot(w)
	}
}

func (h *KioskHandler) respondSnapshot(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.uc.Snapshot()); err != nil {
		h.logger.Error("failed to encode snapshot", zap.Error(err))
	}
}
