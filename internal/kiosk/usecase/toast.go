package usecase

import (
	"github.com/google/uuid"

	"github.com/labstock/kiosk-service/internal/model"
)

// pushToastLocked appends a notification and schedules its auto-dismissal.
// The timer removes by id, so it is a no-op if the toast list was already
// cleared or the toast dismissed some other way.
func (uc *kioskUseCase) pushToastLocked(message string, level model.ToastLevel) {
	toast := model.Toast{
		ID:      uuid.New().String(),
		Message: message,
		Level:   level,
	}
	uc.toasts = append(uc.toasts, toast)

	uc.after(uc.cfg.ToastTTL, func() {
		uc.mu.Lock()
		defer uc.mu.Unlock()
		uc.removeToastLocked(toast.ID)
	})
}

func (uc *kioskUseCase) removeToastLocked(id string) {
	for i, t := range uc.toasts {
		if t.ID == id {
			uc.toasts = append(uc.toasts[:i], uc.toasts[i+1:]...)
			return
		}
	}
}
