package usecase

import (
	"github.com/labstock/kiosk-service/internal/kiosk/dto"
	"github.com/labstock/kiosk-service/internal/model"
)

// ChangeQuantity is the single mutation path for cart quantities. Every UI
// affordance (card button, review controls, modal controls) routes through
// it, so the 0..MaxStock bound is enforced exactly once. Out-of-bounds
// results are rejected whole with no partial application.
func (uc *kioskUseCase) ChangeQuantity(itemID, delta int) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	for i := range uc.items {
		if uc.items[i].ID != itemID {
			continue
		}
		newQuantity := uc.items[i].Quantity + delta
		if newQuantity < 0 || newQuantity > uc.items[i].MaxStock {
			return
		}
		uc.items[i].Quantity = newQuantity
		return
	}
}

func (uc *kioskUseCase) SetSearchFilter(text string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.searchFilter = text
}

func (uc *kioskUseCase) OpenItemDetail(itemID int) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for _, item := range uc.items {
		if item.ID == itemID {
			id := itemID
			uc.openItemID = &id
			return
		}
	}
}

func (uc *kioskUseCase) CloseItemDetail() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.openItemID = nil
}

// cartLocked copies the items currently in the cart.
func (uc *kioskUseCase) cartLocked() []model.CatalogItem {
	cart := make([]model.CatalogItem, 0)
	for _, item := range uc.items {
		if item.InCart() {
			cart = append(cart, item)
		}
	}
	return cart
}

func (uc *kioskUseCase) summaryLocked() dto.CartSummary {
	var summary dto.CartSummary
	for _, item := range uc.items {
		if item.InCart() {
			summary.UniqueItems++
			summary.TotalUnits += item.Quantity
		}
	}
	return summary
}
