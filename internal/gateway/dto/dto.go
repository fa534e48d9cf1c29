package dto

import "encoding/json"

// UserDTO is the backend's user payload. Lab arrives either as a bare
// identifier (string or number) or as an embedded lab object.
type UserDTO struct {
	ID   json.Number     `json:"id"`
	Name string          `json:"name"`
	Lab  json.RawMessage `json:"lab"`
}

type LabDTO struct {
	ID json.Number `json:"id"`
}

// LabID normalizes the lab field to a string identifier.
func (u *UserDTO) LabID() string {
	if len(u.Lab) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(u.Lab, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(u.Lab, &n); err == nil {
		return n.String()
	}
	var lab LabDTO
	if err := json.Unmarshal(u.Lab, &lab); err == nil {
		return lab.ID.String()
	}
	return ""
}

// StockItemDTO is one catalog entry as the backend reports it. EanCode and
// ImageURL are optional.
type StockItemDTO struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	EanCode     string `json:"eanCode"`
	Quantity    int    `json:"quantity"`
	MinQuantity int    `json:"minQuantity"`
	ImageURL    string `json:"imageUrl"`
}

// ErrorDTO is the backend's error envelope.
type ErrorDTO struct {
	Message string `json:"message"`
}

// ReceiptDTO acknowledges a submitted withdrawal.
type ReceiptDTO struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
