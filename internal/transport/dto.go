package transport

import (
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/pos_shop/internal/models"
)

type UpdateCartRequest struct {
	Cart  []models.CartLine `json:"cart"  validate:"required,dive"`
	Total decimal.Decimal   `json:"total"`
}

type SavePaymentRequest struct {
	TotalAmount   *decimal.Decimal  `json:"totalAmount"   validate:"required"`
	PaymentAmount *decimal.Decimal  `json:"paymentAmount" validate:"required"`
	Cart          []models.CartLine `json:"cart"          validate:"required,min=1,dive"`
}

type SaveTransactionRequest struct {
	Total   *decimal.Decimal `json:"total"   validate:"required"`
	Payment *decimal.Decimal `json:"payment" validate:"required"`
	Change  *decimal.Decimal `json:"change"  validate:"required"`
}

type PaymentResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
}
