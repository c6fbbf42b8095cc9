package models

import (
	"github.com/shopspring/decimal"
)

// Product is one catalog entry. Image is the filesystem path of the stored
// picture; the JSON key matches catalogs written by the legacy till.
type Product struct {
	ID    int     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name  string  `gorm:"not null"                       json:"name"`
	Price float64 `gorm:"not null"                       json:"price"`
	Image string  `gorm:"size:1024"                      json:"image"`
}

type CartLine struct {
	Product    string          `json:"product"    validate:"required"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"   validate:"min=1"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// Cart lives in the session only. Total is whatever the client last sent.
type Cart struct {
	Items []CartLine      `json:"cart"`
	Total decimal.Decimal `json:"total"`
}

type PaymentRow struct {
	Timestamp       string `csv:"timestamp"`
	TotalAmount     string `csv:"total_amount"`
	PaymentAmount   string `csv:"payment_amount"`
	CartDescription string `csv:"cart_description"`
}

type TransactionRow struct {
	Timestamp string `csv:"timestamp"`
	Total     string `csv:"total"`
	Payment   string `csv:"payment"`
	Change    string `csv:"change"`
}

type SalesLineItem struct {
	Product    string  `json:"product"`
	Date       string  `json:"date"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	TotalSales float64 `json:"totalSales"`
}

type SalesSummaryEntry struct {
	Period string  `json:"period"`
	Total  float64 `json:"total"`
}
