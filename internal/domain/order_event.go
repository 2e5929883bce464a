package domain

import "time"

const (
	EventOrderPlaced   = "order.placed"
	EventCategoryAdded = "catalog.category_added"
)

type OrderPlacedEvent struct {
	OrderID   string    `json:"orderId"`
	LineID    string    `json:"lineId"`
	AccountID string    `json:"userId"`
	Title     string    `json:"title"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
}

type CategoryAddedEvent struct {
	Category string `json:"category"`
	Version  int64  `json:"version"`
}
