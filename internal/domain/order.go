package domain

import "time"

type Order struct {
	ID            string    `json:"_id" bson:"_id" gorm:"primaryKey;size:36"`
	LineID        string    `json:"lineId" bson:"lineId" gorm:"size:36;not null;uniqueIndex"`
	AccountID     string    `json:"userId" bson:"userId" gorm:"size:36;not null;index"`
	Name          string    `json:"name" bson:"name" gorm:"size:140"`
	Mobile        string    `json:"mobile" bson:"mobile" gorm:"size:40"`
	Email         string    `json:"email" bson:"email" gorm:"size:140"`
	Address       string    `json:"address" bson:"address" gorm:"size:255"`
	Pincode       string    `json:"pincode" bson:"pincode" gorm:"size:20"`
	Title         string    `json:"title" bson:"title" gorm:"size:180"`
	Description   string    `json:"description" bson:"description" gorm:"type:text"`
	MainImg       string    `json:"mainImg" bson:"mainImg" gorm:"size:255"`
	Size          string    `json:"size" bson:"size" gorm:"size:40"`
	Quantity      int       `json:"quantity" bson:"quantity"`
	Price         float64   `json:"price" bson:"price"`
	Discount      float64   `json:"discount" bson:"discount"`
	PaymentMethod string    `json:"paymentMethod" bson:"paymentMethod" gorm:"size:40"`
	OrderDate     string    `json:"orderDate" bson:"orderDate" gorm:"size:40"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt" gorm:"autoCreateTime"`
}

// ShippingInfo is applied unchanged to every order produced by one checkout.
type ShippingInfo struct {
	Name    string
	Mobile  string
	Email   string
	Address string
	Pincode string
}

// NewOrderFromLine snapshots a cart line together with the shipping and
// payment details of the checkout that consumes it.
func NewOrderFromLine(id string, line CartLine, ship ShippingInfo, paymentMethod, orderDate string) *Order {
	return &Order{
		ID:            id,
		LineID:        line.ID,
		AccountID:     line.AccountID,
		Name:          ship.Name,
		Mobile:        ship.Mobile,
		Email:         ship.Email,
		Address:       ship.Address,
		Pincode:       ship.Pincode,
		Title:         line.Title,
		Description:   line.Description,
		MainImg:       line.MainImg,
		Size:          line.Size,
		Quantity:      line.Quantity,
		Price:         line.Price,
		Discount:      line.Discount,
		PaymentMethod: paymentMethod,
		OrderDate:     orderDate,
	}
}

// CheckoutResult is the aggregate outcome of converting a cart snapshot.
// FailedLineIDs are still in the cart and can be retried; SkippedLineIDs were
// already converted by a concurrent checkout.
type CheckoutResult struct {
	OrdersCreated  int
	FailedLineIDs  []string
	SkippedLineIDs []string
}

func (r *CheckoutResult) Partial() bool {
	return len(r.FailedLineIDs) > 0
}
