package domain

import "time"

type CartLine struct {
	ID          string    `json:"_id" bson:"_id" gorm:"primaryKey;size:36"`
	AccountID   string    `json:"userId" bson:"userId" gorm:"size:36;not null;index"`
	Title       string    `json:"title" bson:"title" gorm:"size:180"`
	Description string    `json:"description" bson:"description" gorm:"type:text"`
	MainImg     string    `json:"mainImg" bson:"mainImg" gorm:"size:255"`
	Size        string    `json:"size" bson:"size" gorm:"size:40"`
	Quantity    int       `json:"quantity" bson:"quantity"`
	Price       float64   `json:"price" bson:"price"`
	Discount    float64   `json:"discount" bson:"discount"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt" gorm:"index"`
}
