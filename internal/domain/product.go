package domain

import (
	"slices"
	"time"
)

// NewCategorySentinel is the category value a client sends when the product
// introduces a category that is not registered yet.
const NewCategorySentinel = "new category"

type Product struct {
	ID          string    `json:"_id" bson:"_id" gorm:"primaryKey;size:36"`
	Title       string    `json:"title" bson:"title" gorm:"size:180"`
	Description string    `json:"description" bson:"description" gorm:"type:text"`
	MainImg     string    `json:"mainImg" bson:"mainImg" gorm:"size:255"`
	Carousel    []string  `json:"carousel" bson:"carousel" gorm:"type:json;serializer:json"`
	Category    string    `json:"category" bson:"category" gorm:"size:100;index"`
	Sizes       []string  `json:"sizes" bson:"sizes" gorm:"type:json;serializer:json"`
	Gender      string    `json:"gender" bson:"gender" gorm:"size:40"`
	Price       float64   `json:"price" bson:"price"`
	Discount    float64   `json:"discount" bson:"discount"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt" gorm:"autoUpdateTime"`
}

// Clone returns a copy that shares no slices with p.
func (p *Product) Clone() *Product {
	out := *p
	out.Carousel = slices.Clone(p.Carousel)
	out.Sizes = slices.Clone(p.Sizes)
	return &out
}

// ProductInput carries the writable product fields plus the category selector
// used by create and update.
type ProductInput struct {
	Title       string
	Description string
	MainImg     string
	Carousel    []string
	Sizes       []string
	Gender      string
	Category    string
	NewCategory string
	Price       float64
	Discount    float64
}

// ResolvedCategory returns the category the product will be stored under and
// whether it has to be registered first.
func (in ProductInput) ResolvedCategory() (string, bool) {
	if in.Category == NewCategorySentinel {
		return in.NewCategory, true
	}
	return in.Category, false
}

// Apply copies the input fields onto p using category as the stored category.
func (in ProductInput) Apply(p *Product, category string) {
	p.Title = in.Title
	p.Description = in.Description
	p.MainImg = in.MainImg
	p.Carousel = in.Carousel
	p.Category = category
	p.Sizes = in.Sizes
	p.Gender = in.Gender
	p.Price = in.Price
	p.Discount = in.Discount
}
