package http

import "storefront-service/internal/domain"

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email" binding:"required"`
	Usertype string `json:"usertype"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateBannerRequest struct {
	Banner string `json:"banner"`
}

type ProductRequest struct {
	ProductName        string   `json:"productName"`
	ProductDescription string   `json:"productDescription"`
	ProductMainImg     string   `json:"productMainImg"`
	ProductCarousel    []string `json:"productCarousel"`
	ProductSizes       []string `json:"productSizes"`
	ProductGender      string   `json:"productGender"`
	ProductCategory    string   `json:"productCategory"`
	ProductNewCategory string   `json:"productNewCategory"`
	ProductPrice       float64  `json:"productPrice"`
	ProductDiscount    float64  `json:"productDiscount"`
}

func (r ProductRequest) toInput() domain.ProductInput {
	carousel := r.ProductCarousel
	if carousel == nil {
		carousel = []string{}
	}
	sizes := r.ProductSizes
	if sizes == nil {
		sizes = []string{}
	}
	return domain.ProductInput{
		Title:       r.ProductName,
		Description: r.ProductDescription,
		MainImg:     r.ProductMainImg,
		Carousel:    carousel,
		Sizes:       sizes,
		Gender:      r.ProductGender,
		Category:    r.ProductCategory,
		NewCategory: r.ProductNewCategory,
		Price:       r.ProductPrice,
		Discount:    r.ProductDiscount,
	}
}

type AddToCartRequest struct {
	UserID      string  `json:"userId" binding:"required"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	MainImg     string  `json:"mainImg"`
	Size        string  `json:"size"`
	Quantity    int     `json:"quantity" binding:"required,min=1"`
	Price       float64 `json:"price"`
	Discount    float64 `json:"discount"`
}

func (r AddToCartRequest) toLine() domain.CartLine {
	return domain.CartLine{
		AccountID:   r.UserID,
		Title:       r.Title,
		Description: r.Description,
		MainImg:     r.MainImg,
		Size:        r.Size,
		Quantity:    r.Quantity,
		Price:       r.Price,
		Discount:    r.Discount,
	}
}

type PlaceOrderRequest struct {
	UserID        string `json:"userId" binding:"required"`
	Name          string `json:"name"`
	Mobile        string `json:"mobile"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	Pincode       string `json:"pincode"`
	PaymentMethod string `json:"paymentMethod"`
	OrderDate     string `json:"orderDate"`
}

type PlaceOrderResponse struct {
	Message       string   `json:"message"`
	OrdersCreated int      `json:"ordersCreated"`
	FailedLineIDs []string `json:"failedLineIds"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
