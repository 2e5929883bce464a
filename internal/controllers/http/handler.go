package http

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"storefront-service/internal/domain"
	"storefront-service/internal/services"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	accounts *services.AccountService
	catalog  *services.CatalogService
	products *services.ProductService
	carts    *services.CartService
	checkout *services.CheckoutService
	orders   *services.OrderService
}

func NewHandler(
	accounts *services.AccountService,
	catalog *services.CatalogService,
	products *services.ProductService,
	carts *services.CartService,
	checkout *services.CheckoutService,
	orders *services.OrderService,
) *Handler {
	return &Handler{
		accounts: accounts,
		catalog:  catalog,
		products: products,
		carts:    carts,
		checkout: checkout,
		orders:   orders,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.GET("/fetch-users", h.FetchUsers)

	r.GET("/fetch-banner", h.FetchBanner)
	r.POST("/update-banner", h.UpdateBanner)
	r.GET("/fetch-categories", h.FetchCategories)

	r.GET("/fetch-products", h.FetchProducts)
	r.GET("/fetch-product-details/:id", h.FetchProductDetails)
	r.POST("/add-new-product", h.AddNewProduct)
	r.PUT("/update-product/:id", h.UpdateProduct)

	r.POST("/add-to-cart", h.AddToCart)
	r.GET("/fetch-cart/:userId", h.FetchCart)
	r.DELETE("/remove-from-cart/:id", h.RemoveFromCart)

	r.POST("/place-cart-order", h.PlaceCartOrder)
	r.GET("/fetch-orders", h.FetchOrders)
	r.GET("/export-orders", h.ExportOrders)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	account, err := h.accounts.Register(c.Request.Context(), services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Role:     req.Usertype,
		Password: req.Password,
	})
	if errors.Is(err, domain.ErrDuplicate) {
		c.JSON(http.StatusBadRequest, MessageResponse{Message: "User already exists"})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	account, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *Handler) FetchUsers(c *gin.Context) {
	users, err := h.accounts.ListUsers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) FetchBanner(c *gin.Context) {
	banner, err := h.catalog.Banner(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, banner)
}

func (h *Handler) UpdateBanner(c *gin.Context) {
	var req UpdateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.catalog.UpdateBanner(c.Request.Context(), req.Banner); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Banner updated"})
}

func (h *Handler) FetchCategories(c *gin.Context) {
	categories, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *Handler) FetchProducts(c *gin.Context) {
	products, err := h.products.ListProducts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) FetchProductDetails(c *gin.Context) {
	product, err := h.products.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) AddNewProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if _, err := h.products.CreateProduct(c.Request.Context(), req.toInput()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Product added!"})
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if _, err := h.products.UpdateProduct(c.Request.Context(), c.Param("id"), req.toInput()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Product updated!"})
}

func (h *Handler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if _, err := h.carts.AddToCart(c.Request.Context(), req.toLine()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Added to cart"})
}

func (h *Handler) FetchCart(c *gin.Context) {
	lines, err := h.carts.ListCart(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, lines)
}

func (h *Handler) RemoveFromCart(c *gin.Context) {
	if err := h.carts.RemoveLine(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Removed from cart"})
}

func (h *Handler) PlaceCartOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.checkout.PlaceOrder(c.Request.Context(), services.CheckoutRequest{
		AccountID: req.UserID,
		Shipping: domain.ShippingInfo{
			Name:    req.Name,
			Mobile:  req.Mobile,
			Email:   req.Email,
			Address: req.Address,
			Pincode: req.Pincode,
		},
		PaymentMethod: req.PaymentMethod,
		OrderDate:     req.OrderDate,
	})
	if err != nil {
		// A snapshot failure keeps the generic message the storefront client expects.
		c.JSON(http.StatusInternalServerError, MessageResponse{Message: msgErrorOccurred})
		return
	}

	resp := PlaceOrderResponse{
		Message:       "Order placed",
		OrdersCreated: result.OrdersCreated,
		FailedLineIDs: result.FailedLineIDs,
	}
	status := http.StatusOK
	if result.Partial() {
		if result.OrdersCreated == 0 && len(result.SkippedLineIDs) == 0 {
			resp.Message = "Order could not be placed"
			status = http.StatusServiceUnavailable
		} else {
			resp.Message = "Order partially placed"
		}
	}
	c.JSON(status, resp)
}

func (h *Handler) FetchOrders(c *gin.Context) {
	orders, err := h.orders.ListOrders(c.Request.Context(), strings.TrimSpace(c.Query("userId")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) ExportOrders(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.orders.ExportOrders(c.Request.Context(), &buf); err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="orders.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
