package dto

import (
	"time"

	"cupcake-store/internal/model"

	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Success bool                 `json:"success"`
	User    *model.PublicAccount `json:"user"`
	Token   string               `json:"token"`
	Message string               `json:"message"`
}

type CheckAdminResponse struct {
	IsAdmin bool   `json:"isAdmin"`
	Error   string `json:"error,omitempty"`
}

// ProductInput carries the mutable product fields; pointers distinguish
// "missing" from zero values.
type ProductInput struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    string           `json:"image_url"`
	Category    string           `json:"category"`
	Available   *bool            `json:"available"`
}

type ProductResponse struct {
	Success bool           `json:"success"`
	Cupcake *model.Product `json:"cupcake"`
	Message string         `json:"message"`
}

type FavoriteRequest struct {
	UserID    uint `json:"userId"`
	CupcakeID uint `json:"cupcakeId"`
}

type FavoriteCheckResponse struct {
	IsFavorite bool `json:"isFavorite"`
}

type Item struct {
	CupcakeID uint `json:"cupcakeId"`
	Quantity  int  `json:"quantity"`
}

type CreateOrderRequest struct {
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone string  `json:"customerPhone"`
	Items         []*Item `json:"items"`
}

type CreateOrderResponse struct {
	Success bool            `json:"success"`
	OrderID uint            `json:"orderId"`
	Total   decimal.Decimal `json:"total"`
	Message string          `json:"message"`
}

type UpdateStatusRequest struct {
	Status model.OrderStatus `json:"status"`
}

// OrderSummary is one row of the order list with a readable item summary.
type OrderSummary struct {
	ID            uint              `json:"id"`
	UserID        *uint             `json:"user_id"`
	CustomerName  string            `json:"customer_name"`
	CustomerEmail string            `json:"customer_email"`
	CustomerPhone string            `json:"customer_phone"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	Status        model.OrderStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	Items         string            `json:"items"`
}

type OrderLine struct {
	CupcakeName string          `json:"cupcake_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type OrderDetail struct {
	ID            uint              `json:"id"`
	UserID        *uint             `json:"user_id"`
	CustomerName  string            `json:"customer_name"`
	CustomerEmail string            `json:"customer_email"`
	CustomerPhone string            `json:"customer_phone"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	Status        model.OrderStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	Items         []*OrderLine      `json:"items"`
}

type TopCupcake struct {
	Name      string `json:"name"`
	TotalSold int64  `json:"total_sold"`
}

type Stats struct {
	TotalOrders   int64           `json:"totalOrders"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalCupcakes int64           `json:"totalCupcakes"`
	PendingOrders int64           `json:"pendingOrders"`
	TopCupcake    TopCupcake      `json:"topCupcake"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
