package entity

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
)

type OrderItem struct {
	ProductID string  `json:"product_id" firestore:"productId"`
	Name      string  `json:"name" firestore:"name"`
	Price     float64 `json:"price" firestore:"price"`
	Quantity  int     `json:"quantity" firestore:"quantity"`
}

type Order struct {
	ID          string      `json:"id" firestore:"-"`
	OrderNumber string      `json:"order_number,omitempty" firestore:"orderNumber,omitempty"`
	BuyerID     string      `json:"buyer_id" firestore:"buyerId"`
	BuyerName   string      `json:"buyer_name" firestore:"buyerName"`
	SellerID    string      `json:"seller_id" firestore:"sellerId"`
	SellerName  string      `json:"seller_name" firestore:"sellerName"`
	Items       []OrderItem `json:"items" firestore:"items"`
	TotalAmount float64     `json:"total_amount" firestore:"totalAmount"`
	Status      OrderStatus `json:"status" firestore:"status"`
	CreatedAt   time.Time   `json:"created_at" firestore:"createdAt"`
	ConfirmedAt *time.Time  `json:"confirmed_at,omitempty" firestore:"confirmedAt,omitempty"`
}

type SellerDashboard struct {
	TotalProducts   int      `json:"total_products"`
	TotalOrders     int      `json:"total_orders"`
	TotalRevenue    float64  `json:"total_revenue"`
	PendingOrders   int      `json:"pending_orders"`
	ConfirmedOrders int      `json:"confirmed_orders"`
	RecentOrders    []*Order `json:"recent_orders"`
}
