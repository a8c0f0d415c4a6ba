package dto

// OrderItemResponse is one product line on an order response
type OrderItemResponse struct {
	ProductRef string `json:"productRef"`
	Name       string `json:"name,omitempty"`
	Quantity   int    `json:"quantity"`
	UnitPrice  string `json:"unitPrice"`
}

// ShippingAddressResponse is the delivery destination on an order response
type ShippingAddressResponse struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// PaymentResponse is the payment descriptor on an order response
type PaymentResponse struct {
	Method       string `json:"method"`
	ExternalTxID string `json:"externalTxId,omitempty"`
	Amount       string `json:"amount,omitempty"`
	Currency     string `json:"currency,omitempty"`
	Verified     bool   `json:"verified"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID              string                  `json:"id"`
	Code            string                  `json:"code"`
	UserID          string                  `json:"userId"`
	Items           []OrderItemResponse     `json:"items"`
	ShippingAddress ShippingAddressResponse `json:"shippingAddress"`
	Payment         PaymentResponse         `json:"payment"`
	Subtotal        string                  `json:"subtotal"`
	Shipping        string                  `json:"shipping"`
	Tax             string                  `json:"tax"`
	Discount        string                  `json:"discount"`
	Total           string                  `json:"total"`
	Status          string                  `json:"status"`
	CreatedAt       string                  `json:"createdAt"`
	UpdatedAt       string                  `json:"updatedAt"`
}

// OrderStatusRequest represents the API request for advancing an order's status
type OrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed processing shipped delivered cancelled"`
}

// OrderListResponse wraps a page of orders for one user
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Count  int             `json:"count"`
}
