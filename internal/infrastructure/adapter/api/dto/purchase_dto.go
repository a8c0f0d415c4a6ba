package dto

// PurchaseItemRequest is one product line in a purchase request
type PurchaseItemRequest struct {
	ProductRef string `json:"productRef" binding:"required"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity" binding:"required,gt=0"`
	UnitPrice  string `json:"unitPrice" binding:"required"`
}

// ShippingAddressRequest is the delivery destination in a purchase request
type ShippingAddressRequest struct {
	Line1      string `json:"line1" binding:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// PaymentRequest is the payment descriptor in a purchase request
type PaymentRequest struct {
	Method       string `json:"method" binding:"omitempty,oneof=token balance"`
	ExternalTxID string `json:"externalTxId"`
	Amount       string `json:"amount"`
	Currency     string `json:"currency"`
}

// PurchaseRequest represents the API request for creating a purchase.
// At least one of walletAddress, chatId, email must be supplied.
type PurchaseRequest struct {
	Items           []PurchaseItemRequest  `json:"items" binding:"required,min=1,dive"`
	ShippingAddress ShippingAddressRequest `json:"shippingAddress" binding:"required"`
	Payment         PaymentRequest         `json:"payment"`
	Subtotal        string                 `json:"subtotal" binding:"required"`
	Shipping        string                 `json:"shipping"`
	Tax             string                 `json:"tax"`
	Discount        string                 `json:"discount"`
	Total           string                 `json:"total" binding:"required"`
	WalletAddress   string                 `json:"walletAddress"`
	ChatID          string                 `json:"chatId"`
	Email           string                 `json:"email"`
	Channel         string                 `json:"channel" binding:"omitempty,oneof=web chat bot"`
}
