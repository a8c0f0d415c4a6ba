package dto

// BalanceResponse represents the API response for a user's balance
type BalanceResponse struct {
	UserID        string `json:"userId"`
	WalletAddress string `json:"walletAddress,omitempty"`
	ChatID        string `json:"chatId,omitempty"`
	Email         string `json:"email,omitempty"`
	Balance       string `json:"balance"`
	Verified      bool   `json:"verified"`
}
