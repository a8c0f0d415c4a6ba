package dto

// DepositVerifyRequest represents the API request for verifying a deposit.
// At least one of walletAddress, chatId, email must be supplied.
type DepositVerifyRequest struct {
	ExternalTxID   string `json:"externalTxId" binding:"required"`
	WalletAddress  string `json:"walletAddress"`
	ChatID         string `json:"chatId"`
	Email          string `json:"email"`
	Channel        string `json:"channel" binding:"omitempty,oneof=web chat bot"`
	ExpectedAmount string `json:"expectedAmount"`
}

// DepositResponse represents a confirmed deposit
type DepositResponse struct {
	ID            string `json:"id"`
	UserID        string `json:"userId"`
	ExternalTxID  string `json:"externalTxId"`
	Amount        string `json:"amount"`
	TokenID       string `json:"tokenId"`
	SenderAddress string `json:"senderAddress"`
	ConsensusAt   string `json:"consensusAt"`
	ConfirmedAt   string `json:"confirmedAt,omitempty"`
	Status        string `json:"status"`
}
