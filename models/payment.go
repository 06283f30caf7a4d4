package models

// WalletTopUp carries the card details only for client-side checks; the
// backend receives the amount alone.
type WalletTopUp struct {
	Amount     string `json:"amount" validate:"walletamount"`
	CardNumber string `json:"cardNumber" validate:"cardnumber"`
	CVV        string `json:"cvv" validate:"cvv"`
}
