package models

import "github.com/shopspring/decimal"

// ChargeRequest is the inbound request body for a PIX charge.
type ChargeRequest struct {
	ChargeValue float64 `json:"charge_value"`
}

// PixCalendar holds the charge expiration window in seconds.
type PixCalendar struct {
	Expiration int `json:"expiracao"`
}

// PixDebtor identifies who is being charged.
type PixDebtor struct {
	CPF  string `json:"cpf"`
	Name string `json:"nome"`
}

// PixValue carries the charge amount as a string with exactly two decimal
// digits, as the PSP requires.
type PixValue struct {
	Original string `json:"original"`
}

// PixChargePayload is the exact wire body sent to the PSP when creating an
// immediate charge. Field names follow the PIX API contract.
type PixChargePayload struct {
	Calendar    PixCalendar `json:"calendario"`
	Debtor      PixDebtor   `json:"devedor"`
	Value       PixValue    `json:"valor"`
	Key         string      `json:"chave"`
	RequestType string      `json:"solicitacaoPagador"`
}

// PixChargeResult is what the PSP returns for a created charge. QRImage
// may be empty when the provider omits the image from the QR-code
// response; callers treat that as a transient fault.
type PixChargeResult struct {
	QRImage   []byte
	CopyPaste string
}

// ChargeResponse is the terminal artifact returned to the caller.
type ChargeResponse struct {
	Msg           string `json:"msg"`
	PixCopyPaste  string `json:"pix_copy_paste"`
	PixQRCodePath string `json:"pix_qrcode_path"`
}

// NormalizeChargeValue renders a charge amount with exactly two decimal
// digits using decimal arithmetic, rounding half away from zero
// (10.005 becomes "10.01").
func NormalizeChargeValue(v float64) string {
	return decimal.NewFromFloat(v).Round(2).StringFixed(2)
}
