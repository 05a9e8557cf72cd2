package pix

// Wire types for the Efi PIX API.

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type chargeLocation struct {
	ID int `json:"id"`
}

type createChargeResponse struct {
	TxID   string         `json:"txid"`
	Status string         `json:"status"`
	Loc    chargeLocation `json:"loc"`
}

type qrCodeResponse struct {
	// QRCode is the copy-paste payment string.
	QRCode string `json:"qrcode"`
	// ImageQRCode is a base64 data URI with the PNG image. The provider
	// sometimes omits it; that is a transient fault, not a hard failure.
	ImageQRCode string `json:"imagemQrcode"`
}
