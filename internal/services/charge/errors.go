package charge

import "errors"

// Sentinel errors for the charge pipeline. Adapters wrap these so the
// handler can map them to HTTP statuses with errors.Is.
var (
	ErrAccountNotFound    = errors.New("no account matches the authenticated user")
	ErrAdminNotConfigured = errors.New("admin payment configuration is missing or incomplete")
	ErrChargeCreation     = errors.New("psp rejected the charge")
	ErrQRImageUnavailable = errors.New("psp returned a charge without a QR image")
	ErrUpload             = errors.New("qr image upload failed")
)
