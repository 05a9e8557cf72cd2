package pix

import "errors"

// Service errors
var (
	ErrNotReady      = errors.New("pix provider is not connected")
	ErrClosed        = errors.New("pix provider is closed")
	ErrCertificate   = errors.New("could not load psp client certificate")
	ErrAuthorization = errors.New("psp authorization failed")
)
