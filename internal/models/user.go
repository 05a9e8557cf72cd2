package models

// AuthenticatedUser identifies the caller of a request. It is produced by
// the authentication middleware from a verified bearer token and is never
// persisted.
type AuthenticatedUser struct {
	UID string
}

// AccountProfile is the debtor information attached to a charge. The CPF
// comes from the account document; the display name comes from the
// identity provider.
type AccountProfile struct {
	CPF  string
	Name string
}

// AdminConfig is the administrative payment configuration. All three
// fields are required; a missing field is a configuration fault, not a
// default.
type AdminConfig struct {
	PixKey            string
	ExpirationSeconds int
	RequestType       string
}
