// Package devmode provides shared credentials for the local sandbox used by
// both the client and the sandbox server.
package devmode

// These values are intentionally obvious and must never be used against a
// real marketplace.
const (
	APIKey   = "LOCAL_SANDBOX_NOT_FOR_PRODUCTION"
	Login    = "sandbox"
	Password = "sandbox"
)
