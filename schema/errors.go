package schema

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedChain    = errors.New("unsupported_chain")
	ErrUnknownDomain       = errors.New("unknown_domain")
	ErrNotInitialized      = errors.New("not_initialized")
	ErrSignerNotSet        = errors.New("signer_not_set")
	ErrInvalidAmount       = errors.New("invalid_amount")
	ErrPlaceholderContract = errors.New("placeholder_contract")
	ErrVaultNotConfigured  = errors.New("vault_not_configured")
	ErrNullBody            = errors.New("null_body")
	ErrNullPrice           = errors.New("null_price")
)

// ExternalApiError is a non-2xx reply from the attestation gateway or the
// price feed. Transport failures are not wrapped; they propagate unchanged.
type ExternalApiError struct {
	StatusCode int
	Body       string
}

func (e ExternalApiError) Error() string {
	return fmt.Sprintf("external_api_error: status=%d, body=%s", e.StatusCode, e.Body)
}
