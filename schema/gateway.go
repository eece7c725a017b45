package schema

// Wire types for the outbound attestation gateway api.

type InfoResponse struct {
	Domains []Domain `json:"domains"`
}

type BalanceSource struct {
	Depositor string `json:"depositor"`
	Domain    uint32 `json:"domain"`
}

type BalancesRequest struct {
	Token   string          `json:"token"`
	Sources []BalanceSource `json:"sources"`
}

// DomainBalance carries one escrow balance as reported by the gateway;
// Balance is a decimal string in token units, e.g. "10.0".
type DomainBalance struct {
	Domain    uint32 `json:"domain"`
	Depositor string `json:"depositor"`
	Balance   string `json:"balance"`
}

type BalancesResponse struct {
	Token    string          `json:"token"`
	Balances []DomainBalance `json:"balances"`
}

type GatewayTransferRequest struct {
	BurnIntents []SignedBurnIntent `json:"burnIntents"`
}

// The gateway treats the batch atomically: either every intent gets an
// attestation or the whole request fails.
type GatewayTransferResponse struct {
	TransferId   string        `json:"transferId,omitempty"`
	Attestations []Attestation `json:"attestations"`
}
