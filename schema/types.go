package schema

import (
	"math/big"
	"time"
)

const (
	// TokenDecimals is the fixed-point precision of the stable token.
	TokenDecimals = 6
)

// Domain describes one chain supported by the attestation gateway.
// WalletContract is the escrow contract depositors pay into; MinterContract
// mints on the destination side. Contract addresses seeded statically are
// untrusted until the first successful registry refresh.
type Domain struct {
	DomainId       uint32 `json:"domain"`
	ChainName      string `json:"chain"`
	ChainId        int64  `json:"chainId"`
	WalletContract string `json:"walletContract"`
	MinterContract string `json:"minterContract,omitempty"`
}

// UnifiedBalance is a depositor's escrow balance summed across all domains,
// in base units (6 decimals). TotalBalance always equals the sum of PerDomain.
type UnifiedBalance struct {
	Address      string
	TotalBalance *big.Int
	PerDomain    map[uint32]*big.Int
	LastUpdated  time.Time
}

// BurnIntent authorizes the gateway to retire value on the source domain and
// mint it on the destination domain. Integer fields are decimal strings on the
// wire; Deadline is unix seconds.
type BurnIntent struct {
	Depositor         string `json:"depositor"`
	Amount            string `json:"amount"`
	Nonce             string `json:"nonce"`
	SourceDomain      uint32 `json:"sourceDomain"`
	DestinationDomain uint32 `json:"destinationDomain"`
	Recipient         string `json:"recipient"`
	MaxFee            string `json:"maxFee"`
	Deadline          string `json:"deadline"`
}

type SignedBurnIntent struct {
	BurnIntent BurnIntent `json:"burnIntent"`
	Signature  string     `json:"signature"`
}

// Attestation is the gateway's proof that a burn intent was accepted.
type Attestation struct {
	BurnIntent  BurnIntent `json:"burnIntent"`
	Attestation string     `json:"attestation"`
}
