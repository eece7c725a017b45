package schema

// Request/response types of the service's own http api. Integer-valued fields
// that can exceed 2^53 are decimal strings, never json numbers.

type ReqInit struct {
	PrivateKey string `json:"privateKey"`
}

type RespInit struct {
	Success bool   `json:"success"`
	Address string `json:"address"`
}

type RespBalance struct {
	Address       string            `json:"address"`
	TotalBalance  string            `json:"totalBalance"`
	ChainBalances map[string]string `json:"chainBalances"`
	LastUpdated   int64             `json:"lastUpdated"`
}

type ReqDeposit struct {
	SourceChain string `json:"sourceChain"`
	Amount      string `json:"amount"`
	UserAddress string `json:"userAddress"`
}

type RespDeposit struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Steps   []string `json:"steps"`
}

// TransferSource is one {sourceDomain, amount} entry the depositor wants
// consolidated into the vault deposit. Amount is base units as decimal string.
type TransferSource struct {
	Domain uint32 `json:"domain"`
	Amount string `json:"amount"`
}

type ReqTransferToVault struct {
	UserAddress string           `json:"userAddress"`
	Sources     []TransferSource `json:"sources"`
	TotalAmount string           `json:"totalAmount"`
}

type RespTransferToVault struct {
	Success      bool          `json:"success"`
	Attestations []Attestation `json:"attestations"`
}

type ReqAttestation struct {
	BurnIntents []SignedBurnIntent `json:"burnIntents"`
}

type RespMarketPrice struct {
	TokenId string `json:"tokenId"`
	Price   string `json:"price"`
}

type ReqResolve struct {
	TokenId   string `json:"tokenId"`
	Threshold string `json:"threshold"`
}

type RespResolve struct {
	TokenId   string `json:"tokenId"`
	Price     string `json:"price"`
	Threshold string `json:"threshold"`
	Resolved  bool   `json:"resolved"`
	Outcome   string `json:"outcome"`
}

type RespErr struct {
	Err string `json:"error"`
}

func (r RespErr) Error() string {
	return r.Err
}
