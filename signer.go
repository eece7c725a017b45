package gateway

import (
	"strconv"
	"sync"

	"github.com/Animesh-Parashar/Basis-Zero/schema"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/everFinance/goether"
)

// EIP-712 domain constants of the gateway wallet contracts. Signatures bind
// to the source chain's id and wallet contract, so an intent signed for one
// chain can not be replayed against another.
const (
	typedDataName    = "GatewayWallet"
	typedDataVersion = "1"
	typedDataPrimary = "BurnIntent"
)

var burnIntentTypes = apitypes.Types{
	"EIP712Domain": {
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
		{Name: "chainId", Type: "uint256"},
		{Name: "verifyingContract", Type: "address"},
	},
	"BurnIntent": {
		{Name: "sourceDomain", Type: "uint32"},
		{Name: "destinationDomain", Type: "uint32"},
		{Name: "depositor", Type: "address"},
		{Name: "recipient", Type: "bytes32"},
		{Name: "amount", Type: "uint256"},
		{Name: "maxFee", Type: "uint256"},
		{Name: "nonce", Type: "uint256"},
		{Name: "deadline", Type: "uint256"},
	},
}

// SigningCapability signs a prepared typed-data payload. The TypedDataSigner
// never touches key material itself.
type SigningCapability interface {
	Address() ethcommon.Address
	SignTypedData(td apitypes.TypedData) ([]byte, error)
}

type keySigner struct {
	inner *goether.Signer
}

// NewKeySigner wraps a hex private key into a SigningCapability.
func NewKeySigner(prvHex string) (SigningCapability, error) {
	s, err := goether.NewSigner(prvHex)
	if err != nil {
		return nil, err
	}
	return &keySigner{inner: s}, nil
}

func (k *keySigner) Address() ethcommon.Address {
	return k.inner.Address
}

func (k *keySigner) SignTypedData(td apitypes.TypedData) ([]byte, error) {
	digest, _, err := apitypes.TypedDataAndHash(td)
	if err != nil {
		return nil, err
	}
	sig, err := crypto.Sign(digest, k.inner.GetPrivateKey())
	if err != nil {
		return nil, err
	}
	sig[64] += 27
	return sig, nil
}

// TypedDataSigner builds EIP-712 payloads for burn intents and delegates the
// signature to whatever capability is currently bound. Bind replaces the
// prior capability without teardown.
type TypedDataSigner struct {
	registry *Registry

	lock sync.RWMutex
	cap  SigningCapability
}

func NewTypedDataSigner(registry *Registry) *TypedDataSigner {
	return &TypedDataSigner{registry: registry}
}

func (s *TypedDataSigner) Bind(sc SigningCapability) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.cap = sc
}

func (s *TypedDataSigner) Ready() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.cap != nil
}

func (s *TypedDataSigner) Address() (ethcommon.Address, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	if s.cap == nil {
		return ethcommon.Address{}, schema.ErrSignerNotSet
	}
	return s.cap.Address(), nil
}

// TypedData assembles the signing payload for one burn intent. The recipient
// address is re-encoded as a 32-byte left-zero-padded value, the wire format
// the wallet contract expects.
func (s *TypedDataSigner) TypedData(intent schema.BurnIntent) (apitypes.TypedData, error) {
	d, err := s.registry.Lookup(intent.SourceDomain)
	if err != nil {
		return apitypes.TypedData{}, err
	}
	if d.WalletContract == "" || ethcommon.HexToAddress(d.WalletContract) == (ethcommon.Address{}) {
		return apitypes.TypedData{}, schema.ErrPlaceholderContract
	}

	recipient := hexutil.Encode(ethcommon.LeftPadBytes(ethcommon.HexToAddress(intent.Recipient).Bytes(), 32))
	return apitypes.TypedData{
		Types:       burnIntentTypes,
		PrimaryType: typedDataPrimary,
		Domain: apitypes.TypedDataDomain{
			Name:              typedDataName,
			Version:           typedDataVersion,
			ChainId:           math.NewHexOrDecimal256(d.ChainId),
			VerifyingContract: d.WalletContract,
		},
		Message: apitypes.TypedDataMessage{
			"sourceDomain":      strconv.FormatUint(uint64(intent.SourceDomain), 10),
			"destinationDomain": strconv.FormatUint(uint64(intent.DestinationDomain), 10),
			"depositor":         ethcommon.HexToAddress(intent.Depositor).Hex(),
			"recipient":         recipient,
			"amount":            intent.Amount,
			"maxFee":            intent.MaxFee,
			"nonce":             intent.Nonce,
			"deadline":          intent.Deadline,
		},
	}, nil
}

func (s *TypedDataSigner) Sign(intent schema.BurnIntent) (schema.SignedBurnIntent, error) {
	s.lock.RLock()
	sc := s.cap
	s.lock.RUnlock()
	if sc == nil {
		return schema.SignedBurnIntent{}, schema.ErrSignerNotSet
	}

	td, err := s.TypedData(intent)
	if err != nil {
		return schema.SignedBurnIntent{}, err
	}
	sig, err := sc.SignTypedData(td)
	if err != nil {
		return schema.SignedBurnIntent{}, err
	}
	return schema.SignedBurnIntent{
		BurnIntent: intent,
		Signature:  hexutil.Encode(sig),
	}, nil
}
