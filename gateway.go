package gateway

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/Animesh-Parashar/Basis-Zero/common"
	"github.com/Animesh-Parashar/Basis-Zero/config"
	"github.com/Animesh-Parashar/Basis-Zero/schema"
	"github.com/Animesh-Parashar/Basis-Zero/sdk"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
)

var log = common.NewLog("gateway")

// Gateway coordinates stable-token movement across chains through the
// attestation gateway api. It starts uninitialized; Initialize binds a
// signing key and unlocks the transfer flow. Balance reads work in either
// state.
type Gateway struct {
	engine *gin.Engine
	cfg    *config.Config

	api       *sdk.Client
	registry  *Registry
	signer    *TypedDataSigner
	builder   *IntentBuilder
	balances  *BalanceAggregator
	market    *MarketWatcher
	scheduler *gocron.Scheduler
	events    *KWriter
}

func New(cfg *config.Config) *Gateway {
	api := sdk.New(cfg.GatewayUrl)
	registry := NewRegistry(DefaultDomains())

	g := &Gateway{
		engine:    gin.Default(),
		cfg:       cfg,
		api:       api,
		registry:  registry,
		signer:    NewTypedDataSigner(registry),
		builder:   NewIntentBuilder(nil, nil, cfg.DeadlineHorizon),
		balances:  NewBalanceAggregator(api, registry, cfg.Token, nil),
		market:    NewMarketWatcher(cfg.ClobUrl, cfg.Markets),
		scheduler: gocron.NewScheduler(time.UTC),
	}
	if cfg.KafkaUri != "" {
		events, err := NewKWriter(TransferTopic, cfg.KafkaUri)
		if err != nil {
			panic(err)
		}
		g.events = events
	}
	return g
}

func (g *Gateway) Run(port string) {
	// seed contract addresses before serving; a failure here leaves the
	// static table in place and the next scheduled refresh retries
	g.registry.Refresh(g.api)
	g.runJobs()
	go g.runAPI(port)
}

func (g *Gateway) Close() {
	g.scheduler.Stop()
	if g.events != nil {
		g.events.Close()
	}
	log.Info("gateway closed")
}

// Initialize derives the signer address from privKeyHex and binds it to the
// typed-data signer. Re-initializing silently replaces the prior signer.
func (g *Gateway) Initialize(privKeyHex string) (ethcommon.Address, error) {
	sc, err := NewKeySigner(privKeyHex)
	if err != nil {
		return ethcommon.Address{}, err
	}
	g.signer.Bind(sc)
	log.Info("signer initialized", "address", sc.Address().Hex())
	return sc.Address(), nil
}

func (g *Gateway) GetUnifiedBalance(address string) schema.UnifiedBalance {
	return g.balances.GetUnifiedBalance(address)
}

// InitiateDeposit returns the off-system steps a depositor performs to fund
// the escrow on sourceChain. Informational only; no on-chain action happens
// here. The output is a pure function of the arguments and the registry's
// current contract addresses.
func (g *Gateway) InitiateDeposit(userAddress, sourceChain, amount string) (schema.RespDeposit, error) {
	domainId, err := g.registry.LookupByChainName(sourceChain)
	if err != nil {
		return schema.RespDeposit{}, err
	}
	d, err := g.registry.Lookup(domainId)
	if err != nil {
		return schema.RespDeposit{}, err
	}

	user := strings.ToLower(userAddress)
	steps := []string{
		fmt.Sprintf("Approve the escrow wallet contract %s on %s to spend %s %s from %s.", d.WalletContract, d.ChainName, amount, g.cfg.Token, user),
		fmt.Sprintf("Call deposit(%s, %s) on the wallet contract %s (chain id %d).", g.cfg.Token, amount, d.WalletContract, d.ChainId),
		fmt.Sprintf("Wait for finality on %s; the funds then appear in the unified balance of %s.", d.ChainName, user),
	}
	return schema.RespDeposit{
		Success: true,
		Message: fmt.Sprintf("deposit %s %s into the %s escrow (domain %d)", amount, g.cfg.Token, d.ChainName, domainId),
		Steps:   steps,
	}, nil
}

// TransferToVault builds, signs and submits one burn intent per source, all
// destined for the configured vault, as a single batch. totalAmount is
// accepted but not enforced against the sum of sources; a mismatch is logged
// and the gateway burns exactly what the sources describe.
func (g *Gateway) TransferToVault(userAddress string, sources []schema.TransferSource, totalAmount string) ([]schema.Attestation, error) {
	if !g.signer.Ready() {
		return nil, schema.ErrNotInitialized
	}
	if len(sources) == 0 {
		return nil, schema.ErrInvalidAmount
	}

	vault := g.cfg.VaultAddress.Hex()
	signed := make([]schema.SignedBurnIntent, 0, len(sources))
	sum := new(big.Int)
	for _, src := range sources {
		amount, ok := new(big.Int).SetString(src.Amount, 10)
		if !ok || amount.Sign() <= 0 {
			return nil, schema.ErrInvalidAmount
		}
		if _, err := g.registry.Lookup(src.Domain); err != nil {
			return nil, err
		}
		intent, err := g.builder.Build(userAddress, src.Domain, amount, g.cfg.VaultDomain, vault, DefaultMaxFee)
		if err != nil {
			return nil, err
		}
		si, err := g.signer.Sign(intent)
		if err != nil {
			return nil, err
		}
		signed = append(signed, si)
		sum.Add(sum, amount)
	}

	if totalAmount != "" && totalAmount != sum.String() {
		log.Warn("totalAmount does not match sum of sources, proceeding with sources", "totalAmount", totalAmount, "sum", sum.String())
	}

	attestations, err := g.api.Transfer(signed)
	if err != nil {
		metricExternalApiError("transfer")
		return nil, err
	}
	metricTransfer(len(attestations))
	g.publishTransferEvent(userAddress, sum.String(), attestations)
	return attestations, nil
}
