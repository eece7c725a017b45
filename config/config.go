package config

import (
	"errors"
	"strings"
	"time"

	"github.com/Animesh-Parashar/Basis-Zero/schema"
	ethcommon "github.com/ethereum/go-ethereum/common"
)

// Config is resolved once at startup. The vault address must be explicit and
// non-zero: a placeholder vault in a live signing flow is a fund-loss risk,
// so New fails instead of falling back to a default.
type Config struct {
	GatewayUrl string
	ClobUrl    string
	Token      string

	VaultAddress ethcommon.Address
	VaultDomain  uint32

	KafkaUri string
	Markets  []string

	DeadlineHorizon time.Duration
}

func New(gatewayUrl, clobUrl, token, vaultAddr string, vaultDomain uint32, kafkaUri, markets string) (*Config, error) {
	if strings.TrimSpace(gatewayUrl) == "" {
		return nil, errors.New("gateway_url_required")
	}
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("token_required")
	}
	if !ethcommon.IsHexAddress(vaultAddr) {
		return nil, schema.ErrVaultNotConfigured
	}
	vault := ethcommon.HexToAddress(vaultAddr)
	if vault == (ethcommon.Address{}) {
		return nil, schema.ErrVaultNotConfigured
	}

	cfg := &Config{
		GatewayUrl:      gatewayUrl,
		ClobUrl:         clobUrl,
		Token:           token,
		VaultAddress:    vault,
		VaultDomain:     vaultDomain,
		KafkaUri:        kafkaUri,
		DeadlineHorizon: time.Hour,
	}
	for _, m := range strings.Split(markets, ",") {
		if m = strings.TrimSpace(m); m != "" {
			cfg.Markets = append(cfg.Markets, m)
		}
	}
	return cfg, nil
}
