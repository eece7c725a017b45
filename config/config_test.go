package config

import (
	"testing"
	"time"

	"github.com/Animesh-Parashar/Basis-Zero/schema"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	cfg, err := New("https://gateway.example", "https://clob.example", "USDC",
		"0x1111111111111111111111111111111111111111", 7, "", "tok1, tok2,")
	assert.NoError(t, err)
	assert.Equal(t, ethcommon.HexToAddress("0x1111111111111111111111111111111111111111"), cfg.VaultAddress)
	assert.Equal(t, uint32(7), cfg.VaultDomain)
	assert.Equal(t, []string{"tok1", "tok2"}, cfg.Markets)
	assert.Equal(t, time.Hour, cfg.DeadlineHorizon)
}

func TestNew_RejectsMissingVault(t *testing.T) {
	_, err := New("https://gateway.example", "", "USDC", "", 7, "", "")
	assert.ErrorIs(t, err, schema.ErrVaultNotConfigured)

	_, err = New("https://gateway.example", "", "USDC", "not-an-address", 7, "", "")
	assert.ErrorIs(t, err, schema.ErrVaultNotConfigured)

	// the zero address is a placeholder, not a vault
	_, err = New("https://gateway.example", "", "USDC",
		"0x0000000000000000000000000000000000000000", 7, "", "")
	assert.ErrorIs(t, err, schema.ErrVaultNotConfigured)
}

func TestNew_RequiresGatewayUrlAndToken(t *testing.T) {
	_, err := New("", "", "USDC", "0x1111111111111111111111111111111111111111", 7, "", "")
	assert.Error(t, err)

	_, err = New("https://gateway.example", "", " ", "0x1111111111111111111111111111111111111111", 7, "", "")
	assert.Error(t, err)
}
