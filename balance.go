package gateway

import (
	"math/big"
	"strings"
	"time"

	"github.com/Animesh-Parashar/Basis-Zero/schema"
	"github.com/Animesh-Parashar/Basis-Zero/sdk"
	"github.com/shopspring/decimal"
)

// BalanceAggregator fans one batched balances call out over every known
// domain and folds the answers into a UnifiedBalance. Reads favor
// availability: on any gateway failure it degrades to the last cached entry,
// or to a zero balance when none exists, and never surfaces the error.
type BalanceAggregator struct {
	api      *sdk.Client
	registry *Registry
	token    string
	cache    *BalanceCache
	now      Clock
}

func NewBalanceAggregator(api *sdk.Client, registry *Registry, token string, now Clock) *BalanceAggregator {
	if now == nil {
		now = time.Now
	}
	return &BalanceAggregator{
		api:      api,
		registry: registry,
		token:    token,
		cache:    NewBalanceCache(),
		now:      now,
	}
}

func (b *BalanceAggregator) GetUnifiedBalance(address string) schema.UnifiedBalance {
	addr := strings.ToLower(address)
	domains := b.registry.DomainIds()

	balances, err := b.api.Balances(b.token, addr, domains)
	if err != nil {
		log.Warn("fetch balances failed, degrading to cache", "address", addr, "err", err)
		metricExternalApiError("balances")
		if cached, ok := b.cache.Get(addr); ok {
			return cached
		}
		return schema.UnifiedBalance{
			Address:      addr,
			TotalBalance: new(big.Int),
			PerDomain:    make(map[uint32]*big.Int),
			LastUpdated:  b.now(),
		}
	}

	perDomain := make(map[uint32]*big.Int, len(balances))
	total := new(big.Int)
	for _, db := range balances {
		bal, err := parseFixed(db.Balance)
		if err != nil {
			log.Warn("skip unparsable balance", "domain", db.Domain, "balance", db.Balance, "err", err)
			continue
		}
		perDomain[db.Domain] = bal
		total.Add(total, bal)
	}

	ub := schema.UnifiedBalance{
		Address:      addr,
		TotalBalance: total,
		PerDomain:    perDomain,
		LastUpdated:  b.now(),
	}
	b.cache.Put(ub)
	metricUnifiedBalance(addr, total)
	return ub
}

// parseFixed converts a token-unit decimal string like "10.0" into 6-decimal
// base units.
func parseFixed(s string) (*big.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	if d.Sign() < 0 {
		return nil, schema.ErrInvalidAmount
	}
	return d.Shift(schema.TokenDecimals).Truncate(0).BigInt(), nil
}
