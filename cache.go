package gateway

import (
	"math/big"
	"sync"

	"github.com/Animesh-Parashar/Basis-Zero/schema"
)

// BalanceCache keeps the last-known-good unified balance per depositor
// address. Entries are replaced wholesale; concurrent refreshes for the same
// address are last-writer-wins, which is acceptable under the stale-tolerant
// read policy. The cache is not linearizable and must not be treated as one.
type BalanceCache struct {
	lock    sync.RWMutex
	entries map[string]schema.UnifiedBalance
}

func NewBalanceCache() *BalanceCache {
	return &BalanceCache{entries: make(map[string]schema.UnifiedBalance)}
}

// Get returns a deep copy so callers can not mutate the cached entry.
func (c *BalanceCache) Get(address string) (schema.UnifiedBalance, bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	ub, ok := c.entries[address]
	if !ok {
		return schema.UnifiedBalance{}, false
	}
	return cloneBalance(ub), true
}

func (c *BalanceCache) Put(ub schema.UnifiedBalance) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.entries[ub.Address] = cloneBalance(ub)
}

func cloneBalance(ub schema.UnifiedBalance) schema.UnifiedBalance {
	cp := schema.UnifiedBalance{
		Address:      ub.Address,
		TotalBalance: new(big.Int),
		PerDomain:    make(map[uint32]*big.Int, len(ub.PerDomain)),
		LastUpdated:  ub.LastUpdated,
	}
	if ub.TotalBalance != nil {
		cp.TotalBalance.Set(ub.TotalBalance)
	}
	for id, bal := range ub.PerDomain {
		cp.PerDomain[id] = new(big.Int).Set(bal)
	}
	return cp
}
