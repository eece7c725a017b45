package gateway

import (
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Animesh-Parashar/Basis-Zero/schema"
	"github.com/Animesh-Parashar/Basis-Zero/sdk"
	"github.com/stretchr/testify/assert"
)

func testDomainSeed() []schema.Domain {
	wallet := "0x77777777Dcc4d5A8B6E418Fd04D8997ef11000eE"
	return []schema.Domain{
		{DomainId: 0, ChainName: "ethereum", ChainId: 1, WalletContract: wallet},
		{DomainId: 1, ChainName: "avalanche", ChainId: 43114, WalletContract: wallet},
		{DomainId: 3, ChainName: "arbitrum", ChainId: 42161, WalletContract: wallet},
		{DomainId: 6, ChainName: "base", ChainId: 8453, WalletContract: wallet},
	}
}

func fixedClock(sec int64) Clock {
	return func() time.Time { return time.Unix(sec, 0) }
}

func TestBalanceAggregator_GetUnifiedBalance(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/balances", req.URL.Path)
		br := schema.BalancesRequest{}
		assert.NoError(t, json.NewDecoder(req.Body).Decode(&br))
		// one batched request covering every known domain
		assert.Equal(t, "USDC", br.Token)
		assert.Equal(t, 4, len(br.Sources))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"USDC","balances":[
			{"domain":0,"depositor":"0xabc","balance":"10.0"},
			{"domain":1,"depositor":"0xabc","balance":"5.5"}
		]}`))
	}))
	defer ts.Close()

	agg := NewBalanceAggregator(sdk.New(ts.URL), NewRegistry(testDomainSeed()), "USDC", fixedClock(1700000000))
	ub := agg.GetUnifiedBalance("0xABC")

	assert.Equal(t, "0xabc", ub.Address)
	assert.Equal(t, big.NewInt(15500000), ub.TotalBalance)
	assert.Equal(t, big.NewInt(10000000), ub.PerDomain[0])
	assert.Equal(t, big.NewInt(5500000), ub.PerDomain[1])
	// domains the gateway did not report are absent, not zero entries
	assert.Equal(t, 2, len(ub.PerDomain))
	assert.Equal(t, time.Unix(1700000000, 0), ub.LastUpdated)

	// invariant: total equals the sum of per-domain balances
	sum := new(big.Int)
	for _, bal := range ub.PerDomain {
		sum.Add(sum, bal)
	}
	assert.Equal(t, sum, ub.TotalBalance)
}

func TestBalanceAggregator_FailureReturnsCachedEntry(t *testing.T) {
	var calls int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if atomic.AddInt64(&calls, 1) > 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"balances":[{"domain":0,"depositor":"0xabc","balance":"1.25"}]}`))
	}))
	defer ts.Close()

	agg := NewBalanceAggregator(sdk.New(ts.URL), NewRegistry(testDomainSeed()), "USDC", fixedClock(1700000000))

	first := agg.GetUnifiedBalance("0xabc")
	assert.Equal(t, big.NewInt(1250000), first.TotalBalance)

	// the gateway is down now, the cached entry comes back unchanged
	second := agg.GetUnifiedBalance("0xabc")
	assert.Equal(t, first, second)
}

func TestBalanceAggregator_FailureWithoutCacheReturnsZero(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	agg := NewBalanceAggregator(sdk.New(ts.URL), NewRegistry(testDomainSeed()), "USDC", fixedClock(1700000123))
	ub := agg.GetUnifiedBalance("0xNobody")

	assert.Equal(t, "0xnobody", ub.Address)
	assert.Equal(t, 0, ub.TotalBalance.Sign())
	assert.Equal(t, 0, len(ub.PerDomain))
	assert.Equal(t, time.Unix(1700000123, 0), ub.LastUpdated)
}

func TestBalanceCache_CopiesEntries(t *testing.T) {
	c := NewBalanceCache()
	ub := schema.UnifiedBalance{
		Address:      "0xabc",
		TotalBalance: big.NewInt(100),
		PerDomain:    map[uint32]*big.Int{0: big.NewInt(100)},
		LastUpdated:  time.Unix(1700000000, 0),
	}
	c.Put(ub)

	got, ok := c.Get("0xabc")
	assert.True(t, ok)
	assert.Equal(t, ub, got)

	// mutating the returned copy must not touch the cached entry
	got.TotalBalance.SetInt64(0)
	got.PerDomain[0].SetInt64(0)
	again, ok := c.Get("0xabc")
	assert.True(t, ok)
	assert.Equal(t, big.NewInt(100), again.TotalBalance)

	_, ok = c.Get("0xmissing")
	assert.False(t, ok)
}
