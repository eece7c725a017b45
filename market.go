package gateway

import (
	"sync"
	"time"

	"github.com/Animesh-Parashar/Basis-Zero/cache"
	"github.com/Animesh-Parashar/Basis-Zero/schema"
	"github.com/panjf2000/ants/v2"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
	"gopkg.in/h2non/gentleman.v2"
)

const midpointPriceTTL = time.Minute

// MarketWatcher is the price-feed side of the service, unrelated to the
// cross-chain flow: it reads clob midpoint prices for prediction-market
// condition tokens and evaluates resolution conditions against them.
type MarketWatcher struct {
	cli       *gentleman.Client
	prices    *cache.Cache
	watchlist []string
}

func NewMarketWatcher(clobUrl string, watchlist []string) *MarketWatcher {
	prices, err := cache.NewLocalCache(midpointPriceTTL)
	if err != nil {
		panic(err)
	}
	return &MarketWatcher{
		cli:       gentleman.New().URL(clobUrl),
		prices:    prices,
		watchlist: watchlist,
	}
}

func (m *MarketWatcher) Midpoint(tokenId string) (decimal.Decimal, error) {
	if by, err := m.prices.Cache.Get(tokenId); err == nil {
		return decimal.NewFromString(string(by))
	}
	return m.fetchMidpoint(tokenId)
}

func (m *MarketWatcher) fetchMidpoint(tokenId string) (decimal.Decimal, error) {
	req := m.cli.Get()
	req.Path("/midpoint")
	req.SetQuery("token_id", tokenId)
	resp, err := req.Send()
	if err != nil {
		return decimal.Zero, err
	}
	defer resp.Close()
	if !resp.Ok {
		metricExternalApiError("midpoint")
		return decimal.Zero, schema.ExternalApiError{StatusCode: resp.StatusCode, Body: resp.String()}
	}

	mid := gjson.GetBytes(resp.Bytes(), "mid")
	if !mid.Exists() {
		return decimal.Zero, schema.ErrNullPrice
	}
	price, err := decimal.NewFromString(mid.String())
	if err != nil {
		return decimal.Zero, err
	}
	if err := m.prices.Cache.Set(tokenId, []byte(price.String())); err != nil {
		log.Warn("cache midpoint price failed", "tokenId", tokenId, "err", err)
	}
	return price, nil
}

// Resolve evaluates a yes/no condition against the current midpoint price:
// price >= threshold resolves YES, price <= 1-threshold resolves NO,
// anything between is unresolved.
func (m *MarketWatcher) Resolve(tokenId string, threshold decimal.Decimal) (schema.RespResolve, error) {
	price, err := m.Midpoint(tokenId)
	if err != nil {
		return schema.RespResolve{}, err
	}

	res := schema.RespResolve{
		TokenId:   tokenId,
		Price:     price.String(),
		Threshold: threshold.String(),
	}
	switch {
	case price.GreaterThanOrEqual(threshold):
		res.Resolved = true
		res.Outcome = "YES"
	case price.LessThanOrEqual(decimal.NewFromInt(1).Sub(threshold)):
		res.Resolved = true
		res.Outcome = "NO"
	}
	return res, nil
}

// warmWatchlist refreshes the cached price of every watched token
// concurrently; failures only log, the next tick retries.
func (m *MarketWatcher) warmWatchlist() {
	if len(m.watchlist) == 0 {
		return
	}
	var wg sync.WaitGroup
	p, _ := ants.NewPoolWithFunc(10, func(i interface{}) {
		defer wg.Done()
		tokenId := i.(string)
		if _, err := m.fetchMidpoint(tokenId); err != nil {
			log.Warn("warm midpoint price failed", "tokenId", tokenId, "err", err)
		}
	})
	defer p.Release()

	for _, tokenId := range m.watchlist {
		wg.Add(1)
		_ = p.Invoke(tokenId)
	}
	wg.Wait()
}
