package gateway

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func midpointServer(t *testing.T, mids map[string]string, calls *int64) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		atomic.AddInt64(calls, 1)
		assert.Equal(t, "/midpoint", req.URL.Path)
		mid, ok := mids[req.URL.Query().Get("token_id")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(fmt.Sprintf(`{"mid":"%s"}`, mid)))
	}))
}

func TestMarketWatcher_Midpoint(t *testing.T) {
	var calls int64
	ts := midpointServer(t, map[string]string{"tok1": "0.45"}, &calls)
	defer ts.Close()

	m := NewMarketWatcher(ts.URL, nil)

	price, err := m.Midpoint("tok1")
	assert.NoError(t, err)
	assert.True(t, price.Equal(decimal.RequireFromString("0.45")))

	// second read is served from the cache
	_, err = m.Midpoint("tok1")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))

	_, err = m.Midpoint("tok-missing")
	assert.Error(t, err)
}

func TestMarketWatcher_Resolve(t *testing.T) {
	var calls int64
	ts := midpointServer(t, map[string]string{
		"yes-market":  "0.97",
		"no-market":   "0.02",
		"open-market": "0.50",
	}, &calls)
	defer ts.Close()

	m := NewMarketWatcher(ts.URL, nil)
	threshold := decimal.RequireFromString("0.95")

	res, err := m.Resolve("yes-market", threshold)
	assert.NoError(t, err)
	assert.True(t, res.Resolved)
	assert.Equal(t, "YES", res.Outcome)

	res, err = m.Resolve("no-market", threshold)
	assert.NoError(t, err)
	assert.True(t, res.Resolved)
	assert.Equal(t, "NO", res.Outcome)

	res, err = m.Resolve("open-market", threshold)
	assert.NoError(t, err)
	assert.False(t, res.Resolved)
	assert.Equal(t, "", res.Outcome)
}

func TestMarketWatcher_WarmWatchlist(t *testing.T) {
	var calls int64
	ts := midpointServer(t, map[string]string{"tok1": "0.10", "tok2": "0.90"}, &calls)
	defer ts.Close()

	m := NewMarketWatcher(ts.URL, []string{"tok1", "tok2"})
	m.warmWatchlist()
	assert.Equal(t, int64(2), atomic.LoadInt64(&calls))

	// warmed prices are answered without another fetch
	_, err := m.Midpoint("tok1")
	assert.NoError(t, err)
	_, err = m.Midpoint("tok2")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), atomic.LoadInt64(&calls))
}
