package gateway

import (
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/Animesh-Parashar/Basis-Zero/schema"
)

const DefaultDeadlineHorizon = time.Hour

// DefaultMaxFee is the per-intent fee cap in base units; it covers the
// gateway's current fee schedule with headroom.
var DefaultMaxFee = big.NewInt(2000)

type Clock func() time.Time

type NonceSource func() *big.Int

// TimeNonce derives a nonce from the wall clock. Two intents built within the
// same nanosecond collide; see the collision note in DESIGN.md.
func TimeNonce() *big.Int {
	return big.NewInt(time.Now().UnixNano())
}

// IntentBuilder assembles burn intents. Pure given its clock and nonce
// source; no I/O.
type IntentBuilder struct {
	now     Clock
	nonce   NonceSource
	horizon time.Duration
}

func NewIntentBuilder(now Clock, nonce NonceSource, horizon time.Duration) *IntentBuilder {
	if now == nil {
		now = time.Now
	}
	if nonce == nil {
		nonce = TimeNonce
	}
	if horizon <= 0 {
		horizon = DefaultDeadlineHorizon
	}
	return &IntentBuilder{now: now, nonce: nonce, horizon: horizon}
}

func (b *IntentBuilder) Build(depositor string, sourceDomain uint32, amount *big.Int, destinationDomain uint32, recipient string, maxFee *big.Int) (schema.BurnIntent, error) {
	if amount == nil || amount.Sign() <= 0 {
		return schema.BurnIntent{}, schema.ErrInvalidAmount
	}
	if maxFee == nil {
		maxFee = big.NewInt(0)
	}
	deadline := b.now().Add(b.horizon).Unix()
	return schema.BurnIntent{
		Depositor:         strings.ToLower(depositor),
		Amount:            amount.String(),
		Nonce:             b.nonce().String(),
		SourceDomain:      sourceDomain,
		DestinationDomain: destinationDomain,
		Recipient:         strings.ToLower(recipient),
		MaxFee:            maxFee.String(),
		Deadline:          strconv.FormatInt(deadline, 10),
	}, nil
}
