package gateway

import (
	"math/big"
	"testing"
	"time"

	"github.com/Animesh-Parashar/Basis-Zero/schema"
	"github.com/stretchr/testify/assert"
)

func TestIntentBuilder_Build(t *testing.T) {
	at := time.Unix(1700000000, 0)
	builder := NewIntentBuilder(
		func() time.Time { return at },
		func() *big.Int { return big.NewInt(42) },
		0, // default one hour horizon
	)

	intent, err := builder.Build("0xDepositorAddressMixedCase", 0, big.NewInt(1000000), 7, "0x1111111111111111111111111111111111111111", DefaultMaxFee)
	assert.NoError(t, err)

	// deadline is exactly T + 3600s
	assert.Equal(t, "1700003600", intent.Deadline)
	assert.Equal(t, "42", intent.Nonce)
	assert.Equal(t, "1000000", intent.Amount)
	assert.Equal(t, "2000", intent.MaxFee)
	assert.Equal(t, uint32(0), intent.SourceDomain)
	assert.Equal(t, uint32(7), intent.DestinationDomain)
	assert.Equal(t, "0xdepositoraddressmixedcase", intent.Depositor)
}

func TestIntentBuilder_RejectsNonPositiveAmount(t *testing.T) {
	builder := NewIntentBuilder(nil, nil, 0)

	_, err := builder.Build("0xdepositor", 0, big.NewInt(0), 7, "0xrecipient", nil)
	assert.ErrorIs(t, err, schema.ErrInvalidAmount)

	_, err = builder.Build("0xdepositor", 0, big.NewInt(-5), 7, "0xrecipient", nil)
	assert.ErrorIs(t, err, schema.ErrInvalidAmount)

	_, err = builder.Build("0xdepositor", 0, nil, 7, "0xrecipient", nil)
	assert.ErrorIs(t, err, schema.ErrInvalidAmount)
}

func TestTimeNonceMonotone(t *testing.T) {
	a := TimeNonce()
	time.Sleep(time.Microsecond)
	b := TimeNonce()
	assert.True(t, b.Cmp(a) > 0)
}
