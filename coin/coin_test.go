package coin

import (
	"math"
	"testing"

	"github.com/iov-one/tranche/errors"
	"github.com/stretchr/testify/assert"
)

func TestCoinValidate(t *testing.T) {
	cases := map[string]struct {
		coin    Coin
		wantErr error
	}{
		"valid coin":       {coin: NewCoin(42, "IOV")},
		"valid long code":  {coin: NewCoin(42, "WEED")},
		"zero is valid":    {coin: NewCoin(0, "IOV")},
		"negative amounts": {coin: NewCoin(-42, "IOV")},
		"lowercase ticker": {coin: NewCoin(1, "iov"), wantErr: errors.ErrCurrency},
		"short ticker":     {coin: NewCoin(1, "AB"), wantErr: errors.ErrCurrency},
		"no ticker":        {coin: NewCoin(1, ""), wantErr: errors.ErrCurrency},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.coin.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.ErrCurrency.Is(err), "%+v", err)
			}
		})
	}
}

func TestCoinAdd(t *testing.T) {
	a := NewCoin(40, "IOV")
	b := NewCoin(2, "IOV")
	sum, err := a.Add(b)
	assert.NoError(t, err)
	assert.Equal(t, NewCoin(42, "IOV"), sum)

	_, err = a.Add(NewCoin(1, "ETH"))
	assert.True(t, errors.ErrCurrency.Is(err))

	// Adding to a zero coin adopts the other ticker.
	sum, err = NewCoin(0, "").Add(b)
	assert.NoError(t, err)
	assert.Equal(t, b, sum)
}

func TestCoinAddOverflow(t *testing.T) {
	a := NewCoin(math.MaxInt64, "IOV")
	_, err := a.Add(NewCoin(1, "IOV"))
	assert.True(t, errors.ErrOverflow.Is(err), "%+v", err)

	b := NewCoin(math.MinInt64, "IOV")
	_, err = b.Subtract(NewCoin(1, "IOV"))
	assert.True(t, errors.ErrOverflow.Is(err), "%+v", err)
}

func TestCoinCompare(t *testing.T) {
	assert.True(t, NewCoin(2, "IOV").IsGTE(NewCoin(1, "IOV")))
	assert.True(t, NewCoin(2, "IOV").IsGTE(NewCoin(2, "IOV")))
	assert.False(t, NewCoin(1, "IOV").IsGTE(NewCoin(2, "IOV")))

	assert.True(t, NewCoin(1, "IOV").IsPositive())
	assert.False(t, NewCoin(0, "IOV").IsPositive())
	assert.True(t, NewCoin(0, "IOV").IsNonNegative())
	assert.False(t, NewCoin(-1, "IOV").IsNonNegative())
}

func TestCoinString(t *testing.T) {
	assert.Equal(t, "42 IOV", NewCoin(42, "IOV").String())
}
