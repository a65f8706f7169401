package coin

import (
	"testing"

	"github.com/iov-one/tranche/errors"
	"github.com/stretchr/testify/assert"
)

func TestCombineCoins(t *testing.T) {
	cs, err := CombineCoins(
		NewCoin(7, "IOV"),
		NewCoin(1, "ETH"),
		NewCoin(3, "IOV"),
	)
	assert.NoError(t, err)
	assert.NoError(t, cs.Validate())
	assert.Equal(t, int64(10), cs.Amount("IOV").Amount)
	assert.Equal(t, int64(1), cs.Amount("ETH").Amount)
	// The set is kept sorted by ticker.
	assert.Equal(t, "ETH", cs[0].Ticker)
}

func TestCoinsAddRemovesZero(t *testing.T) {
	cs, err := CombineCoins(NewCoin(5, "IOV"))
	assert.NoError(t, err)

	cs, err = cs.Subtract(NewCoin(5, "IOV"))
	assert.NoError(t, err)
	assert.Equal(t, 0, len(cs))
}

func TestCoinsAddDoesNotMutate(t *testing.T) {
	cs, err := CombineCoins(NewCoin(5, "IOV"))
	assert.NoError(t, err)

	more, err := cs.Add(NewCoin(3, "IOV"))
	assert.NoError(t, err)
	assert.Equal(t, int64(8), more.Amount("IOV").Amount)
	assert.Equal(t, int64(5), cs.Amount("IOV").Amount)
}

func TestCoinsContains(t *testing.T) {
	cs, err := CombineCoins(NewCoin(5, "IOV"))
	assert.NoError(t, err)

	assert.True(t, cs.Contains(NewCoin(5, "IOV")))
	assert.True(t, cs.Contains(NewCoin(1, "IOV")))
	assert.False(t, cs.Contains(NewCoin(6, "IOV")))
	assert.False(t, cs.Contains(NewCoin(1, "ETH")))
}

func TestCoinsValidate(t *testing.T) {
	cases := map[string]struct {
		coins   Coins
		wantErr *errors.Error
	}{
		"empty set": {
			coins: nil,
		},
		"valid set": {
			coins: Coins{NewCoinp(1, "ETH"), NewCoinp(2, "IOV")},
		},
		"unsorted": {
			coins:   Coins{NewCoinp(2, "IOV"), NewCoinp(1, "ETH")},
			wantErr: errors.ErrCurrency,
		},
		"duplicate currency": {
			coins:   Coins{NewCoinp(1, "IOV"), NewCoinp(2, "IOV")},
			wantErr: errors.ErrCurrency,
		},
		"zero coin": {
			coins:   Coins{NewCoinp(0, "IOV")},
			wantErr: errors.ErrAmount,
		},
		"nil coin": {
			coins:   Coins{nil},
			wantErr: errors.ErrEmpty,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.coins.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, tc.wantErr.Is(err), "%+v", err)
			}
		})
	}
}
