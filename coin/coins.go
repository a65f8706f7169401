package coin

import (
	"sort"
	"strings"

	"github.com/iov-one/tranche/errors"
)

// Coins is a set of coins. Only one instance of each currency is allowed
// and the set is always kept sorted by the ticker name.
type Coins []*Coin

// CombineCoins creates a Coins set out of given coins, making sure they
// are sorted and that there is a single instance of each currency.
func CombineCoins(cs ...Coin) (Coins, error) {
	var res Coins
	for _, c := range cs {
		var err error
		res, err = res.Add(c)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Clone returns a copy that can be safely modified.
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	res := make(Coins, len(cs))
	for i, c := range cs {
		res[i] = c.Clone()
	}
	return res
}

// Add modifies the set to contain given coin value combined with what
// was stored before. Zero value results are removed from the set.
func (cs Coins) Add(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs, nil
	}
	idx := sort.Search(len(cs), func(i int) bool {
		return cs[i].Ticker >= c.Ticker
	})
	if idx < len(cs) && cs[idx].Ticker == c.Ticker {
		sum, err := cs[idx].Add(c)
		if err != nil {
			return nil, err
		}
		res := cs.Clone()
		if sum.IsZero() {
			res = append(res[:idx], res[idx+1:]...)
		} else {
			res[idx] = &sum
		}
		return res, nil
	}

	res := make(Coins, 0, len(cs)+1)
	res = append(res, cs[:idx].Clone()...)
	res = append(res, &c)
	res = append(res, cs[idx:].Clone()...)
	return res, nil
}

// Subtract modifies the set to contain what was stored before, less the
// given coin value.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	return cs.Add(c.Negative())
}

// Combine adds all coins from the other set to this one.
func (cs Coins) Combine(o Coins) (Coins, error) {
	res := cs
	for _, c := range o {
		var err error
		res, err = res.Add(*c)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Amount returns the amount stored for the given ticker, zero if the
// currency is not present in the set.
func (cs Coins) Amount(ticker string) Coin {
	for _, c := range cs {
		if c.Ticker == ticker {
			return *c
		}
	}
	return Coin{Ticker: ticker}
}

// Contains returns true if there is at least given amount of the coin
// currency in the set.
func (cs Coins) Contains(c Coin) bool {
	if c.IsZero() {
		return true
	}
	for _, have := range cs {
		if have.Ticker == c.Ticker {
			return have.IsGTE(c)
		}
	}
	return false
}

// IsPositive returns true if there is at least one coin in the set and
// all coins are positive.
func (cs Coins) IsPositive() bool {
	if len(cs) == 0 {
		return false
	}
	return cs.IsNonNegative()
}

// IsNonNegative returns true if all coins in the set are zero or higher.
func (cs Coins) IsNonNegative() bool {
	for _, c := range cs {
		if !c.IsNonNegative() {
			return false
		}
	}
	return true
}

// Equals returns true if both sets contain the same value.
func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(*o[i]) {
			return false
		}
	}
	return true
}

// Validate ensures the set is sorted, there are no duplicate currencies
// and all coins are valid.
func (cs Coins) Validate() error {
	last := ""
	for _, c := range cs {
		if c == nil {
			return errors.Wrap(errors.ErrEmpty, "nil coin")
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if c.IsZero() {
			return errors.Wrap(errors.ErrAmount, "zero coin in the set")
		}
		if c.Ticker <= last {
			return errors.Wrapf(errors.ErrCurrency, "coins not sorted: %s", c.Ticker)
		}
		last = c.Ticker
	}
	return nil
}

// String provides a human readable representation of the set.
func (cs Coins) String() string {
	if len(cs) == 0 {
		return "(empty)"
	}
	chunks := make([]string, len(cs))
	for i, c := range cs {
		chunks[i] = c.String()
	}
	return strings.Join(chunks, ", ")
}
