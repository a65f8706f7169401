package coin

import (
	"fmt"
	"regexp"

	"github.com/iov-one/tranche/errors"
)

// IsCC is the RegExp to ensure valid currency codes
var IsCC = regexp.MustCompile(`^[A-Z]{3,4}$`).MatchString

// NewCoin creates a new coin object
func NewCoin(amount int64, ticker string) Coin {
	return Coin{
		Amount: amount,
		Ticker: ticker,
	}
}

// NewCoinp returns a pointer to a new coin.
func NewCoinp(amount int64, ticker string) *Coin {
	c := NewCoin(amount, ticker)
	return &c
}

// ID returns a coin ticker name.
func (c Coin) ID() string {
	return c.Ticker
}

// Add combines two coins of the same currency. This method can fail if
// the currencies differ or the result would overflow the coin value.
func (c Coin) Add(o Coin) (Coin, error) {
	// If any of the coins is zero, it has no currency enforcement.
	if c.IsZero() && c.Ticker == "" {
		c.Ticker = o.Ticker
	}
	if o.IsZero() && o.Ticker == "" {
		o.Ticker = c.Ticker
	}

	if !c.SameType(o) {
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "adding %s to %s", o.Ticker, c.Ticker)
	}

	amount, err := add64(c.Amount, o.Amount)
	if err != nil {
		return Coin{}, err
	}
	return Coin{Ticker: c.Ticker, Amount: amount}, nil
}

// Subtract given amount.
func (c Coin) Subtract(o Coin) (Coin, error) {
	return c.Add(o.Negative())
}

// Negative returns the opposite coin value.
//   c.Add(c.Negative()).IsZero() == true
func (c Coin) Negative() Coin {
	return Coin{
		Ticker: c.Ticker,
		Amount: -c.Amount,
	}
}

// Compare will check values of two coins of the same currency. It returns
// -1, 0 or 1 depending on the order of the values. It panics on
// a currency mismatch as those values are not comparable.
func (c Coin) Compare(o Coin) int {
	if !c.SameType(o) {
		panic(fmt.Sprintf("comparing %s to %s", c.Ticker, o.Ticker))
	}
	switch {
	case c.Amount < o.Amount:
		return -1
	case c.Amount > o.Amount:
		return 1
	default:
		return 0
	}
}

// Equals returns true if all fields are identical.
func (c Coin) Equals(o Coin) bool {
	return c.Ticker == o.Ticker && c.Amount == o.Amount
}

// IsZero returns true if the value of the coin is zero.
func (c Coin) IsZero() bool {
	return c.Amount == 0
}

// IsPositive returns true if the value is greater than 0.
func (c Coin) IsPositive() bool {
	return c.Amount > 0
}

// IsNonNegative returns true if the value is 0 or higher.
func (c Coin) IsNonNegative() bool {
	return c.Amount >= 0
}

// IsGTE returns true if the value is equal or greater than the value of
// the other coin. It panics on a currency mismatch.
func (c Coin) IsGTE(o Coin) bool {
	return c.Compare(o) >= 0
}

// SameType returns true if both coins are of the same currency.
func (c Coin) SameType(o Coin) bool {
	return c.Ticker == o.Ticker
}

// Clone provides an independent copy of a coin pointer.
func (c *Coin) Clone() *Coin {
	return &Coin{
		Ticker: c.Ticker,
		Amount: c.Amount,
	}
}

// Validate ensures the coin is in a valid format.
func (c Coin) Validate() error {
	if !IsCC(c.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid currency: %s", c.Ticker)
	}
	return nil
}

// String provides a human readable representation of the coin.
func (c Coin) String() string {
	return fmt.Sprintf("%d %s", c.Amount, c.Ticker)
}

// add64 adds two int64 values and errors out on an overflow.
func add64(a, b int64) (int64, error) {
	sum := a + b
	switch {
	case b > 0 && sum < a:
		return 0, errors.Wrap(errors.ErrOverflow, "addition")
	case b < 0 && sum > a:
		return 0, errors.Wrap(errors.ErrOverflow, "subtraction")
	}
	return sum, nil
}
