package cash

import (
	"github.com/iov-one/tranche"
	"github.com/iov-one/tranche/coin"
	"github.com/iov-one/tranche/errors"
	"github.com/iov-one/tranche/orm"
)

// Controller is the functionality needed by other handlers to move
// tokens between accounts. BaseController should work plenty fine, but
// you can add other logic if so desired
type Controller interface {
	CoinMover
	Balance(tranche.KVStore, tranche.Address) (coin.Coins, error)
}

// CoinMover is an interface for moving coins between accounts.
type CoinMover interface {
	// MoveCoins removes funds from the source account and adds them to
	// the destination account.
	MoveCoins(store tranche.KVStore, source tranche.Address, destination tranche.Address, amount coin.Coin) error
}

// BaseController implements Controller interface, using WalletBucket
// as the storage engine. Wallet must return something that supports
// AsSet.
type BaseController struct {
	bucket WalletBucket
}

var _ Controller = BaseController{}

// NewController returns a base controller implementation.
func NewController(bucket WalletBucket) BaseController {
	ValidateWalletBucket(bucket)
	return BaseController{bucket: bucket}
}

// Balance returns the amount of funds stored under given account address.
func (c BaseController) Balance(store tranche.KVStore, src tranche.Address) (coin.Coins, error) {
	state, err := c.bucket.Get(store, src)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get account state")
	}
	if state == nil {
		return nil, errors.Wrap(errors.ErrNotFound, "no account")
	}
	return AsCoins(state), nil
}

// MoveCoins moves the given amount from source to destination.
// It returns an error if the source account does not exist or does not
// have sufficient funds.
func (c BaseController) MoveCoins(store tranche.KVStore,
	source tranche.Address, destination tranche.Address,
	amount coin.Coin) error {

	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount: %#v", &amount)
	}

	sender, err := c.bucket.Get(store, source)
	if err != nil {
		return err
	}
	if sender == nil {
		return errors.Wrapf(errors.ErrEmpty, "source %s", source)
	}

	if !AsCoins(sender).Contains(amount) {
		return errors.Wrapf(errors.ErrAmount, "insufficient funds %s", amount)
	}

	recipient, err := c.bucket.GetOrCreate(store, destination)
	if err != nil {
		return err
	}

	if err := subtract(sender, amount); err != nil {
		return err
	}
	if err := add(recipient, amount); err != nil {
		return err
	}
	if err := c.bucket.Save(store, sender); err != nil {
		return err
	}
	return c.bucket.Save(store, recipient)
}

func add(obj orm.Object, amount coin.Coin) error {
	return Concat(AsCoinage(obj), coin.Coins{&amount})
}

func subtract(obj orm.Object, amount coin.Coin) error {
	neg := amount.Negative()
	return Concat(AsCoinage(obj), coin.Coins{&neg})
}
