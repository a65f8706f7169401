package cash

import (
	"github.com/iov-one/tranche"
	"github.com/iov-one/tranche/coin"
	"github.com/iov-one/tranche/errors"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file
type Initializer struct{}

var _ tranche.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts tranche.Options, kv tranche.KVStore) error {
	accounts := []struct {
		Address tranche.Address `json:"address"`
		Coins   coin.Coins      `json:"coins"`
	}{}
	if err := opts.ReadOptions("cash", &accounts); err != nil {
		return err
	}
	bucket := NewBucket()
	for i, account := range accounts {
		if err := account.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
		wallet, err := WalletWith(account.Address, account.Coins...)
		if err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
		if err := bucket.Save(kv, wallet); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
	}
	return nil
}
