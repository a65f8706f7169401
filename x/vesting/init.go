package vesting

import (
	"github.com/iov-one/tranche"
	"github.com/iov-one/tranche/coin"
	"github.com/iov-one/tranche/errors"
	"github.com/iov-one/tranche/orm"
	"github.com/iov-one/tranche/x/cash"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file
type Initializer struct{}

var _ tranche.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial vesting grants from genesis and save
// them to the database. The granted tokens are credited directly to the
// module controlled accounts.
func (Initializer) FromGenesis(opts tranche.Options, kv tranche.KVStore) error {
	grants := []struct {
		Owner       tranche.Address      `json:"owner"`
		Beneficiary tranche.Address      `json:"beneficiary"`
		Amount      coin.Coin            `json:"amount"`
		StartTime   tranche.UnixTime     `json:"start_time"`
		CliffOffset tranche.UnixDuration `json:"cliff_offset"`
		Duration    tranche.UnixDuration `json:"duration"`
		Revocable   bool                 `json:"revocable"`
		Memo        string               `json:"memo"`
	}{}
	if err := opts.ReadOptions("vesting", &grants); err != nil {
		return err
	}

	bucket := NewBucket()
	seq := orm.NewSequence(BucketName, "id")
	wallets := cash.NewBucket()

	for i, g := range grants {
		id, err := seq.NextVal(kv)
		if err != nil {
			return errors.Wrapf(err, "grant #%d", i)
		}
		acc := &VestingAccount{
			Metadata:    &tranche.Metadata{Schema: 1},
			Owner:       g.Owner,
			Beneficiary: g.Beneficiary,
			Ticker:      g.Amount.Ticker,
			TotalAmount: g.Amount.Amount,
			StartTime:   g.StartTime,
			CliffOffset: g.CliffOffset,
			Duration:    g.Duration,
			Revocable:   g.Revocable,
			Address:     Condition(id).Address(),
			Memo:        g.Memo,
		}
		if _, err := bucket.Put(kv, id, acc); err != nil {
			return errors.Wrapf(err, "grant #%d", i)
		}
		wallet, err := cash.WalletWith(acc.Address, &g.Amount)
		if err != nil {
			return errors.Wrapf(err, "grant #%d", i)
		}
		if err := wallets.Save(kv, wallet); err != nil {
			return errors.Wrapf(err, "grant #%d", i)
		}
	}
	return nil
}
