package cash

import (
	"github.com/iov-one/tranche"
	"github.com/iov-one/tranche/coin"
	"github.com/iov-one/tranche/errors"
	"github.com/iov-one/tranche/migration"
	"github.com/iov-one/tranche/orm"
	"github.com/iov-one/tranche/store"
)

// BucketName is where we store the balances
const BucketName = "cash"

func init() {
	migration.MustRegister(1, &Set{}, migration.NoModification)
}

var _ orm.CloneableData = (*Set)(nil)

// Validate requires that all coins are in alphabetical order and
// that there is a valid amount of each coin.
func (s *Set) Validate() error {
	if err := s.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	return XCoins(s).Validate()
}

// Copy makes a new set with the same coins.
func (s *Set) Copy() orm.CloneableData {
	return &Set{
		Metadata: s.Metadata.Copy(),
		Coins:    XCoins(s).Clone(),
	}
}

// SetCoins allows us to modify the coins.
func (s *Set) SetCoins(coins coin.Coins) {
	s.Coins = coins
}

// Coinage is any model that contains coins.
type Coinage interface {
	GetCoins() []*coin.Coin
}

// XCoins returns the stored coins cast as the convenience type.
func XCoins(c Coinage) coin.Coins {
	if c == nil {
		return nil
	}
	return coin.Coins(c.GetCoins())
}

// AsCoinage will safely type-cast an orm.Object to Coinage, panics if
// the object holds a different model.
func AsCoinage(obj orm.Object) Coinage {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(Coinage)
}

// AsCoins extracts the coins stored in the given wallet object.
func AsCoins(obj orm.Object) coin.Coins {
	c := AsCoinage(obj)
	return XCoins(c)
}

// NewWallet creates an empty wallet with this address.
// Serves as an object for the bucket.
func NewWallet(key tranche.Address) orm.Object {
	return orm.NewSimpleObj(key, &Set{
		Metadata: &tranche.Metadata{Schema: 1},
	})
}

// WalletWith creates an wallet with a balance.
func WalletWith(key tranche.Address, coins ...*coin.Coin) (orm.Object, error) {
	obj := NewWallet(key)
	err := Concat(AsCoinage(obj), coins)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// Bucket is a type-safe wrapper around orm.Bucket.
type Bucket struct {
	orm.Bucket
}

var _ WalletBucket = Bucket{}

// NewBucket initializes a cash.Bucket with default name.
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, NewWallet(nil)),
	}
}

// GetOrCreate will return the object if found, or create one
// if not.
func (b Bucket) GetOrCreate(db tranche.KVStore, key tranche.Address) (orm.Object, error) {
	obj, err := b.Get(db, key)
	if err == nil && obj == nil {
		obj = NewWallet(key)
	}
	return obj, err
}

// WalletBucket is what we expect to be able to do with wallets.
// The object it returns must support AsSet (only checked runtime :()
type WalletBucket interface {
	GetOrCreate(db tranche.KVStore, key tranche.Address) (orm.Object, error)
	Get(db tranche.ReadOnlyKVStore, key []byte) (orm.Object, error)
	Save(db tranche.KVStore, obj orm.Object) error
}

// ValidateWalletBucket makes sure that it supports AsCoinage objects,
// unfortunately this check is done runtime....
//
// panics on error (meant as a sanity check in init)
func ValidateWalletBucket(bucket WalletBucket) {
	// runtime type-check the bucket....
	db := store.MemStore()
	key := tranche.NewAddress([]byte("foo"))
	obj, err := bucket.GetOrCreate(db, key)
	if err != nil {
		panic(err)
	}
	if obj == nil || obj.Value() == nil {
		panic("doesn't create anything")
	}
	// this panics if bad type
	AsCoinage(obj)
}

// Concat combines the coins to make sure they are sorted and rounded
// off, with no duplicates or 0 values.
func Concat(wallet Coinage, coins coin.Coins) error {
	joint, err := XCoins(wallet).Combine(coins)
	if err != nil {
		return err
	}
	if err := joint.Validate(); err != nil {
		return err
	}

	switch w := wallet.(type) {
	case *Set:
		w.SetCoins(joint)
	default:
		return errors.Wrapf(errors.ErrType, "cannot update coins on %T", wallet)
	}
	return nil
}
