/*
Package x contains some standard extensions

Extensions implement common functionality (handlers, decorators,
etc.) and can be combined together to construct an application.

All sub-packages are various extensions, useful to build applications,
but not necessary to use the framework. All of them provide handlers
that can be wired into a router.

This top-level package contains some utility functions that are shared
between the extensions, like the authentication interface, which allows
extensions to authenticate transaction signers without a dependency on
the concrete authentication implementation.
*/
package x

import (
	"github.com/iov-one/tranche"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system,
// rather than hardcoding x/auth for all extensions.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled,
	// you may want GetAddresses helper
	GetConditions(tranche.Context) []tranche.Condition
	// HasAddress checks if any condition matches this address
	HasAddress(tranche.Context, tranche.Address) bool
}

// MultiAuth chains together many Authenticators
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticators
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all Conditions from all Authenticators
func (m MultiAuth) GetConditions(ctx tranche.Context) []tranche.Condition {
	var res []tranche.Condition
	for _, impl := range m.impls {
		add := impl.GetConditions(ctx)
		if len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasAddress returns true if any Authenticator support this
func (m MultiAuth) HasAddress(ctx tranche.Context, addr tranche.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses wraps the GetConditions method of any Authenticator
func GetAddresses(ctx tranche.Context, auth Authenticator) []tranche.Address {
	perms := auth.GetConditions(ctx)
	addrs := make([]tranche.Address, len(perms))
	for i, p := range perms {
		addrs[i] = p.Address()
	}
	return addrs
}

// MainSigner returns the first signed if any, otherwise nil
func MainSigner(ctx tranche.Context, auth Authenticator) tranche.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// HasAllAddresses returns true if all elements in required are
// also in context.
func HasAllAddresses(ctx tranche.Context, auth Authenticator, required []tranche.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}

// HasNAddresses returns true if at least n elements in requested are
// also in context.
func HasNAddresses(ctx tranche.Context, auth Authenticator, requested []tranche.Address, n int) bool {
	// Special case: is this an error???
	if n <= 0 {
		return true
	}
	for _, r := range requested {
		if auth.HasAddress(ctx, r) {
			n--
			if n == 0 {
				return true
			}
		}
	}
	return false
}
