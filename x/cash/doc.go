/*
Package cash defines a simple implementation of sending coins
between multi-signature wallets.

There is no logic in the coins, except that the balance of any
wallet cannot go below zero.

Wallets are stored in a cash bucket and indexed by their address.
Other extensions that wish to move tokens should do so through the
Controller interface rather than modifying wallets directly.
*/
package cash
