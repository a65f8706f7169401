/*
Package tranche defines all common interfaces that tie the framework
together, as well as implementations of some of the simpler components
(when interfaces would be too much overhead).

Extensions live under the x package and are wired into an application
through the Registry interface. Every state transition is expressed as a
Msg wrapped in a Tx, routed to a Handler that reads and writes a KVStore.

We pass context through context.Context between the application,
middleware and handlers. Common values, such as block time and chain ID,
have accessors defined in this package. Each extension may add its own
keys to enrich the context with specific data.

There should exist two functions for every XYZ of type T that we want to
support in Context:

  WithXYZ(Context, T) Context
  XYZ(Context) (val T, ok bool)
*/
package tranche
