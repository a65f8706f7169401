/*
Package errors implements custom error interfaces for the framework.

The idea is to reuse as many errors from this package as possible and
define custom package errors only when absolutely needed. Errors are
categorized by root error kinds, each carrying a unique code. Test an
error kind with the root error Is method:

  if errors.ErrNotFound.Is(err) { ... }

Each error instance should be created by wrapping a root error, which
attaches a stack trace once at the lowest frame:

  return errors.Wrap(errors.ErrInput, "negative amount")
*/
package errors
