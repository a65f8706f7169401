package errors

import (
	"fmt"
	"testing"
)

func TestRegisterRejectsDuplicateCode(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	Register(2, "duplicate of unauthorized")
}

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		kind *Error
		err  error
		want bool
	}{
		"instance of the same error": {
			kind: ErrNotFound,
			err:  ErrNotFound,
			want: true,
		},
		"wrapped instance": {
			kind: ErrNotFound,
			err:  Wrap(ErrNotFound, "gone"),
			want: true,
		},
		"deeply wrapped instance": {
			kind: ErrNotFound,
			err:  Wrap(Wrap(ErrNotFound, "gone"), "sorry"),
			want: true,
		},
		"different error": {
			kind: ErrNotFound,
			err:  ErrUnauthorized,
			want: false,
		},
		"wrapped different error": {
			kind: ErrNotFound,
			err:  Wrap(ErrUnauthorized, "nope"),
			want: false,
		},
		"stdlib error": {
			kind: ErrNotFound,
			err:  fmt.Errorf("not found"),
			want: false,
		},
		"nil error": {
			kind: ErrNotFound,
			err:  nil,
			want: false,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.kind.Is(tc.err); got != tc.want {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(nil, "no error"); err != nil {
		t.Fatalf("wrapping nil must return nil, got %+v", err)
	}
}

func TestWrapPreservesABCICode(t *testing.T) {
	err := Wrapf(ErrAmount, "got %d", -1)
	if got := ABCICode(err); got != ErrAmount.ABCICode() {
		t.Fatalf("want %d, got %d", ErrAmount.ABCICode(), got)
	}
}

func TestABCICodeOfUnknownError(t *testing.T) {
	if got := ABCICode(fmt.Errorf("boom")); got != 1 {
		t.Fatalf("unclassified errors must map to code 1, got %d", got)
	}
	if got := ABCICode(nil); got != 0 {
		t.Fatalf("nil error must map to code 0, got %d", got)
	}
}

func TestRecover(t *testing.T) {
	fail := func() (err error) {
		defer Recover(&err)
		panic("blew up")
	}
	err := fail()
	if !ErrPanic.Is(err) {
		t.Fatalf("want a panic error, got %+v", err)
	}
}
