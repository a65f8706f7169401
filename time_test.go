package tranche

import (
	"testing"
	"time"

	"github.com/iov-one/tranche/errors"
	"github.com/iov-one/tranche/tranchetest/assert"
)

func TestUnixTimeUnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		raw      string
		wantErr  *errors.Error
		wantTime UnixTime
	}{
		"number": {
			raw:      `1234567890`,
			wantTime: 1234567890,
		},
		"zero": {
			raw:      `0`,
			wantTime: 0,
		},
		"string time": {
			raw:      `"2009-02-13T23:31:30Z"`,
			wantTime: 1234567890,
		},
		"negative number": {
			raw:     `-1`,
			wantErr: errors.ErrInput,
		},
		"time before epoch": {
			raw:     `"1969-12-31T23:59:59Z"`,
			wantErr: errors.ErrInput,
		},
		"invalid format": {
			raw:     `"not a time"`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got UnixTime
			err := got.UnmarshalJSON([]byte(tc.raw))
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.wantTime, got)
		})
	}
}

func TestUnixTimeAdd(t *testing.T) {
	now := UnixTime(1000)
	assert.Equal(t, UnixTime(1060), now.Add(time.Minute))
	assert.Equal(t, UnixTime(940), now.Add(-time.Minute))

	// Anything below a second is dropped.
	assert.Equal(t, now, now.Add(999*time.Millisecond))
}

func TestAsUnixTime(t *testing.T) {
	stdtime := time.Date(2009, 2, 13, 23, 31, 30, 0, time.UTC)
	unix := AsUnixTime(stdtime)
	assert.Equal(t, UnixTime(1234567890), unix)
	if !unix.Time().Equal(stdtime) {
		t.Fatalf("round trip failure: %s", unix.Time())
	}
}

func TestUnixDurationUnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		raw     string
		wantErr *errors.Error
		wantDur UnixDuration
	}{
		"number of seconds": {
			raw:     `600`,
			wantDur: 600,
		},
		"human readable": {
			raw:     `"10m"`,
			wantDur: 600,
		},
		"mixed units": {
			raw:     `"1h30m"`,
			wantDur: 5400,
		},
		"not a duration": {
			raw:     `"over nine thousand"`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got UnixDuration
			err := got.UnmarshalJSON([]byte(tc.raw))
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.wantDur, got)
		})
	}
}

func TestUnixDurationValidate(t *testing.T) {
	assert.Nil(t, UnixDuration(0).Validate())
	assert.Nil(t, UnixDuration(123).Validate())
	assert.IsErr(t, errors.ErrState, UnixDuration(-1).Validate())
}
