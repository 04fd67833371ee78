// SPDX-License-Identifier: EPL-2.0

package adm

import (
	"errors"
	"math/big"
	"testing"
)

func TestFormatTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   *big.Rat
		want string
	}{
		{in: big.NewRat(0, 1), want: "00:00:00.00000"},
		{in: big.NewRat(1, 2), want: "00:00:00.50000"},
		{in: big.NewRat(2, 25), want: "00:00:00.08000"},
		{in: big.NewRat(1, 24), want: "00:00:00.00001S00024"},
		{in: big.NewRat(25, 24), want: "00:00:01.00001S00024"},
		{in: big.NewRat(3661*4+1, 4), want: "01:01:01.25000"},
		{in: big.NewRat(7, 48), want: "00:00:00.00007S00048"},
	}

	for _, tt := range tests {
		got, err := FormatTime(tt.in)
		if err != nil {
			t.Fatalf("FormatTime(%s): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("FormatTime(%s) = %q, want %q", tt.in, got, tt.want)
		}

		back, err := ParseTime(got)
		if err != nil {
			t.Fatalf("ParseTime(%q): %v", got, err)
		}
		if back.Cmp(tt.in) != 0 {
			t.Errorf("ParseTime(%q) = %s, want %s", got, back, tt.in)
		}
	}
}

func TestFormatTime_Negative(t *testing.T) {
	t.Parallel()

	if _, err := FormatTime(big.NewRat(-1, 24)); !errors.Is(err, ErrNegativeTime) {
		t.Errorf("err = %v, want %v", err, ErrNegativeTime)
	}
}

func TestParseTime_Invalid(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "1.5", "00:00:00", "00:00:00.1S0", "aa:bb:cc.00000"} {
		if _, err := ParseTime(in); !errors.Is(err, ErrInvalidTime) {
			t.Errorf("ParseTime(%q) err = %v, want %v", in, err, ErrInvalidTime)
		}
	}
}
