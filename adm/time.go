// SPDX-License-Identifier: EPL-2.0

package adm

import (
	"fmt"
	"math/big"
	"regexp"
	"strconv"
)

const decimalDigits = 100000

// FormatTime renders t seconds as an ADM time.
func FormatTime(t *big.Rat) (string, error) {
	if t.Sign() < 0 {
		return "", fmt.Errorf("%w: %s", ErrNegativeTime, t.RatString())
	}

	whole := new(big.Int).Quo(t.Num(), t.Denom())
	frac := new(big.Rat).Sub(t, new(big.Rat).SetInt(whole))

	secs := whole.Int64()
	prefix := fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs/60%60, secs%60)

	scaled := new(big.Rat).Mul(frac, big.NewRat(decimalDigits, 1))
	if scaled.IsInt() {
		return fmt.Sprintf("%s.%05d", prefix, scaled.Num().Int64()), nil
	}

	return fmt.Sprintf("%s.%05dS%05d", prefix, frac.Num().Int64(), frac.Denom().Int64()), nil
}

var timeRe = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})\.(\d{1,9})(?:S(\d+))?$`)

// ParseTime reads both ADM time forms.
func ParseTime(s string) (*big.Rat, error) {
	m := timeRe.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	var parts [3]int64
	for i := range parts {
		parts[i], _ = strconv.ParseInt(m[i+1], 10, 64)
	}
	t := big.NewRat(parts[0]*3600+parts[1]*60+parts[2], 1)

	var frac *big.Rat
	if m[5] == "" {
		var ok bool
		frac, ok = new(big.Rat).SetString("0." + m[4])
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTime, s)
		}
	} else {
		num, _ := strconv.ParseInt(m[4], 10, 64)
		den, _ := strconv.ParseInt(m[5], 10, 64)
		if den == 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTime, s)
		}
		frac = big.NewRat(num, den)
	}

	return t.Add(t, frac), nil
}

// seconds formats an interpolation length or similar plain duration.
func seconds(t *big.Rat) string {
	f, _ := t.Float64()
	return strconv.FormatFloat(f, 'f', -1, 64)
}
