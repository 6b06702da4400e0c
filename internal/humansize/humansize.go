// Package humansize converts sizes in bytes to human readable form.
//
// Two output modes are supported. The default mode prints at least
// three significant figures, rounding upward whenever rounding is
// needed (1001 bytes is 1.001 kilobytes and therefore prints as
// 1.01KB, not 1.00KB). The numfmt mode mimics the number format of
// coreutils numfmt(1) — also used by ls(1) and du(1) — printing at
// most one decimal digit, still rounding upward.
//
// All arithmetic is exact (math/big); no floating point is involved,
// so results are stable across the full uint64 range.
package humansize

import (
	"fmt"
	"math/big"
)

// Prefix selects the prefix system used for formatting.
type Prefix string

const (
	// IECI uses binary prefixes with the "i" marker: Ki (2^10), Mi (2^20), ...
	IECI Prefix = "iec-i"

	// IEC uses binary prefixes without the marker: K (2^10), M (2^20), ...
	IEC Prefix = "iec"

	// SI uses metric prefixes: K (10^3), M (10^6), ...
	SI Prefix = "si"
)

// prefixTable lists the unit prefixes of each system, starting from the
// first nontrivial one (Ki or K).
var prefixTable = map[Prefix][]string{
	IECI: {"Ki", "Mi", "Gi", "Ti", "Pi", "Ei", "Zi", "Yi"},
	IEC:  {"K", "M", "G", "T", "P", "E", "Z", "Y"},
	SI:   {"K", "M", "G", "T", "P", "E", "Z", "Y"},
}

// ParsePrefix converts a string to a Prefix.
// Returns an error if the string does not name a known prefix system.
func ParsePrefix(s string) (Prefix, error) {
	p := Prefix(s)
	if _, ok := prefixTable[p]; !ok {
		return "", fmt.Errorf("invalid prefix system %q (valid: iec-i, iec, si)", s)
	}
	return p, nil
}

// Option configures Format.
type Option func(*options)

type options struct {
	prefix Prefix
	unit   string
	space  bool
	numfmt bool
}

// WithPrefix sets the prefix system. Default is IECI.
func WithPrefix(p Prefix) Option {
	return func(o *options) { o.prefix = p }
}

// WithUnit sets the unit attached after the prefix. Default is "B";
// pass the empty string to leave the unit out.
func WithUnit(unit string) Option {
	return func(o *options) { o.unit = unit }
}

// WithSpace inserts a space between the number and the prefixed unit.
func WithSpace() Option {
	return func(o *options) { o.space = true }
}

// WithNumfmt switches to the numfmt(1)-compatible output mode.
func WithNumfmt() Option {
	return func(o *options) { o.numfmt = true }
}

// Format converts a size in bytes to human readable form.
//
//	Format(314)                       // "314B"
//	Format(3141)                      // "3.07KiB"
//	Format(31415, WithPrefix(IEC))    // "30.7KB"
//	Format(314159, WithPrefix(SI))    // "315KB"
//	Format(3141592, WithUnit(""))     // "3.00Mi"
//	Format(31415926, WithSpace())     // "30.0 MiB"
//	Format(31415926, WithNumfmt())    // "30MiB"
//
// Although usually used for sizes in bytes, any nonnegative quantity in
// any unit can be formatted with SI or IEC prefixes this way.
func Format(size uint64, opts ...Option) (string, error) {
	o := options{prefix: IECI, unit: "B"}
	for _, opt := range opts {
		opt(&o)
	}

	units, ok := prefixTable[o.prefix]
	if !ok {
		return "", fmt.Errorf("invalid prefix system %q (valid: iec-i, iec, si)", o.prefix)
	}

	sep := ""
	if o.space {
		sep = " "
	}

	mult := uint64(1024)
	if o.prefix == SI {
		mult = 1000
	}
	if size < mult {
		return fmt.Sprintf("%d%s%s", size, sep, o.unit), nil
	}

	num := new(big.Int).SetUint64(size)
	den := big.NewInt(1)
	multBig := new(big.Int).SetUint64(mult)

	for _, unitPrefix := range units {
		den = new(big.Int).Mul(den, multBig)

		// The current value is num/den. Move on to the next prefix while
		// it is still at or above the multiplier.
		limit := new(big.Int).Mul(den, multBig)
		if num.Cmp(limit) >= 0 {
			continue
		}

		fullUnit := sep + unitPrefix + o.unit
		if s, done := formatScaled(num, den, multBig, fullUnit, o.numfmt); done {
			return s, nil
		}
		// Rounding up reached the multiplier itself; the next prefix
		// picks the value up as 1.00 (or 1.0 in numfmt mode).
	}

	// Beyond the largest prefix: print with one decimal digit.
	q := ceilScaled(num, den, 1)
	return fmt.Sprintf("%s%s%s%s", fixed(q, 1), sep, units[len(units)-1], o.unit), nil
}

// formatScaled renders num/den — already known to be below the
// multiplier — with the precision rules of the selected mode. It
// reports done=false when rounding to a whole number lands exactly on
// the multiplier, in which case the caller must promote to the next
// unit prefix.
func formatScaled(num, den, mult *big.Int, fullUnit string, numfmt bool) (s string, done bool) {
	if !numfmt {
		// At least three significant figures: two decimal digits while
		// the rounded value is below 10, one while below 100, then none.
		if q := ceilScaled(num, den, 2); q.Cmp(big.NewInt(1000)) < 0 {
			return fixed(q, 2) + fullUnit, true
		}
		if q := ceilScaled(num, den, 1); q.Cmp(big.NewInt(1000)) < 0 {
			return fixed(q, 1) + fullUnit, true
		}
		q := ceilScaled(num, den, 0)
		if q.Cmp(mult) == 0 {
			return "", false
		}
		return fixed(q, 0) + fullUnit, true
	}

	// numfmt mode: at most one decimal digit.
	if q := ceilScaled(num, den, 1); q.Cmp(big.NewInt(100)) < 0 {
		return fixed(q, 1) + fullUnit, true
	}
	q := ceilScaled(num, den, 0)
	if q.Cmp(mult) == 0 {
		return "", false
	}
	return fixed(q, 0) + fullUnit, true
}

// ceilScaled returns ceil(num/den * 10^ndigits).
func ceilScaled(num, den *big.Int, ndigits int) *big.Int {
	n := new(big.Int).Mul(num, pow10(ndigits))
	q, r := new(big.Int).QuoRem(n, den, new(big.Int))
	if r.Sign() > 0 {
		q.Add(q, big.NewInt(1))
	}
	return q
}

// fixed renders a scaled integer q as a decimal with ndigits digits
// after the point (no point when ndigits is 0).
func fixed(q *big.Int, ndigits int) string {
	if ndigits == 0 {
		return q.String()
	}
	ip, fp := new(big.Int).QuoRem(q, pow10(ndigits), new(big.Int))
	return fmt.Sprintf("%s.%0*d", ip.String(), ndigits, fp.Int64())
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}
