// Package humantime formats durations as human readable strings.
package humantime

import "fmt"

// Option configures Format.
type Option func(*options)

type options struct {
	ndigits      int
	oneHourDigit bool
}

// WithDecimalDigits sets the number of digits printed after the decimal
// point for the seconds part. Default is 0, which also suppresses the
// decimal point.
func WithDecimalDigits(n int) Option {
	return func(o *options) { o.ndigits = n }
}

// WithOneHourDigit prints a single hour digit for durations under ten
// hours (nine hours prints as 9:00:00 instead of 09:00:00). Two digits
// are always used at ten hours and beyond.
func WithOneHourDigit() Option {
	return func(o *options) { o.oneHourDigit = true }
}

// Format renders a duration in seconds as HH:MM:SS, optionally followed
// by a fractional part.
//
//	Format(10.55)                          // "00:00:11"
//	Format(10.55, WithDecimalDigits(2))    // "00:00:10.55"
//	Format(10.55, WithOneHourDigit())      // "0:00:11"
//	Format(86400, WithOneHourDigit())      // "24:00:00"
//
// Negative durations are rejected.
func Format(seconds float64, opts ...Option) (string, error) {
	if seconds < 0 {
		return "", fmt.Errorf("seconds=%f is negative, expected nonnegative value", seconds)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	whole := int64(seconds)
	hh := whole / 3600
	mm := (whole / 60) % 60
	ss := seconds - float64((whole/60)*60)

	hhStr := fmt.Sprintf("%02d", hh)
	if o.oneHourDigit {
		hhStr = fmt.Sprintf("%01d", hh)
	}

	ssStr := fmt.Sprintf("%02.0f", ss)
	if o.ndigits > 0 {
		ssStr = fmt.Sprintf("%0*.*f", o.ndigits+3, o.ndigits, ss)
	}

	return fmt.Sprintf("%s:%02d:%s", hhStr, mm, ssStr), nil
}
