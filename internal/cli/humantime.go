package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zmwangx/docpub/internal/humantime"
	"github.com/zmwangx/docpub/internal/model"
)

// humantimeFlags holds the flag values for the humantime command.
type humantimeFlags struct {
	decimalDigits int
	oneHourDigit  bool
}

// NewHumantimeCommand creates the "humantime" cobra command.
func NewHumantimeCommand() *cobra.Command {
	flags := &humantimeFlags{}

	cmd := &cobra.Command{
		Use:   "humantime SECONDS",
		Short: "Convert durations in seconds to human readable form",
		Long: `Convert a duration in seconds to the form HH:MM:SS.

By default the duration is rounded to whole seconds; --decimal-digits
enables fractional digits (2 when the option is given without a
value).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHumantime(cmd, args[0], flags)
		},
	}

	cmd.Flags().IntVarP(&flags.decimalDigits, "decimal-digits", "d", 0, "Digits printed after the decimal point")
	// --decimal-digits without a value means 2 digits.
	cmd.Flags().Lookup("decimal-digits").NoOptDefVal = "2"
	cmd.Flags().BoolVarP(&flags.oneHourDigit, "one-hour-digit", "1", false, "Print a single hour digit for durations under ten hours")

	return cmd
}

func runHumantime(cmd *cobra.Command, arg string, flags *humantimeFlags) error {
	seconds, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return model.NewCLIError(model.ExitFailure, fmt.Sprintf("invalid duration %q: expected a number of seconds", arg))
	}

	opts := []humantime.Option{humantime.WithDecimalDigits(flags.decimalDigits)}
	if flags.oneHourDigit {
		opts = append(opts, humantime.WithOneHourDigit())
	}

	formatted, err := humantime.Format(seconds, opts...)
	if err != nil {
		return model.WrapCLIError(model.ExitFailure, "failed to format duration", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatted)
	return nil
}
