package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zmwangx/docpub/internal/humansize"
	"github.com/zmwangx/docpub/internal/model"
)

// humansizeFlags holds the flag values for the humansize command.
type humansizeFlags struct {
	prefix string
	unit   string
	space  bool
	numfmt bool
}

// NewHumansizeCommand creates the "humansize" cobra command.
func NewHumansizeCommand() *cobra.Command {
	flags := &humansizeFlags{}

	cmd := &cobra.Command{
		Use:   "humansize [SIZE...]",
		Short: "Convert sizes in bytes to human readable form",
		Long: `Convert sizes in number of bytes to human readable form.

Sizes are taken from the command line, or — when none are given — one
per line from stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHumansize(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.prefix, "prefix", "p", string(humansize.IECI), "Prefix system: iec-i, iec, or si")
	cmd.Flags().StringVarP(&flags.unit, "unit", "u", "B", "Unit attached to the prefix; pass an empty string to suppress it")
	cmd.Flags().BoolVarP(&flags.space, "space", "s", false, "Insert a space between the number and the prefix")
	cmd.Flags().BoolVarP(&flags.numfmt, "numfmt", "n", false, "Use the number format of coreutils numfmt(1)")

	return cmd
}

func runHumansize(cmd *cobra.Command, args []string, flags *humansizeFlags) error {
	prefix, err := humansize.ParsePrefix(flags.prefix)
	if err != nil {
		return model.WrapCLIError(model.ExitFailure, "invalid --prefix", err)
	}

	opts := []humansize.Option{humansize.WithPrefix(prefix), humansize.WithUnit(flags.unit)}
	if flags.space {
		opts = append(opts, humansize.WithSpace())
	}
	if flags.numfmt {
		opts = append(opts, humansize.WithNumfmt())
	}

	sizes := args
	if len(sizes) == 0 {
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				sizes = append(sizes, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return model.WrapCLIError(model.ExitFailure, "failed to read stdin", err)
		}
	}

	for _, s := range sizes {
		size, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return model.NewCLIError(model.ExitFailure, fmt.Sprintf("invalid size %q: expected a nonnegative integer", s))
		}
		formatted, err := humansize.Format(size, opts...)
		if err != nil {
			return model.WrapCLIError(model.ExitFailure, "failed to format size", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatted)
	}
	return nil
}
