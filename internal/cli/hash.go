package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zmwangx/docpub/internal/checksum"
	"github.com/zmwangx/docpub/internal/model"
	"github.com/zmwangx/docpub/internal/pbar"
)

// NewHashCommand creates the "hash" cobra command.
func NewHashCommand() *cobra.Command {
	var algorithm string

	cmd := &cobra.Command{
		Use:   "hash [FILE...]",
		Short: "Compute file digests",
		Long: `Compute the digest of each named file, or of stdin when no files are
given. Files are read in chunks, so arbitrarily large inputs are fine;
a progress bar is shown for large files when stderr is a terminal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHash(cmd, args, algorithm)
		},
	}

	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", checksum.DefaultAlgorithm,
		"Hash algorithm: "+strings.Join(checksum.Algorithms(), ", "))

	return cmd
}

func runHash(cmd *cobra.Command, files []string, algorithm string) error {
	stdout := cmd.OutOrStdout()

	if len(files) == 0 {
		digest, err := checksum.Reader(cmd.InOrStdin(), checksum.WithAlgorithm(algorithm))
		if err != nil {
			return model.WrapCLIError(model.ExitFailure, "failed to hash stdin", err)
		}
		fmt.Fprintf(stdout, "%s  -\n", digest)
		return nil
	}

	for _, path := range files {
		digest, err := hashFile(path, algorithm)
		if err != nil {
			return model.WrapCLIError(model.ExitFailure, fmt.Sprintf("failed to hash %q", path), err)
		}
		fmt.Fprintf(stdout, "%s  %s\n", digest, path)
	}
	return nil
}

// hashFile computes a file digest, with a progress bar on stderr when
// the file is large enough for one to be worth watching.
func hashFile(path, algorithm string) (string, error) {
	opts := []checksum.Option{checksum.WithAlgorithm(algorithm)}

	if info, err := os.Stat(path); err == nil && pbar.Auto() && info.Size() > checksum.DefaultChunkSize {
		bar, err := pbar.NewBar(info.Size())
		if err == nil {
			// The bar stays unfinished until the deferred Finish, so
			// neither call can return ErrFinished here.
			opts = append(opts, checksum.WithProgress(func(n int64) { _ = bar.Add(n) }))
			defer func() { _ = bar.Finish() }()
		}
	}

	return checksum.File(path, opts...)
}
