package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zmwangx/docpub/internal/colorout"
	"github.com/zmwangx/docpub/internal/model"
	"github.com/zmwangx/docpub/internal/urlgrep"
)

// urlgrepFlags holds the flag values for the urlgrep command.
type urlgrepFlags struct {
	urls               []string
	base               string
	pattern            string
	preserveDuplicates bool
}

// NewURLGrepCommand creates the "urlgrep" cobra command.
func NewURLGrepCommand() *cobra.Command {
	flags := &urlgrepFlags{}

	cmd := &cobra.Command{
		Use:   "urlgrep [FILE...]",
		Short: "Extract URLs from HTML documents",
		Long: `Extract URLs from HTML documents.

Documents come from files named on the command line, remote URLs given
with --url (repeatable), or stdin when neither is given. Extracted URLs
are resolved to absolute form and printed one per line.

A failure to open or fetch one source is reported and the remaining
sources are still processed; the exit status is non-zero if any source
failed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runURLGrep(cmd, args, flags)
		},
	}

	cmd.Flags().StringArrayVarP(&flags.urls, "url", "u", nil, "URL of an HTML document to parse (repeatable; \"http://\" is attached if the scheme is left out)")
	cmd.Flags().StringVarP(&flags.base, "base", "b", "", "Base URL for resolving relative URLs in files or stdin")
	cmd.Flags().StringVarP(&flags.pattern, "pattern", "p", "", "Regexp that extracted URLs must match")
	cmd.Flags().BoolVarP(&flags.preserveDuplicates, "preserve-duplicates", "d", false, "Do not deduplicate URLs within a document")

	return cmd
}

func runURLGrep(cmd *cobra.Command, files []string, flags *urlgrepFlags) error {
	ctx := cmd.Context()
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	var opts []urlgrep.Option
	if flags.pattern != "" {
		opts = append(opts, urlgrep.WithPattern(flags.pattern))
	}
	if flags.base != "" {
		opts = append(opts, urlgrep.WithBase(flags.base))
	}
	if flags.preserveDuplicates {
		opts = append(opts, urlgrep.WithDuplicates())
	}

	// Source annotations only make sense when there is more than one
	// source to tell apart.
	annotate := verbose && len(flags.urls)+len(files) >= 2

	if len(flags.urls) == 0 && len(files) == 0 {
		urls, err := urlgrep.FromReader(cmd.InOrStdin(), opts...)
		if err != nil {
			return model.WrapCLIError(model.ExitFailure, "failed to parse stdin", err)
		}
		printURLs(stdout, urls)
		return nil
	}

	failed := 0
	for _, u := range flags.urls {
		urls, err := urlgrep.FromURL(ctx, u, opts...)
		if err != nil {
			colorout.Error("failed to get %q: %v", u, err)
			failed++
			continue
		}
		if annotate && len(urls) > 0 {
			fmt.Fprintf(stderr, "# from %q:\n", u)
		}
		printURLs(stdout, urls)
	}
	for _, path := range files {
		urls, err := urlgrep.FromFile(path, opts...)
		if err != nil {
			colorout.Error("failed to open %q: %v", path, err)
			failed++
			continue
		}
		if annotate && len(urls) > 0 {
			fmt.Fprintf(stderr, "# from %q:\n", path)
		}
		printURLs(stdout, urls)
	}

	if failed > 0 {
		return model.NewCLIError(model.ExitFailure,
			fmt.Sprintf("failed to process %d of %d sources", failed, len(flags.urls)+len(files)))
	}
	return nil
}

func printURLs(w io.Writer, urls []string) {
	for _, u := range urls {
		fmt.Fprintln(w, u)
	}
}
