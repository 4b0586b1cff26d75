// Command vscript checks version scripts and answers visibility queries
// against them without running a link.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ianlancetaylor/demangle"
	"github.com/ii64/psvlink/lib/vscript"
	"github.com/spf13/cobra"
)

var errInvalid = errors.New("invalid version script")

type options struct {
	diagDir string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "vscript",
		Short: "Inspect GNU ld version scripts",
		Long: `vscript parses version scripts the way psvlink does.

Examples:
  vscript check exports.ver
  vscript match exports.ver module_start _ZN4demo3addEii`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&opts.diagDir, "diag-dir", "", "Save a copy of scripts that fail to parse into this directory")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print the parsed pattern sets")

	root.AddCommand(&cobra.Command{
		Use:   "check FILE",
		Short: "Parse a version script and report the first error",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vs, err := load(cmd, opts, args[0])
			if err != nil {
				return err
			}
			if opts.verbose {
				fmt.Fprintln(cmd.OutOrStdout(), vs)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
			}
			return nil
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "match FILE SYMBOL...",
		Short: "Print whether each symbol is exported or hidden",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			vs, err := load(cmd, opts, args[0])
			if err != nil {
				return err
			}
			for _, sym := range args[1:] {
				verdict := "hidden"
				if vs.IsExported(sym) {
					verdict = "exported"
				}
				name := sym
				if d := demangle.Filter(sym, demangle.NoClones); d != sym {
					name = fmt.Sprintf("%s (%s)", sym, d)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", verdict, name)
			}
			return nil
		},
	})
	return root
}

func load(cmd *cobra.Command, opts *options, path string) (*vscript.Script, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	vs, err := vscript.Parse(src)
	if err == nil {
		return vs, nil
	}
	fmt.Fprintln(cmd.ErrOrStderr(), vscript.Describe(path, src, err))
	if opts.diagDir != "" {
		if dump, derr := vscript.DumpSource(opts.diagDir, src); derr == nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "source saved to %s\n", dump)
		}
	}
	return nil, fmt.Errorf("%s: %w", path, errInvalid)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
