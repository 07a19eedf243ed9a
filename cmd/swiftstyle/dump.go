package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"swiftstyle/internal/diag"
	"swiftstyle/internal/diagfmt"
	"swiftstyle/internal/source"
	"swiftstyle/internal/syntax"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <tokens|tree> <file.swift>",
	Short: "Dump the token stream or syntax tree of one file",
	Long:  "Dump shows what the lexer and parser make of a file, which is mostly useful when a rule fires somewhere unexpected.",
	Args:  cobra.ExactArgs(2),
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().Bool("json", false, "emit JSON instead of text")
}

func runDump(cmd *cobra.Command, args []string) error {
	what, path := args[0], args[1]
	switch what {
	case "tokens", "tree":
	default:
		return fmt.Errorf("unknown dump target %q (expected tokens or tree)", what)
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to get json flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	useColor, err := resolveColor(cmd)
	if err != nil {
		return err
	}

	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "swiftstyle: cannot read %s: %v\n", path, err)
		return silentExit(cmd, 2)
	}
	file := fs.Get(id)

	bag := diag.NewBag(maxDiagnostics)
	parsed := syntax.ParseFile(fs, file, syntax.Options{Reporter: diag.BagReporter{Bag: bag}})

	var dumpErr error
	switch {
	case what == "tokens" && asJSON:
		dumpErr = diagfmt.TokensJSON(os.Stdout, parsed.Tree.Tokens)
	case what == "tokens":
		dumpErr = diagfmt.Tokens(os.Stdout, parsed.Tree.Tokens, fs)
	case asJSON:
		dumpErr = diagfmt.TreeJSON(os.Stdout, parsed.Tree)
	default:
		dumpErr = diagfmt.Tree(os.Stdout, parsed.Tree, fs)
	}
	if dumpErr != nil {
		return dumpErr
	}

	if bag.Len() > 0 {
		bag.Sort()
		if err := diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{Color: useColor}); err != nil {
			return err
		}
	}
	if parsed.Failed {
		return silentExit(cmd, 2)
	}
	return nil
}
