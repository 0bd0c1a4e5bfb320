package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"onion/internal/diag"
	"onion/internal/diagfmt"
)

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Load and check every declared class",
	Long:  `check reads the declaration files of a project (onion.toml or the given directory) and reports semantic diagnostics per unit`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Bool("with-notes", true, "include diagnostic notes")
	checkCmd.Flags().String("path-mode", "auto", "file path display (auto|absolute|relative|basename)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	modeStr, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, ok := diagfmt.ParsePathMode(modeStr)
	if !ok {
		return fmt.Errorf("unsupported path mode %q", modeStr)
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	s, bag, err := openSession(cmd, args)
	if err != nil {
		return err
	}
	defer s.close(errOut)
	if bag != nil {
		if err := s.printBag(out, bag); err != nil {
			return err
		}
		return &exitError{code: 1}
	}

	res, err := s.run(cmd.Context(), errOut)
	if err != nil {
		return err
	}

	if format == "json" {
		var payload diagfmt.DiagnosticsOutput
		opts := diagfmt.JSONOpts{PathMode: pathMode, BaseDir: s.dir, IncludeNotes: withNotes}
		for _, u := range res.Units {
			diagfmt.Collect(&payload, u.Name, u.Bag, s.files, opts)
		}
		if err := diagfmt.WriteJSON(out, &payload); err != nil {
			return err
		}
	} else {
		opts := s.prettyOpts()
		opts.PathMode = pathMode
		opts.ShowNotes = withNotes
		var errs, warns int
		for _, u := range res.Units {
			if err := diagfmt.Pretty(out, u.Bag, s.files, opts); err != nil {
				return err
			}
			for _, d := range u.Bag.Items() {
				switch d.Severity {
				case diag.SevError:
					errs++
				case diag.SevWarning:
					warns++
				}
			}
		}
		if !s.quiet {
			fmt.Fprintf(out, "checked %d units: %d errors, %d warnings\n", len(res.Units), errs, warns)
		}
	}

	if res.HasErrors() {
		return &exitError{code: 1}
	}
	return nil
}
