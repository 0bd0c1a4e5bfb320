package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"onion/internal/dispatch"
)

var dispatchCmd = &cobra.Command{
	Use:   "dispatch [dir]",
	Short: "Show or export per-class dispatch tables",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDispatch,
}

func init() {
	dispatchCmd.Flags().StringSlice("class", nil, "only the named classes (repeatable)")
	dispatchCmd.Flags().String("out", "", "write the tables as msgpack to this file")
}

func runDispatch(cmd *cobra.Command, args []string) error {
	classes, err := cmd.Flags().GetStringSlice("class")
	if err != nil {
		return fmt.Errorf("failed to get class flag: %w", err)
	}
	outPath, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	s, bag, err := openSession(cmd, args)
	if err != nil {
		return err
	}
	defer s.close(errOut)
	if bag != nil {
		if err := s.printBag(errOut, bag); err != nil {
			return err
		}
		return &exitError{code: 1}
	}

	res, err := s.run(cmd.Context(), errOut)
	if err != nil {
		return err
	}
	for _, u := range res.Units {
		if err := s.printBag(errOut, u.Bag); err != nil {
			return err
		}
	}

	tables, missing := filterTables(res.Dispatch, classes)
	if len(missing) > 0 {
		return fmt.Errorf("no dispatch table for %s", strings.Join(missing, ", "))
	}
	if outPath != "" {
		if err := dispatch.WriteFile(outPath, tables); err != nil {
			return err
		}
		if !s.quiet {
			fmt.Fprintf(out, "wrote %d tables to %s\n", len(tables), outPath)
		}
	} else {
		renderTables(out, tables, s.color)
	}

	if res.HasErrors() {
		return &exitError{code: 1}
	}
	return nil
}

// filterTables keeps tables named in classes, in table order. An empty
// filter keeps everything.
func filterTables(tables []*dispatch.Table, classes []string) ([]*dispatch.Table, []string) {
	if len(classes) == 0 {
		return tables, nil
	}
	want := make(map[string]bool, len(classes))
	for _, c := range classes {
		want[strings.TrimSpace(c)] = true
	}
	var out []*dispatch.Table
	for _, t := range tables {
		if want[t.Class] {
			out = append(out, t)
			delete(want, t.Class)
		}
	}
	var missing []string
	for _, c := range classes {
		if want[strings.TrimSpace(c)] {
			missing = append(missing, strings.TrimSpace(c))
		}
	}
	return out, missing
}

func kindLabel(t *dispatch.Table) string {
	switch {
	case t.Interface:
		return "interface"
	case t.Abstract:
		return "abstract class"
	}
	return "class"
}

// renderTables prints one block per class:
//
//	demo.Circle (class)
//	  #  slot            owner       impl
//	  0  area() double   demo.Shape  demo.Circle
func renderTables(w io.Writer, tables []*dispatch.Table, colorize bool) {
	title := lipgloss.NewStyle().Bold(true)
	header := lipgloss.NewStyle().Faint(true)
	missing := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	style := func(s lipgloss.Style, text string) string {
		if !colorize {
			return text
		}
		return s.Render(text)
	}

	for i, t := range tables {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%s)\n", style(title, t.Class), kindLabel(t))
		if len(t.Slots) == 0 {
			fmt.Fprintln(w, "  no slots")
			continue
		}
		rows := [][]string{{"#", "slot", "owner", "impl"}}
		for _, s := range t.Slots {
			impl := s.Impl
			if impl == "" {
				impl = "-"
			}
			rows = append(rows, []string{strconv.FormatUint(uint64(s.Index), 10), s.Signature(), s.Owner, impl})
		}
		widths := make([]int, len(rows[0]))
		for _, row := range rows {
			for c, cell := range row {
				widths[c] = max(widths[c], runewidth.StringWidth(cell))
			}
		}
		for r, row := range rows {
			cells := make([]string, len(row))
			for c, cell := range row {
				padded := cell
				if c < len(row)-1 {
					padded = runewidth.FillRight(cell, widths[c])
				}
				switch {
				case r == 0:
					padded = style(header, padded)
				case c == 3 && cell == "-" && !t.Interface && !t.Abstract:
					padded = style(missing, padded)
				}
				cells[c] = padded
			}
			fmt.Fprintf(w, "  %s\n", strings.Join(cells, "  "))
		}
	}
}
