package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"fs-inspect-server/internal/codec"
	"fs-inspect-server/internal/config"
	"fs-inspect-server/internal/inspect"
	"fs-inspect-server/internal/models"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	matchColor  = color.New(color.FgRed, color.Bold)
	dimColor    = color.New(color.Faint)
)

// setupTerminal disables color when stdout is not a terminal.
func setupTerminal() {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		color.NoColor = true
	}
}

// oneShotInspector builds an inspector for a single CLI invocation,
// defaulting the root to the current directory.
func oneShotInspector(cmd *cobra.Command, opts *rootOptions) (*inspect.Inspector, *config.Config, error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Root == "" {
		cfg.Root = "."
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	setupLogger(cfg.LogLevel)
	setupTerminal()

	inspector, err := buildInspector(cfg)
	if err != nil {
		return nil, nil, err
	}
	return inspector, cfg, nil
}

func runRequest(inspector *inspect.Inspector, req models.ReadRequest, asJSON bool) error {
	result, inspectErr := inspector.FsRead(req)
	if inspectErr != nil {
		return inspectErr
	}
	if asJSON {
		encoded, err := codec.EncodeResult(result)
		if err != nil {
			return err
		}
		fmt.Println(string(encoded))
		return nil
	}
	printResult(result)
	return nil
}

func newLinesCmd(opts *rootOptions) *cobra.Command {
	var (
		start  int
		end    int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "lines <path>",
		Short: "Read a range of lines from a file",
		Long: "Read a range of lines from a file. Line numbers are 1-based; " +
			"negative values count back from the end of the file, so --start=-10 " +
			"reads the last ten lines.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inspector, _, err := oneShotInspector(cmd, opts)
			if err != nil {
				return err
			}
			req := models.ReadRequest{Path: args[0], Mode: models.ModeLine}
			if cmd.Flags().Changed("start") {
				req.StartLine = &start
			}
			if cmd.Flags().Changed("end") {
				req.EndLine = &end
			}
			return runRequest(inspector, req, asJSON)
		},
	}

	cmd.Flags().IntVar(&start, "start", 0, "first line of the range (negative counts from the end)")
	cmd.Flags().IntVar(&end, "end", 0, "last line of the range, inclusive (negative counts from the end)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the wire-encoded result")
	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var (
		depth  uint
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list <path>",
		Short: "List directory contents up to a depth",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inspector, _, err := oneShotInspector(cmd, opts)
			if err != nil {
				return err
			}
			req := models.ReadRequest{Path: args[0], Mode: models.ModeDirectory, Depth: depth}
			return runRequest(inspector, req, asJSON)
		},
	}

	cmd.Flags().UintVar(&depth, "depth", 0, "traversal depth (0 means immediate children)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the wire-encoded result")
	return cmd
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var (
		contextLines uint
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "search <path> <pattern>",
		Short: "Search a file or directory tree with a regular expression",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			inspector, _, err := oneShotInspector(cmd, opts)
			if err != nil {
				return err
			}
			req := models.ReadRequest{Path: args[0], Mode: models.ModeSearch, Pattern: args[1]}
			if cmd.Flags().Changed("context") {
				req.ContextLines = &contextLines
			}
			return runRequest(inspector, req, asJSON)
		},
	}

	cmd.Flags().UintVar(&contextLines, "context", models.DefaultContextLines, "lines of context around each match")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the wire-encoded result")
	return cmd
}

func printResult(result models.ReadResult) {
	switch r := result.(type) {
	case *models.LineResult:
		headerColor.Printf("%d of %d lines\n", r.LinesReturned, r.TotalLines)
		fmt.Println(r.Content)
	case *models.DirectoryResult:
		headerColor.Printf("%d entries\n", r.TotalCount)
		for _, entry := range r.Entries {
			if entry.IsDir {
				fmt.Printf("%s/\n", entry.Path)
			} else {
				fmt.Printf("%s ", entry.Path)
				dimColor.Printf("(%d bytes)\n", entry.Size)
			}
		}
	case *models.SearchResult:
		headerColor.Printf("%d matches\n", r.TotalMatches)
		for _, m := range r.Matches {
			for i, line := range m.ContextBefore {
				dimColor.Printf("%s:%d  %s\n", m.FilePath, m.LineNumber-len(m.ContextBefore)+i, line)
			}
			fmt.Printf("%s:%d: ", m.FilePath, m.LineNumber)
			matchColor.Println(m.LineContent)
			for i, line := range m.ContextAfter {
				dimColor.Printf("%s:%d  %s\n", m.FilePath, m.LineNumber+1+i, line)
			}
		}
	}
}
