/*
 * root.go, part of tcparse.
 *
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

// Package cli provides the command-line interface for tcparse.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/rmera/tcparse"
	"github.com/rmera/tcparse/internal/config"
	"github.com/rmera/tcparse/report"
	"github.com/rmera/tcparse/tcexport"
	"github.com/rmera/tcparse/tcplot"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version information (set at build time).
var Version = "0.1.0"

// NewRootCmd creates and returns the root command. colorMode receives the
// color setting once it is known, so the caller can print errors accordingly.
func NewRootCmd(colorMode *string) *cobra.Command {
	var cfgFile string
	rootCmd := &cobra.Command{
		Use:   "tcparse [flags] <in file> [out file]",
		Short: "Convert Thermo-Calc output to CSV and report compositions",
		Long: `tcparse reads the text output of a Thermo-Calc calculation, merges its
phase regions into one table sorted by temperature, completes the phase
amounts in mol and in g/100g, and writes the table as CSV (or XLSX).

The out file defaults to the in file without ".txt", plus "_out.csv".
Names ending in .zst or .gz are read and written compressed.`,
		Version:       Version,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, used, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			if colorMode != nil {
				*colorMode = cfg.Color
			}
			logger := config.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
			if used != "" {
				logger.Debug("using config file", "file", used)
			}
			ctx := config.WithLogger(cmd.Context(), logger)
			out := DefaultOutput(args[0])
			if len(args) > 1 {
				out = args[1]
			}
			return Run(ctx, cfg, args[0], out, cmd.OutOrStdout())
		},
	}
	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	fs := rootCmd.Flags()
	fs.StringVar(&cfgFile, "config", "", "config file (default: ./tcparse.yaml)")
	fs.BoolP("summary", "s", false, "print the composition report and convert")
	fs.BoolP("report-only", "r", false, "just print the composition report")
	fs.BoolP("tabs", "t", false, "use tabs as delimiters in the output")
	fs.BoolP("plot", "p", false, "plot phase amounts and compositions vs temperature")
	fs.String("separator", config.DefaultSeparator, "field separator for the output")
	fs.String("keep", config.DefaultKeep, "row kept for temperatures in several phase regions (first|last|both)")
	fs.Bool("no-temperature", false, "leave the T column out of the table")
	fs.Bool("no-derive", false, "don't compute the missing phase amount units")
	fs.Bool("phases", false, "add the composition of each phase to the report")
	fs.StringP("format", "o", config.DefaultFormat, "report format (text|table|markdown)")
	fs.String("color", config.DefaultColor, "colorize errors (auto|on|off)")
	fs.BoolP("verbose", "v", false, "verbose output")

	_ = rootCmd.RegisterFlagCompletionFunc("keep", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"first", "last", "both"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "table", "markdown"}, cobra.ShellCompDirectiveNoFileComp
	})
	return rootCmd
}

// DefaultOutput returns the output file name for the input file in.
func DefaultOutput(in string) string {
	return strings.ReplaceAll(in, ".txt", "") + "_out.csv"
}

// plotBase returns out without its compression and table extensions.
func plotBase(out string) string {
	for _, suf := range []string{".zst", ".zstd", ".gz"} {
		out = strings.TrimSuffix(out, suf)
	}
	for _, suf := range []string{".csv", ".xlsx"} {
		out = strings.TrimSuffix(out, suf)
	}
	return out
}

// Run parses in and, according to cfg, writes the table to out, prints the
// composition report to stdout and plots the table.
func Run(ctx context.Context, cfg *config.Config, in, out string, stdout io.Writer) error {
	logger := config.GetLogger(ctx)
	policy, err := cfg.Policy()
	if err != nil {
		return err
	}
	format, err := cfg.ReportFormat()
	if err != nil {
		return err
	}
	engine := tcparse.NewEngine(cfg.AtomicMasses())
	T, err := tcparse.ParseFile(in,
		tcparse.KeepTemperature(!cfg.NoTemperature),
		tcparse.DuplicatePolicy(policy),
		tcparse.DeriveUnits(!cfg.NoDerive),
		tcparse.WithEngine(engine),
		tcparse.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Debug("parsed", "file", in, "rows", T.Len(), "columns", len(T.Names()))
	if !cfg.ReportOnly {
		logger.Info("writing table", "file", out, "separator", string(cfg.Sep()))
		if err := tcexport.Export(T, out, cfg.Sep()); err != nil {
			return err
		}
	}
	if !cfg.Summary && !cfg.ReportOnly && !cfg.Plot {
		return nil
	}
	S, err := report.Summarize(engine, T, cfg.Phases)
	if err != nil {
		return err
	}
	if err := S.Write(stdout, format); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	if cfg.Plot {
		written, err := tcplot.All(T, plotBase(out))
		for _, v := range written {
			logger.Info("plot written", "file", v)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// PrintError writes err to w, in red if mode is "on", or if it is "auto" and w is a terminal.
// With verbose, the chain of calls recorded in the error is printed too.
func PrintError(w io.Writer, err error, mode string, verbose bool) {
	c := color.New(color.FgRed, color.Bold)
	if mode == "on" || (mode == "auto" && isTerminal(w)) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	c.Fprint(w, "Error:")
	fmt.Fprintf(w, " %v\n", err)
	var terr tcparse.Error
	if verbose && errors.As(err, &terr) {
		if trail := terr.Decorate(""); len(trail) > 0 {
			fmt.Fprintf(w, "  in: %s\n", strings.Join(trail, " <- "))
		}
	}
}

// Execute runs the root command with args, and returns the exit status.
func Execute(args []string, stdout, stderr io.Writer) int {
	mode := config.DefaultColor
	rootCmd := NewRootCmd(&mode)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.Execute(); err != nil {
		verbose, _ := rootCmd.Flags().GetBool("verbose")
		if mode == config.DefaultColor {
			mode, _ = rootCmd.Flags().GetString("color")
		}
		PrintError(stderr, err, mode, verbose)
		return 1
	}
	return 0
}
