/*
 * report.go, part of tcparse.
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

// Package report summarizes the composition of a tcparse.Table and prints it
// as plain text, as a table or as markdown.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rmera/tcparse"
)

// Format is the output format of a report.
type Format int

const (
	Text Format = iota
	Table
	Markdown
)

func (f Format) String() string {
	switch f {
	case Table:
		return "table"
	case Markdown:
		return "markdown"
	default:
		return "text"
	}
}

// ParseFormat returns the Format named s: "text", "table" or "markdown" ("md").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "":
		return Text, nil
	case "table":
		return Table, nil
	case "markdown", "md":
		return Markdown, nil
	}
	return Text, fmt.Errorf("unknown report format %q, use text, table or markdown", s)
}

// ElementRow is the average content of one element in the whole system.
type ElementRow struct {
	Element string
	Molar   float64 //mole fraction
	Mass    float64 //g per 100 g
	Range   float64 //max-min of the mole fraction over the rows
}

// PhaseRow is the average content of one element in one phase.
type PhaseRow struct {
	Element string
	Mean    float64
	Range   float64
}

// PhaseSummary is the average composition of one phase.
type PhaseSummary struct {
	Phase string
	Rows  []PhaseRow
}

// Summary is the composition report for a table.
type Summary struct {
	Elements []string
	Phases   []string
	Rows     []ElementRow
	PerPhase []PhaseSummary //empty unless requested
}

// Summarize computes the report for t using the atomic masses of e
// (the standard ones if e is nil). If withPhases is true, the average
// composition of every phase is included.
func Summarize(e *tcparse.Engine, t *tcparse.Table, withPhases bool) (*Summary, error) {
	if e == nil {
		e = tcparse.NewEngine(nil)
	}
	comp, ranges, err := e.Composition(t, true)
	if err != nil {
		return nil, fmt.Errorf("computing composition: %w", err)
	}
	mass, err := e.MolarToMass100g(comp)
	if err != nil {
		return nil, fmt.Errorf("computing mass composition: %w", err)
	}
	S := &Summary{Elements: t.Elements(), Phases: t.Phases()}
	for _, el := range S.Elements {
		S.Rows = append(S.Rows, ElementRow{Element: el, Molar: comp[el], Mass: mass[el], Range: ranges[el]})
	}
	if !withPhases {
		return S, nil
	}
	for _, ph := range S.Phases {
		pcomp, pranges, err := e.PhaseComposition(t, ph, true)
		if err != nil {
			return nil, fmt.Errorf("computing composition of %s: %w", ph, err)
		}
		P := PhaseSummary{Phase: ph}
		for _, el := range S.Elements {
			P.Rows = append(P.Rows, PhaseRow{Element: el, Mean: pcomp[el], Range: pranges[el]})
		}
		S.PerPhase = append(S.PerPhase, P)
	}
	return S, nil
}

// WriteText writes the report in the classic text layout:
//
//	Elements:  [CR FE]
//
//	Phases:  [LIQUID FCC_A1]
//
//	Composition:
//	el            mol |       g/100g [mol(max-min)]
//	CR       0.200000 |    18.881849 [    0.000000]
func (S *Summary) WriteText(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintln(&b, "Elements: ", S.Elements)
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "Phases: ", S.Phases)
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "Composition:")
	fmt.Fprintf(&b, "%-4s %12s | %12s [%-12s]\n", "el", "mol", "g/100g", "mol(max-min)")
	for _, r := range S.Rows {
		fmt.Fprintf(&b, "%-4s % 12.6f | % 12.6f [% 12.6f]\n", r.Element, r.Molar, r.Mass, r.Range)
	}
	for _, P := range S.PerPhase {
		fmt.Fprintln(&b)
		fmt.Fprintf(&b, "Phase %s:\n", P.Phase)
		fmt.Fprintf(&b, "%-4s %12s [%-12s]\n", "el", "mol(avg)", "mol(max-min)")
		for _, r := range P.Rows {
			fmt.Fprintf(&b, "%-4s % 12.6f [% 12.6f]\n", r.Element, r.Mean, r.Range)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func newTable(w io.Writer, header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	style := table.StyleLight
	style.Format.Header = text.FormatDefault //keep "g/100g" as it is
	t.SetStyle(style)
	t.AppendHeader(header)
	configs := make([]table.ColumnConfig, 0, len(header))
	for i := 2; i <= len(header); i++ {
		configs = append(configs, table.ColumnConfig{Number: i, Align: text.AlignRight})
	}
	t.SetColumnConfigs(configs)
	return t
}

func render(t table.Writer, f Format) {
	if f == Markdown {
		t.RenderMarkdown()
		return
	}
	t.Render()
}

func num(f float64) string { return fmt.Sprintf("%.6f", f) }

// WriteTable writes the report as a box-drawn table (Table) or as
// markdown (Markdown). Text is the same as WriteText.
func (S *Summary) WriteTable(w io.Writer, f Format) error {
	if f == Text {
		return S.WriteText(w)
	}
	if _, err := fmt.Fprintf(w, "Elements: %s\nPhases: %s\n\n", strings.Join(S.Elements, ", "), strings.Join(S.Phases, ", ")); err != nil {
		return err
	}
	t := newTable(w, table.Row{"el", "mol", "g/100g", "mol(max-min)"})
	for _, r := range S.Rows {
		t.AppendRow(table.Row{r.Element, num(r.Molar), num(r.Mass), num(r.Range)})
	}
	render(t, f)
	for _, P := range S.PerPhase {
		if _, err := fmt.Fprintf(w, "\nPhase %s:\n", P.Phase); err != nil {
			return err
		}
		t := newTable(w, table.Row{"el", "mol(avg)", "mol(max-min)"})
		for _, r := range P.Rows {
			t.AppendRow(table.Row{r.Element, num(r.Mean), num(r.Range)})
		}
		render(t, f)
	}
	return nil
}

// Write writes the report in the format f.
func (S *Summary) Write(w io.Writer, f Format) error {
	return S.WriteTable(w, f)
}
