package kairos

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fatih/color"
	"github.com/rodaine/table"
)

// ruleWidth is the width of the horizontal rules bounding the report.
const ruleWidth = 100

// Render produces the timing report: a fixed-width table with one row
// per timer in depth-first, children-before-siblings order. A row's
// label is the timer's note (or name), indented by the configured
// indent width times the tree depth; the accumulated CPU and wall
// seconds are printed with 4 decimals and carry the same indentation
// prefix, so nested figures align visually with their label.
//
// verbose bounds the expanded depth: a timer's children appear only
// when verbose exceeds the timer's depth. Pass [FullDepth] to render
// the whole tree.
func (p *Profiler) Render(verbose int) string {
	var b strings.Builder
	rule := strings.Repeat("-", ruleWidth)

	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "%-49s %-12s %-18s %-18s\n",
		"Entry", "#calls", "CPU time (s)", "Wall time (s)")
	b.WriteString(rule + "\n")
	for i, root := range p.roots {
		if i > 0 && verbose < 0 {
			break
		}
		p.renderTimer(&b, root, 0, verbose)
	}
	b.WriteString(rule + "\n")

	return b.String()
}

func (p *Profiler) renderTimer(b *strings.Builder, idx, level, verbose int) {
	t := &p.arena[idx]
	indent := strings.Repeat(" ", p.indent*level)

	fmt.Fprintf(b, "%-49s %-12d %-18s %-18s\n",
		indent+t.label(), t.ncalls,
		indent+fmt.Sprintf("%.4f", t.cpuAccu),
		indent+fmt.Sprintf("%.4f", t.wallAccu))

	if verbose > level {
		for _, child := range t.children {
			p.renderTimer(b, child, level+1, verbose)
		}
	}
}

// Display writes the report of [Profiler.Render] to the sink. It does
// nothing when no sink is attached.
func (p *Profiler) Display(verbose int) {
	if p.sink == nil {
		return
	}
	io.WriteString(p.sink, p.Render(verbose))
}

// Print prints a colored summary table of the whole timer tree to
// standard output. Entries are listed with their full path and a share
// column giving each timer's fraction of its parent's wall time.
func (p *Profiler) Print() {
	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()

	tbl := table.New(
		"entry",
		"#calls",
		"cpu time (s)",
		"wall time (s)",
		"share",
	)
	tbl.WithHeaderFormatter(headerFmt)

	var total float64
	for _, root := range p.roots {
		total += p.arena[root].wallAccu
	}
	for _, root := range p.roots {
		p.addSummaryRows(tbl, root, total)
	}

	color.New(color.FgGreen).Add(color.Bold).Printf("\n⏱ Profiler summary\n")
	tbl.Print()
}

func (p *Profiler) addSummaryRows(tbl table.Table, idx int, parentWall float64) {
	t := &p.arena[idx]

	share := 0.0
	if parentWall > 0 {
		share = math.Floor(t.wallAccu/parentWall*1000) / 1000
	}
	tbl.AddRow(
		p.fullName(idx),
		t.ncalls,
		fmt.Sprintf("%.4f", t.cpuAccu),
		fmt.Sprintf("%.4f", t.wallAccu),
		share,
	)

	for _, child := range t.children {
		p.addSummaryRows(tbl, child, t.wallAccu)
	}
}

// fullName returns the path of the timer from its top-level ancestor,
// e.g. "load -> index -> merge".
func (p *Profiler) fullName(idx int) string {
	names := []string{}
	for i := idx; i != none; i = p.arena[i].parent {
		names = append(names, p.arena[i].name)
	}

	var b bytes.Buffer
	for i := len(names) - 1; i > 0; i-- {
		b.WriteString(names[i])
		b.WriteString(" -> ")
	}
	b.WriteString(names[0])
	return b.String()
}

func (p *Profiler) String() string {
	b := bytes.NewBufferString("")

	b.WriteString("[Profiler]\n")
	b.WriteString(fmt.Sprintf("indent: %d\n", p.indent))
	if p.current != none {
		b.WriteString(fmt.Sprintf("active: %s\n", p.fullName(p.current)))
	} else {
		b.WriteString("active: none\n")
	}

	b.WriteString("timers:\n")
	for _, root := range p.roots {
		s := strings.Replace("\t"+p.timerString(root), "\n", "\n\t", -1)
		s = s[:len(s)-1]
		b.WriteString(s)
	}

	return b.String()
}

func (p *Profiler) timerString(idx int) string {
	t := &p.arena[idx]
	b := bytes.NewBufferString("")

	b.WriteString(fmt.Sprintf("[Timer %s]\n", t.name))
	b.WriteString(fmt.Sprintf("running: %t\n", t.running))
	b.WriteString(fmt.Sprintf("ncalls: %d\n", t.ncalls))
	b.WriteString(fmt.Sprintf("cpu time: %.4f\n", t.cpuAccu))
	b.WriteString(fmt.Sprintf("wall time: %.4f\n", t.wallAccu))

	for _, child := range t.children {
		s := strings.Replace("\t"+p.timerString(child), "\n", "\n\t", -1)
		s = s[:len(s)-1]
		b.WriteString(s)
	}

	return b.String()
}
