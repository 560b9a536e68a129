package kairos

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildGreetingTree reproduces the canonical demo sequence with known
// durations: hello (0.75s cpu / 1.5s wall) containing World (0.5/1.0)
// and You (0.25/0.5).
func buildGreetingTree(t *testing.T) *Profiler {
	t.Helper()
	p, clock := newTestProfiler()

	p.Start("hello", "Say Hello to")
	p.Start("World")
	clock.advance(0.5, time.Second)
	p.Stop("World")
	p.Start("You")
	clock.advance(0.25, 500*time.Millisecond)
	p.Stop("You")
	p.Stop("hello")

	return p
}

func renderedLines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestRenderLayout(t *testing.T) {
	p := buildGreetingTree(t)
	lines := renderedLines(p.Render(FullDepth))

	require.Len(t, lines, 7)

	rule := strings.Repeat("-", 100)
	assert.Equal(t, rule, lines[0])
	assert.Equal(t, rule, lines[2])
	assert.Equal(t, rule, lines[6])

	// Header columns sit at fixed offsets.
	header := lines[1]
	assert.Equal(t, 0, strings.Index(header, "Entry"))
	assert.Equal(t, 50, strings.Index(header, "#calls"))
	assert.Equal(t, 63, strings.Index(header, "CPU time (s)"))
	assert.Equal(t, 82, strings.Index(header, "Wall time (s)"))
}

func TestRenderRows(t *testing.T) {
	p := buildGreetingTree(t)
	lines := renderedLines(p.Render(FullDepth))
	require.Len(t, lines, 7)

	row := func(label string, ncalls uint64, cpu, wall string) string {
		return fmt.Sprintf("%-49s %-12d %-18s %-18s", label, ncalls, cpu, wall)
	}

	// The root row carries the note instead of the name; children are
	// indented by one space, prefixed to label and numbers alike.
	assert.Equal(t, row("Say Hello to", 1, "0.7500", "1.5000"), lines[3])
	assert.Equal(t, row(" World", 1, " 0.5000", " 1.0000"), lines[4])
	assert.Equal(t, row(" You", 1, " 0.2500", " 0.5000"), lines[5])
}

func TestRenderIdempotent(t *testing.T) {
	p := buildGreetingTree(t)
	assert.Equal(t, p.Render(FullDepth), p.Render(FullDepth))
}

func TestRenderDepthCutoff(t *testing.T) {
	p, _ := newTestProfiler()
	p.Start("a")
	p.Start("b")
	p.Start("c")
	p.Stop("c")
	p.Stop("b")
	p.Stop("a")

	// verbose 0 expands nothing below the top level.
	lines := renderedLines(p.Render(0))
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[3], "a"))

	// verbose 1 expands one level: a and b, but not c.
	lines = renderedLines(p.Render(1))
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[4], " b"))

	lines = renderedLines(p.Render(2))
	require.Len(t, lines, 7)
	assert.True(t, strings.HasPrefix(lines[5], "  c"))
}

func TestRenderSecondRootSuppressedByNegativeVerbosity(t *testing.T) {
	p, _ := newTestProfiler()
	p.Start("first")
	p.Stop("first")
	p.Start("second")
	p.Stop("second")

	lines := renderedLines(p.Render(0))
	require.Len(t, lines, 6, "both top-level timers render at verbosity 0")

	lines = renderedLines(p.Render(-1))
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[3], "first"))
}

func TestRenderIndentWidth(t *testing.T) {
	p, _ := newTestProfiler()
	p.SetIndent(3)
	p.Start("a")
	p.Start("b")
	p.Stop("b")
	p.Stop("a")

	lines := renderedLines(p.Render(FullDepth))
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[4], "   b"))
	assert.Contains(t, lines[4], "   0.0000")
}

func TestRenderEmptyTree(t *testing.T) {
	p, _ := newTestProfiler()
	lines := renderedLines(p.Render(FullDepth))
	require.Len(t, lines, 4, "rules and header only when nothing was timed")
}

func TestDisplayWritesToSink(t *testing.T) {
	var buf bytes.Buffer
	p := buildGreetingTree(t)

	p.Display(FullDepth)
	assert.Empty(t, buf.String(), "Display without a sink performs no I/O")

	p.WithSink(&buf)
	p.Display(FullDepth)
	assert.Equal(t, p.Render(FullDepth), buf.String())
}

func TestFullName(t *testing.T) {
	p, _ := newTestProfiler()
	p.Start("load")
	p.Start("index")
	p.Start("merge")

	assert.Equal(t, "load -> index -> merge", p.fullName(p.current))
}

func TestStringDump(t *testing.T) {
	p := buildGreetingTree(t)
	s := p.String()

	assert.Contains(t, s, "active: none")
	assert.Contains(t, s, "[Timer hello]")
	assert.Contains(t, s, "[Timer World]")
	assert.Contains(t, s, "[Timer You]")
	assert.Contains(t, s, "ncalls: 1")
}
