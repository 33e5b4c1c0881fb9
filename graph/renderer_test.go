package graph

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, cfg Config, tips ...*Node) string {
	t.Helper()
	var buf bytes.Buffer
	r := NewRenderer(&buf, cfg)
	require.NoError(t, r.Render(tips))
	return buf.String()
}

func TestLinearHistory(t *testing.T) {
	tip := FromList("Second", "sixth", "fifth", "fourth", "third", "second", "initial")
	out := render(t, Config{UseColor: false}, tip)
	assert.Equal(t, "* Second\n* sixth\n* fifth\n* fourth\n* third\n* second\n* initial\n", out)
}

func TestSingleRootNoParents(t *testing.T) {
	root := NewNode("root")
	out := render(t, Config{UseColor: false}, root)
	assert.Equal(t, "* root\n", out)
}

func TestTwoWayMergeOfDisjointLineages(t *testing.T) {
	a := NewNode("A")
	b := NewNode("B")
	m := NewNode("M", a, b)

	// Topological order visits M, then A, then B (A and B are only
	// reachable through M, and the walk enqueues M's parents in
	// left-to-right order).
	out := render(t, Config{UseColor: false}, m)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "M")
	assert.Equal(t, "|\\", strings.TrimRight(lines[1], " "))
	assert.Contains(t, lines[2], "A")
	assert.Equal(t, "/", strings.TrimRight(lines[3], " "))
	assert.Contains(t, lines[4], "B")
}

func TestFirstParentOnlyStillRendersSecondParentAsItsOwnRoot(t *testing.T) {
	// FirstParentOnly only hides a merge's non-first parents from the
	// drawn column links; it does not prune them from the walked node
	// set, so B still surfaces as an unconnected commit of its own.
	a := NewNode("A")
	b := NewNode("B")
	m := NewNode("M", a, b)

	out := render(t, Config{UseColor: false, FirstParentOnly: true}, m)
	assert.Equal(t, "* M\n* A\n* B\n", out)
}

func TestOctopusMergeEmitsDashTerminator(t *testing.T) {
	p1 := NewNode("P1")
	p2 := NewNode("P2")
	p3 := NewNode("P3")
	o := NewNode("O", p1, p2, p3)

	out := render(t, Config{UseColor: false}, o)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "*-."), "expected octopus dash+terminator, got %q", lines[0])
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, "|\\ \\", strings.TrimRight(lines[1], " "))
}

func TestDiamondCollapsesToSingleBranchLine(t *testing.T) {
	base := NewNode("B")
	l := NewNode("L", base)
	r := NewNode("R", base)
	d := NewNode("D", l, r)

	out := render(t, Config{UseColor: false}, d)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	var sawCollapse bool
	for _, line := range lines {
		if strings.TrimRight(line, " ") == "|/" {
			sawCollapse = true
		}
	}
	assert.True(t, sawCollapse, "expected a |/ collapsing row, got %q", out)
	assert.True(t, strings.HasSuffix(strings.TrimRight(out, "\n"), "* B"))
}

func TestDiamondPureGraphRowsShareCommonWidth(t *testing.T) {
	base := NewNode("base")
	l := NewNode("L", base)
	r := NewNode("R", base)
	d := NewNode("D", l, r)

	out := render(t, Config{UseColor: false}, d)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// Rows with no trailing label (the remainder rows between one
	// commit's principal line and the next) are padded out to the
	// renderer's declared column width, so they all share one length.
	var pureGraphLineLen = -1
	for _, line := range lines {
		if line == "|\\  " || line == "|/  " {
			if pureGraphLineLen == -1 {
				pureGraphLineLen = len(line)
			} else {
				assert.Equal(t, pureGraphLineLen, len(line))
			}
		}
	}
	assert.NotEqual(t, -1, pureGraphLineLen, "expected at least one pure graph row in %q", out)
}

func TestColorDisabledEmitsOnlyPlainGlyphBytes(t *testing.T) {
	base := NewNode("base")
	l := NewNode("L", base)
	r := NewNode("R", base)
	d := NewNode("D", l, r)

	out := render(t, Config{UseColor: false}, d)
	for _, b := range []byte(out) {
		switch b {
		case '*', '|', '/', '\\', '_', '-', '.', ' ', '\n':
			continue
		}
		if (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') {
			continue
		}
		t.Fatalf("unexpected byte %q in color-disabled output", b)
	}
}

func TestColorEnabledWrapsGlyphsWithPaletteEscapes(t *testing.T) {
	a := NewNode("A")
	b := NewNode("B")
	m := NewNode("M", a, b)

	palette := []string{"<0>", "<1>", "<RESET>"}
	out := render(t, Config{UseColor: true, Palette: palette}, m)
	assert.Contains(t, out, "<RESET>")
	assert.True(t, strings.Contains(out, "<0>") || strings.Contains(out, "<1>"))
}

func TestTrackedNodeDoesNotDoubleCountWidth(t *testing.T) {
	// Regression style check on width: a node already tracked by an
	// existing column must not double count itself in the width.
	base := NewNode("base")
	mid := NewNode("mid", base)
	tip := NewNode("tip", mid)

	out := render(t, Config{UseColor: false}, tip)
	assert.Equal(t, "* tip\n* mid\n* base\n", out)
}

func TestRenderIsIdempotentOnEmptyInput(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, Config{UseColor: false})
	require.NoError(t, r.Render(nil))
	require.NoError(t, r.Render(nil))
	assert.Empty(t, buf.String())
}

func TestFromDictSmokeRendersWithoutPanicking(t *testing.T) {
	nodes, err := FromDict(map[string]interface{}{
		"child": map[string]interface{}{
			"mom": map[string]interface{}{
				"grandma": nil,
			},
			"dad": nil,
		},
	})
	require.NoError(t, err)
	out := render(t, Config{UseColor: false}, nodes...)
	assert.Contains(t, out, "child")
	assert.Contains(t, out, "mom")
	assert.Contains(t, out, "dad")
	assert.Contains(t, out, "grandma")
}
