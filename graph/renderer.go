// Package graph renders directed acyclic graphs of commit-like nodes
// as ASCII diagrams in the style of `git log --graph`. It is a close
// port of the line-oriented state machine git itself uses (by way of
// the Python asciidag package), generalized to an opaque Node label
// and an injectable output sink.
package graph

import (
	"bytes"
	"io"
	"strings"
)

// column is a single live branch line: the commit (parent lineage) it
// is tracking, and the palette index it should be drawn in. A color
// of -1 means "no color" (color output is disabled).
type column struct {
	commit *Node
	color  int
}

// Config configures a Renderer.
type Config struct {
	// FirstParentOnly, when true, treats only a node's first parent as
	// "interesting" — every other parent is hidden from the graph.
	FirstParentOnly bool
	// UseColor enables per-column ANSI color escapes. When false, no
	// color tokens are ever emitted.
	UseColor bool
	// Palette is the ordered list of color escape sequences to cycle
	// through; its last element is the reset sequence. A nil Palette
	// falls back to DefaultPalette().
	Palette []string
}

// Renderer is a single-use, single-threaded state machine that turns
// a topologically ordered stream of *Node into rows of ASCII art. It
// holds mutable state (columns, mapping, an output buffer) and must
// not be shared across concurrent renders.
type Renderer struct {
	sink            io.Writer
	firstParentOnly bool
	useColor        bool
	palette         []string

	commit             *Node
	numParents         int
	width              int
	expansionRow       int
	state              state
	prevState          state
	commitIndex        int
	prevCommitIndex    int
	numColumns         int
	numNewColumns      int
	mappingSize        int
	defaultColumnColor int

	columns    []column
	newColumns []column
	mapping    []int
	newMapping []int

	buf bytes.Buffer
}

// NewRenderer builds a Renderer that writes to sink.
func NewRenderer(sink io.Writer, cfg Config) *Renderer {
	palette := cfg.Palette
	if palette == nil {
		palette = DefaultPalette()
	}
	return &Renderer{
		sink:            sink,
		firstParentOnly: cfg.FirstParentOnly,
		useColor:        cfg.UseColor,
		palette:         palette,
		state:           statePadding,
		prevState:       statePadding,
		// Start one below zero (mod len) so the first increment lands
		// on index 0.
		defaultColumnColor: len(palette) - 1,
	}
}

// Render walks, deduplicates, and topologically sorts tips, then
// streams the resulting ASCII graph (one row per line, the node's
// label appended after its principal row) to the Renderer's sink.
func (r *Renderer) Render(tips []*Node) error {
	nodes := TopoSort(Unique(Walk(tips)))
	for _, n := range nodes {
		r.update(n)
		if err := r.showCommit(); err != nil {
			return err
		}
		if _, err := io.WriteString(r.sink, n.String()); err != nil {
			return err
		}
		if !r.isCommitFinished() {
			if _, err := io.WriteString(r.sink, "\n"); err != nil {
				return err
			}
			if err := r.showRemainder(); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(r.sink, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) isCommitFinished() bool {
	return r.state == statePadding
}

// showCommit advances the state machine up to and including the
// principal (COMMIT) row for the node passed to the last update, then
// returns with that row's bytes already flushed and the cursor ready
// for the caller to append the node's label.
func (r *Renderer) showCommit() error {
	if r.isCommitFinished() {
		return r.PaddingLine()
	}
	for {
		shown, err := r.NextLine()
		if err != nil {
			return err
		}
		if shown {
			return nil
		}
		if _, err := io.WriteString(r.sink, "\n"); err != nil {
			return err
		}
	}
}

// showRemainder flushes every row after the principal row, until the
// state machine returns to PADDING.
func (r *Renderer) showRemainder() error {
	if r.isCommitFinished() {
		return nil
	}
	for {
		if _, err := r.NextLine(); err != nil {
			return err
		}
		if r.isCommitFinished() {
			return nil
		}
		if _, err := io.WriteString(r.sink, "\n"); err != nil {
			return err
		}
	}
}

// NextLine steps the state machine by one row, writes that row's
// bytes (without a trailing newline) to the sink, and reports whether
// the row just written was the principal COMMIT row. Callers that
// want row-by-row control — for example to interleave diff text the
// way git itself does — can drive the machine directly with NextLine
// and PaddingLine instead of Render.
func (r *Renderer) NextLine() (commitShown bool, err error) {
	prevState := r.state
	switch r.state {
	case statePadding:
		r.outputPaddingLine()
	case stateSkip:
		r.outputSkipLine()
	case statePreCommit:
		r.outputPreCommitLine()
	case stateCommit:
		r.outputCommitLine()
	case statePostMerge:
		r.outputPostMergeLine()
	case stateCollapsing:
		r.outputCollapsingLine()
	}
	commitShown = prevState == stateCommit
	if _, werr := r.sink.Write(r.buf.Bytes()); werr != nil {
		r.buf.Reset()
		return commitShown, werr
	}
	r.buf.Reset()
	return commitShown, nil
}

// PaddingLine emits a row of vertical padding, extending branch lines
// downward without ever consuming the pending commit glyph. If the
// machine isn't sitting on a COMMIT row, this is equivalent to
// NextLine.
func (r *Renderer) PaddingLine() error {
	if r.state != stateCommit {
		_, err := r.NextLine()
		return err
	}
	for i := 0; i < r.numColumns; i++ {
		col := r.columns[i]
		r.writeColumn(col, "|")
		if col.commit == r.commit && r.numParents > 2 {
			r.buf.WriteString(strings.Repeat(" ", (r.numParents-2)*2))
		} else {
			r.buf.WriteByte(' ')
		}
	}
	r.padHorizontally(r.numColumns)
	r.prevState = statePadding
	_, err := r.sink.Write(r.buf.Bytes())
	r.buf.Reset()
	return err
}

func (r *Renderer) interestingParents(n *Node) []*Node {
	if len(n.Parents) == 0 {
		return nil
	}
	if r.firstParentOnly {
		return n.Parents[:1]
	}
	return n.Parents
}

func (r *Renderer) writeColumn(col column, glyph string) {
	if col.color >= 0 {
		r.buf.WriteString(r.palette[col.color])
	}
	r.buf.WriteString(glyph)
	if col.color >= 0 {
		r.buf.WriteString(r.palette[len(r.palette)-1])
	}
}

func (r *Renderer) updateState(s state) {
	r.prevState = r.state
	r.state = s
}

func (r *Renderer) getCurrentColumnColor() int {
	if !r.useColor {
		return -1
	}
	return r.defaultColumnColor
}

func (r *Renderer) incrementColumnColor() {
	r.defaultColumnColor = (r.defaultColumnColor + 1) % len(r.palette)
}

func (r *Renderer) findCommitColor(commit *Node) int {
	for i := 0; i < r.numColumns; i++ {
		if r.columns[i].commit == commit {
			return r.columns[i].color
		}
	}
	return r.getCurrentColumnColor()
}

func (r *Renderer) findNewColumnByCommit(commit *Node) (column, bool) {
	for i := 0; i < r.numNewColumns; i++ {
		if r.newColumns[i].commit == commit {
			return r.newColumns[i], true
		}
	}
	return column{}, false
}

func ensureColumnsLen(s []column, n int) []column {
	for len(s) < n {
		s = append(s, column{})
	}
	return s
}

func ensureMappingLen(s []int, n int) []int {
	for len(s) < n {
		s = append(s, -1)
	}
	return s
}

// insertIntoNewColumns records that screen-position mappingIdx should
// end up pointing at commit's column in newColumns, reusing an
// existing entry for commit if one is already present.
func (r *Renderer) insertIntoNewColumns(commit *Node, mappingIdx int) int {
	for i := 0; i < r.numNewColumns; i++ {
		if r.newColumns[i].commit == commit {
			r.mapping[mappingIdx] = i
			return mappingIdx + 2
		}
	}
	r.newColumns = ensureColumnsLen(r.newColumns, r.numNewColumns+1)
	r.newColumns[r.numNewColumns] = column{commit: commit, color: r.findCommitColor(commit)}
	r.mapping[mappingIdx] = r.numNewColumns
	r.numNewColumns++
	return mappingIdx + 2
}

func (r *Renderer) updateWidth(isCommitInExistingColumns bool) {
	maxCols := r.numColumns + r.numParents
	if r.numParents < 1 {
		maxCols++
	}
	if isCommitInExistingColumns {
		maxCols--
	}
	r.width = maxCols * 2
}

// updateColumns swaps in the column layout computed for the previous
// node (newColumns becomes columns), then computes a fresh
// newColumns/mapping for r.commit: some of r.commit's parents may
// already be represented in columns, in which case newColumns should
// only gain one entry for each; mapping records, for every current
// screen position, which new column it should collapse toward.
func (r *Renderer) updateColumns() {
	r.columns, r.newColumns = r.newColumns, r.columns
	r.numColumns = r.numNewColumns
	r.numNewColumns = 0

	maxNewColumns := r.numColumns + r.numParents
	r.mappingSize = 2 * maxNewColumns
	r.mapping = ensureMappingLen(r.mapping, r.mappingSize)
	for i := 0; i < r.mappingSize; i++ {
		r.mapping[i] = -1
	}

	seenThis := false
	mappingIdx := 0
	isCommitInColumns := true
	for i := 0; i <= r.numColumns; i++ {
		var colCommit *Node
		if i == r.numColumns {
			if seenThis {
				break
			}
			isCommitInColumns = false
			colCommit = r.commit
		} else {
			colCommit = r.columns[i].commit
		}

		if colCommit == r.commit {
			oldMappingIdx := mappingIdx
			seenThis = true
			r.commitIndex = i
			for _, parent := range r.interestingParents(r.commit) {
				if r.numParents > 1 || !isCommitInColumns {
					r.incrementColumnColor()
				}
				mappingIdx = r.insertIntoNewColumns(parent, mappingIdx)
			}
			if mappingIdx == oldMappingIdx {
				mappingIdx += 2
			}
		} else {
			mappingIdx = r.insertIntoNewColumns(colCommit, mappingIdx)
		}
	}

	for r.mappingSize > 1 && r.mapping[r.mappingSize-1] < 0 {
		r.mappingSize--
	}

	r.updateWidth(isCommitInColumns)
}

func (r *Renderer) update(commit *Node) {
	r.commit = commit
	r.numParents = len(r.interestingParents(commit))
	r.prevCommitIndex = r.commitIndex
	r.updateColumns()
	r.expansionRow = 0

	switch {
	case r.state != statePadding:
		r.state = stateSkip
	case r.numParents >= 3 && r.commitIndex < r.numColumns-1:
		r.state = statePreCommit
	default:
		r.state = stateCommit
	}
}

func (r *Renderer) isMappingCorrect() bool {
	for i := 0; i < r.mappingSize; i++ {
		target := r.mapping[i]
		if target < 0 {
			continue
		}
		if target == i/2 {
			continue
		}
		return false
	}
	return true
}

func (r *Renderer) padHorizontally(charsWritten int) {
	if charsWritten >= r.width {
		return
	}
	r.buf.WriteString(strings.Repeat(" ", r.width-charsWritten))
}

func (r *Renderer) outputPaddingLine() {
	for i := 0; i < r.numNewColumns; i++ {
		r.writeColumn(r.newColumns[i], "|")
		r.buf.WriteByte(' ')
	}
	r.padHorizontally(r.numNewColumns * 2)
}

func (r *Renderer) outputSkipLine() {
	r.buf.WriteString("...")
	r.padHorizontally(3)
	if r.numParents >= 3 && r.commitIndex < r.numColumns-1 {
		r.updateState(statePreCommit)
	} else {
		r.updateState(stateCommit)
	}
}

// outputPreCommitLine widens the space around an upcoming octopus
// merge. Called only when there are 3 or more interesting parents.
func (r *Renderer) outputPreCommitLine() {
	assertf(r.numParents >= 3, "pre-commit row needs at least 3 parents, got %d", r.numParents)
	numExpansionRows := (r.numParents - 2) * 2
	assertf(r.expansionRow >= 0 && r.expansionRow < numExpansionRows,
		"expansion row %d out of range [0, %d)", r.expansionRow, numExpansionRows)

	seenThis := false
	charsWritten := 0
	for i := 0; i < r.numColumns; i++ {
		col := r.columns[i]
		switch {
		case col.commit == r.commit:
			seenThis = true
			r.writeColumn(col, "|")
			r.buf.WriteString(strings.Repeat(" ", r.expansionRow))
			charsWritten += 1 + r.expansionRow
		case seenThis && r.expansionRow == 0:
			if r.prevState == statePostMerge && r.prevCommitIndex < i {
				r.writeColumn(col, "\\")
			} else {
				r.writeColumn(col, "|")
			}
			charsWritten++
		case seenThis && r.expansionRow > 0:
			r.writeColumn(col, "\\")
			charsWritten++
		default:
			r.writeColumn(col, "|")
			charsWritten++
		}
		r.buf.WriteByte(' ')
		charsWritten++
	}
	r.padHorizontally(charsWritten)

	r.expansionRow++
	if r.expansionRow >= numExpansionRows {
		r.updateState(stateCommit)
	}
}

// drawOctopusMerge draws the `-...-.` dash run for the third and
// later parents of an octopus merge and returns the number of
// characters it wrote. Each extra parent gets two glyphs: `--` for
// all but the last, `-.` for the last, so the terminating '.' is
// counted like any dash and the padded row stays at the declared width.
func (r *Renderer) drawOctopusMerge() int {
	parents := r.interestingParents(r.commit)
	rest := parents[2:]
	numChars := 0
	for i, parent := range rest {
		col, ok := r.findNewColumnByCommit(parent)
		assertf(ok, "no new column for octopus parent")
		r.writeColumn(col, "-")
		numChars++
		if i < len(rest)-1 {
			r.writeColumn(col, "-")
			numChars++
		} else {
			r.writeColumn(col, ".")
			numChars++
		}
	}
	return numChars
}

func (r *Renderer) outputCommitLine() {
	seenThis := false
	charsWritten := 0
	for i := 0; i <= r.numColumns; i++ {
		var col column
		var colCommit *Node
		if i == r.numColumns {
			if seenThis {
				break
			}
			colCommit = r.commit
		} else {
			col = r.columns[i]
			colCommit = col.commit
		}

		switch {
		case colCommit == r.commit:
			seenThis = true
			r.buf.WriteByte('*')
			charsWritten++
			if r.numParents > 2 {
				charsWritten += r.drawOctopusMerge()
			}
		case seenThis && r.numParents > 2:
			r.writeColumn(col, "\\")
			charsWritten++
		case seenThis && r.numParents == 2:
			if r.prevState == statePostMerge && r.prevCommitIndex < i {
				r.writeColumn(col, "\\")
			} else {
				r.writeColumn(col, "|")
			}
			charsWritten++
		default:
			r.writeColumn(col, "|")
			charsWritten++
		}
		r.buf.WriteByte(' ')
		charsWritten++
	}
	r.padHorizontally(charsWritten)

	switch {
	case r.numParents > 1:
		r.updateState(statePostMerge)
	case r.isMappingCorrect():
		r.updateState(statePadding)
	default:
		r.updateState(stateCollapsing)
	}
}

func (r *Renderer) outputPostMergeLine() {
	seenThis := false
	charsWritten := 0
	for i := 0; i <= r.numColumns; i++ {
		var col column
		var colCommit *Node
		if i == r.numColumns {
			if seenThis {
				break
			}
			colCommit = r.commit
		} else {
			col = r.columns[i]
			colCommit = col.commit
		}

		if colCommit == r.commit {
			seenThis = true
			parents := r.interestingParents(r.commit)
			assertf(len(parents) > 0, "merge row for a node with no interesting parents")
			firstCol, ok := r.findNewColumnByCommit(parents[0])
			assertf(ok, "no new column for first merge parent")
			r.writeColumn(firstCol, "|")
			charsWritten++
			for _, parent := range parents[1:] {
				col2, ok := r.findNewColumnByCommit(parent)
				assertf(ok, "no new column for merge parent")
				r.writeColumn(col2, "\\")
				r.buf.WriteByte(' ')
			}
			charsWritten += (r.numParents - 1) * 2
		} else if seenThis {
			r.writeColumn(col, "\\")
			r.buf.WriteByte(' ')
			charsWritten += 2
		} else {
			r.writeColumn(col, "|")
			r.buf.WriteByte(' ')
			charsWritten += 2
		}
	}
	r.padHorizontally(charsWritten)

	if r.isMappingCorrect() {
		r.updateState(statePadding)
	} else {
		r.updateState(stateCollapsing)
	}
}

// outputCollapsingLine migrates branch lines diagonally leftward,
// moving at most one column per line and never rightward, until the
// mapping is back to its canonical, minimal-width layout.
func (r *Renderer) outputCollapsingLine() {
	usedHorizontal := false
	horizontalEdge := -1
	horizontalEdgeTarget := -1

	r.newMapping = ensureMappingLen(r.newMapping, r.mappingSize)
	for i := 0; i < r.mappingSize; i++ {
		r.newMapping[i] = -1
	}

	for i := 0; i < r.mappingSize; i++ {
		target := r.mapping[i]
		if target < 0 {
			continue
		}
		assertf(target*2 <= i, "branch at %d targets column %d to its right", i, target)

		switch {
		case target*2 == i:
			assertf(r.newMapping[i] == -1, "new_mapping[%d] written twice", i)
			r.newMapping[i] = target
		case r.newMapping[i-1] < 0:
			r.newMapping[i-1] = target
			if horizontalEdge == -1 {
				horizontalEdge = i
				horizontalEdgeTarget = target
				for j := target*2 + 3; j < i-2; j += 2 {
					r.newMapping[j] = target
				}
			}
		case r.newMapping[i-1] == target:
			// Already covered by the branch to our left sharing the
			// same target; nothing to draw here.
		default:
			assertf(r.newMapping[i-1] > target, "crossing branch at %d has no room to its left", i)
			assertf(r.newMapping[i-2] < 0, "crossing branch at %d has no room to its left", i)
			assertf(r.newMapping[i-3] == target, "crossing branch at %d lost its target", i)
			r.newMapping[i-2] = target
			if horizontalEdge == -1 {
				horizontalEdge = i
			}
		}
	}

	if r.newMapping[r.mappingSize-1] < 0 {
		r.mappingSize--
	}

	for i := 0; i < r.mappingSize; i++ {
		target := r.newMapping[i]
		switch {
		case target < 0:
			r.buf.WriteByte(' ')
		case target*2 == i:
			r.writeColumn(r.newColumns[target], "|")
		case target == horizontalEdgeTarget && i != horizontalEdge-1:
			if i != target*2+3 {
				r.newMapping[i] = -1
			}
			usedHorizontal = true
			r.writeColumn(r.newColumns[target], "_")
		default:
			if usedHorizontal && i < horizontalEdge {
				r.newMapping[i] = -1
			}
			r.writeColumn(r.newColumns[target], "/")
		}
	}
	r.padHorizontally(r.mappingSize)
	r.mapping, r.newMapping = r.newMapping, r.mapping

	if r.isMappingCorrect() {
		r.updateState(statePadding)
	}
}
