// ==============================================================================================
// FILE: position/position_test.go
// ==============================================================================================
// PURPOSE: Covers Position.Advance's line/column bookkeeping and the
//          Span helper.
// ==============================================================================================

package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStartsBeforeFirstCharacter(t *testing.T) {
	p := New("f.eloq", "abc")
	assert.Equal(t, -1, p.Index)
	assert.Equal(t, 0, p.Line)
	assert.Equal(t, -1, p.Column)
}

func TestAdvanceIncrementsIndexAndColumn(t *testing.T) {
	p := New("f.eloq", "ab")
	p = p.Advance(0)
	assert.Equal(t, 0, p.Index)
	assert.Equal(t, 0, p.Column)
	p = p.Advance('a')
	assert.Equal(t, 1, p.Index)
	assert.Equal(t, 1, p.Column)
}

func TestAdvancePastNewlineResetsColumn(t *testing.T) {
	p := New("f.eloq", "a\nb")
	p = p.Advance(0)
	p = p.Advance('a')
	p = p.Advance('\n')
	assert.Equal(t, 1, p.Line)
	assert.Equal(t, 0, p.Column)
}

func TestCopyIsIndependent(t *testing.T) {
	p := New("f.eloq", "a")
	cp := p.Copy()
	cp = cp.Advance('a')
	assert.NotEqual(t, p.Index, cp.Index)
}

func TestNewSpan(t *testing.T) {
	start := New("f.eloq", "ab")
	end := start.Advance('a').Advance('b')
	span := NewSpan(start, end)
	assert.Equal(t, start, span.Start)
	assert.Equal(t, end, span.End)
}
