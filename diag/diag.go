// Package diag implements the four diagnostic kinds the interpreter can
// produce (illegal character, expected character, invalid syntax, runtime)
// and their rendering into the show_error() string format, including the
// runtime traceback chain.
package diag

import (
	"strconv"
	"strings"

	"eloq/position"
)

// Kind distinguishes the four diagnostic categories.
type Kind int

const (
	IllegalCharacter Kind = iota
	ExpectedChar
	InvalidSyntax
	RunTime
)

// displayName is the text that prefixes "<kind>:<details>" in show_error().
// These mirror the distilled-from implementation's exact class names,
// including the absence of a space in "RunTimeError" where the other three
// carry one.
var displayName = map[Kind]string{
	IllegalCharacter: "Illegal Character",
	ExpectedChar:     "Expected Character",
	InvalidSyntax:    "Invalid Syntax",
	RunTime:          "RunTimeError",
}

// Frame is the minimal call-chain view a Diagnostic needs to render a
// traceback. context.Context implements it; diag itself has no dependency
// on the context package, which keeps the two from forming an import
// cycle (context imports diag to build runtime diagnostics, and value
// imports both — diag must stay below them).
type Frame interface {
	Name() string
	Parent() Frame
	CallSite() position.Position
}

// Diagnostic is a single structured error. Everything that can fail in the
// pipeline — lexer, parser, evaluator — returns one of these as its error
// half rather than an untagged exception.
type Diagnostic struct {
	Kind    Kind
	Start   position.Position
	End     position.Position
	Details string

	// Ctx is only populated for RunTime diagnostics: the context chain at
	// the failing call site, used to render the traceback.
	Ctx Frame
}

func New(kind Kind, start, end position.Position, details string) *Diagnostic {
	return &Diagnostic{Kind: kind, Start: start, End: end, Details: details}
}

func NewRuntime(start, end position.Position, details string, ctx Frame) *Diagnostic {
	return &Diagnostic{Kind: RunTime, Start: start, End: end, Details: details, Ctx: ctx}
}

// Name returns the diagnostic kind's display name, e.g. "Illegal Character".
func (d *Diagnostic) Name() string {
	return displayName[d.Kind]
}

// Error satisfies the standard error interface so a *Diagnostic can be
// handed to code that only knows about `error`.
func (d *Diagnostic) Error() string {
	return d.ShowError()
}

// ShowError renders the diagnostic the way the embedder-facing driver does:
// "<kind>:<details>\n" followed by a 1-based location line, with a
// traceback prepended for runtime errors.
func (d *Diagnostic) ShowError() string {
	var b strings.Builder
	if d.Kind == RunTime {
		b.WriteString(d.traceback())
	}
	b.WriteString(d.Name())
	b.WriteString(":")
	b.WriteString(d.Details)
	b.WriteString("\n")
	b.WriteString("File")
	b.WriteString(d.Start.Filename)
	b.WriteString(",line")
	b.WriteString(strconv.Itoa(d.Start.Line + 1))
	return b.String()
}

// traceback renders frames in source-call order (oldest first), headed by
// the conventional header — the source material's prepend-in-loop reads
// like it might reverse this, but tracing it through confirms the output
// is already oldest-first; this just produces the same ordering directly.
func (d *Diagnostic) traceback() string {
	type frame struct {
		pos  position.Position
		name string
	}
	var frames []frame
	pos := d.Start
	f := d.Ctx
	for f != nil {
		frames = append(frames, frame{pos: pos, name: f.Name()})
		pos = f.CallSite()
		f = f.Parent()
	}

	var b strings.Builder
	b.WriteString("Traceback (most recent call last):\n")
	for i := len(frames) - 1; i >= 0; i-- {
		fr := frames[i]
		b.WriteString(" File")
		b.WriteString(fr.pos.Filename)
		b.WriteString(",line")
		b.WriteString(strconv.Itoa(fr.pos.Line + 1))
		b.WriteString(",in")
		b.WriteString(fr.name)
		b.WriteString("\n")
	}
	return b.String()
}
