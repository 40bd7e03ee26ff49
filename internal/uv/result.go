// ABOUTME: Tagged-union result type for uv invocations: raw text or decoded JSON.
// ABOUTME: Normalization degrades silently to text when stdout is not valid JSON.

package uv

import "encoding/json"

// Result holds the output of one uv invocation. Raw stdout is always
// retained; a structured value is present only when the entire stdout
// decoded as JSON. Consumers must check Structured before assuming shape.
type Result struct {
	text       string
	structured any
}

// TextResult wraps raw stdout with no structured value.
func TextResult(text string) Result {
	return Result{text: text}
}

// StructuredResult wraps raw stdout together with its decoded JSON value.
func StructuredResult(text string, value any) Result {
	return Result{text: text, structured: value}
}

// Text returns the captured stdout verbatim.
func (r Result) Text() string {
	return r.text
}

// Structured returns the decoded JSON value and true when the invocation
// produced structured output.
func (r Result) Structured() (any, bool) {
	if r.structured == nil {
		return nil, false
	}
	return r.structured, true
}

// Normalize interprets captured stdout. When structured output was not
// requested the text is returned unchanged. When it was, the text is
// decoded as JSON; on decode failure the raw text is returned instead of an
// error, because uv's JSON support varies by subcommand and version.
func Normalize(stdout string, structured bool) Result {
	if !structured {
		return TextResult(stdout)
	}

	var value any
	if err := json.Unmarshal([]byte(stdout), &value); err != nil {
		return TextResult(stdout)
	}
	if value == nil {
		// A bare JSON null carries no shape worth pattern-matching on.
		return TextResult(stdout)
	}
	return StructuredResult(stdout, value)
}
