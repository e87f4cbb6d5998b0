// Package schema validates JSON documents against the CUE definitions of
// every wire shape: amounts, percentages, token ids, metadata and offers.
package schema

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed collectibles.cue
var source string

// Source returns the CUE definitions.
func Source() string {
	return source
}

// ValidationError is one violation found in a document.
type ValidationError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Definitions lists the definition names, sorted, without the leading '#'.
func Definitions() ([]string, error) {
	v, err := compile(cuecontext.New())
	if err != nil {
		return nil, err
	}

	iter, err := v.Fields(cue.Definitions(true))
	if err != nil {
		return nil, fmt.Errorf("list definitions: %w", err)
	}
	var names []string
	for iter.Next() {
		sel := iter.Selector()
		if sel.IsDefinition() {
			names = append(names, strings.TrimPrefix(sel.String(), "#"))
		}
	}
	sort.Strings(names)
	return names, nil
}

// Validate checks a JSON document against the named definition ("TokenId"
// or "#TokenId"). A document that violates the definition yields a
// non-empty slice and a nil error; the error is reserved for unknown
// definitions and malformed JSON.
func Validate(definition string, data []byte) ([]ValidationError, error) {
	ctx := cuecontext.New()
	v, err := compile(ctx)
	if err != nil {
		return nil, err
	}

	name := "#" + strings.TrimPrefix(definition, "#")
	def := v.LookupPath(cue.ParsePath(name))
	if !def.Exists() {
		return nil, fmt.Errorf("unknown definition %q", definition)
	}

	expr, err := cuejson.Extract("document.json", data)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	doc := ctx.BuildExpr(expr)
	if err := doc.Err(); err != nil {
		return nil, fmt.Errorf("build document: %w", err)
	}

	err = def.Unify(doc).Validate(cue.Concrete(true))
	if err == nil {
		return nil, nil
	}
	return toValidationErrors(err), nil
}

func compile(ctx *cue.Context) (cue.Value, error) {
	v := ctx.CompileString(source, cue.Filename("collectibles.cue"))
	if err := v.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("compile schema: %w", err)
	}
	return v, nil
}

// toValidationErrors flattens a CUE error list, keeping the first position
// inside the document for each entry.
func toValidationErrors(err error) []ValidationError {
	var out []ValidationError
	for _, e := range errors.Errors(err) {
		format, args := e.Msg()
		ve := ValidationError{
			Path:    strings.Join(e.Path(), "."),
			Message: fmt.Sprintf(format, args...),
		}
		for _, pos := range errors.Positions(e) {
			if pos.Filename() == "document.json" {
				ve.Line = pos.Line()
				break
			}
		}
		out = append(out, ve)
	}
	return out
}
