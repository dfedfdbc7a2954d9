package core

import (
	"fmt"

	"github.com/andybalholm/cascadia"
)

// PathQuery is a compiled DOM path. It is immutable and safe to share.
type PathQuery struct {
	expr string
	sel  cascadia.Sel
}

// ParseQuery compiles a CSS selector expression.
func ParseQuery(expr string) (PathQuery, error) {
	sel, err := cascadia.Parse(expr)
	if err != nil {
		return PathQuery{}, fmt.Errorf("parsing path query %q: %w", expr, err)
	}
	return PathQuery{expr: expr, sel: sel}, nil
}

// MustQuery is ParseQuery for package-level query tables.
func MustQuery(expr string) PathQuery {
	q, err := ParseQuery(expr)
	if err != nil {
		panic(err)
	}
	return q
}

// Matcher returns the compiled selector, or nil for the zero PathQuery.
func (q PathQuery) Matcher() cascadia.Sel { return q.sel }

func (q PathQuery) String() string { return q.expr }
