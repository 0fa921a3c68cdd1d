package recmodel

import (
	"fmt"
	"strings"
)

// PathRef builds dotted model paths in a chain-safe way and creates Issues.
type PathRef interface {
	Field(name string) PathRef
	At(path string) PathRef
	String() string
	Issue(code string, cause error, kv ...any) Issue
}

// Root returns an empty PathRef.
func Root() PathRef { return &pathRef{parts: nil} }

type pathRef struct {
	parts []string
}

func (p *pathRef) Field(name string) PathRef {
	if name == "" {
		return p
	}
	return &pathRef{parts: append(append([]string{}, p.parts...), name)}
}

// At appends every segment of a dotted path.
func (p *pathRef) At(path string) PathRef {
	if path == "" {
		return p
	}
	parts := append([]string{}, p.parts...)
	for _, s := range strings.Split(path, ".") {
		if s == "" {
			continue
		}
		parts = append(parts, s)
	}
	return &pathRef{parts: parts}
}

func (p *pathRef) String() string { return strings.Join(p.parts, ".") }

func (p *pathRef) Issue(code string, cause error, kv ...any) Issue {
	m := map[string]any{}
	for i := 0; i+1 < len(kv); i += 2 {
		m[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return newIssue(p.String(), code, cause, m)
}
