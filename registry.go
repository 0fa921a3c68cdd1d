package recmodel

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/untillpro/goutils/logger"

	"github.com/reoring/recmodel/tree"
)

// Factory constructs a ready record of one style.
type Factory func() (Record, error)

// Registration describes one registered style.
type Registration struct {
	Style     string
	ModelRoot string // optional; known without running Factory
	Package   string // originating package of the concrete type
	Factory   Factory
	Err       error // set for styles whose registration failed
}

// Registry maps style names to record factories. It is populated at program
// start and read afterwards; all methods are safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	styles map[string]Registration
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{styles: map[string]Registration{}}
}

// DefaultRegistry is the process-wide registry filled by record packages.
var DefaultRegistry = NewRegistry()

// Register adds a style. Registering a style twice fails with configuration_error.
func (r *Registry) Register(style, pkg string, f Factory) error {
	if style == "" || f == nil {
		return singleIssue(style, CodeConfiguration, errors.New("registration needs a style and a factory"), nil)
	}
	return r.add(Registration{Style: style, Package: pkg, Factory: f})
}

// RegisterRoot is Register for a style whose model root is declared up front.
// NewFromModel then reports the factory's error for documents rooted at
// modelRoot instead of treating the root as unknown.
func (r *Registry) RegisterRoot(style, modelRoot, pkg string, f Factory) error {
	if style == "" || modelRoot == "" || f == nil {
		return singleIssue(style, CodeConfiguration, errors.New("registration needs a style, a model root and a factory"), nil)
	}
	return r.add(Registration{Style: style, ModelRoot: modelRoot, Package: pkg, Factory: f})
}

// RegisterFailed records a style whose registration could not be completed.
// New returns err for it.
func (r *Registry) RegisterFailed(style, pkg string, err error) error {
	if style == "" || err == nil {
		return singleIssue(style, CodeConfiguration, errors.New("failed registration needs a style and an error"), nil)
	}
	return r.add(Registration{Style: style, Package: pkg, Err: err})
}

func (r *Registry) add(reg Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.styles[reg.Style]; ok {
		return singleIssue(reg.Style, CodeConfiguration, fmt.Errorf("style %q already registered", reg.Style), nil)
	}
	r.styles[reg.Style] = reg
	if logger.IsVerbose() {
		if reg.Err != nil {
			logger.Verbose(fmt.Sprintf("style %s from %s registered as failed: %v", reg.Style, reg.Package, reg.Err))
		} else {
			logger.Verbose(fmt.Sprintf("style %s registered from %s", reg.Style, reg.Package))
		}
	}
	return nil
}

// Lookup returns the registration of style.
func (r *Registry) Lookup(style string) (Registration, bool) {
	r.mu.RLock()
	reg, ok := r.styles[style]
	r.mu.RUnlock()
	return reg, ok
}

// New constructs a record of style.
func (r *Registry) New(style string) (Record, error) {
	reg, ok := r.Lookup(style)
	if !ok {
		return nil, singleIssue(style, CodeUnknownStyle, fmt.Errorf("style %q is not registered", style), nil)
	}
	if reg.Err != nil {
		return nil, reg.Err
	}
	return reg.Factory()
}

// Styles lists the styles that can be constructed, sorted.
func (r *Registry) Styles() []string {
	r.mu.RLock()
	out := make([]string, 0, len(r.styles))
	for s, reg := range r.styles {
		if reg.Err == nil {
			out = append(out, s)
		}
	}
	r.mu.RUnlock()
	sort.Strings(out)
	return out
}

// Failed returns the styles whose registration failed with their errors.
func (r *Registry) Failed() map[string]error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := map[string]error{}
	for s, reg := range r.styles {
		if reg.Err != nil {
			out[s] = reg.Err
		}
	}
	return out
}

// NewFromModel constructs the record whose model root matches the root key of
// doc and loads doc into it.
func (r *Registry) NewFromModel(doc *tree.Dict, opt LoadOpt) (Record, error) {
	key, _, ok := doc.Root()
	if !ok {
		return nil, singleIssue("", CodeSchemaMismatch, fmt.Errorf("expected a single root, found %v", doc.Keys()), nil)
	}
	var cause error
	for _, style := range r.Styles() {
		reg, _ := r.Lookup(style)
		if reg.ModelRoot != "" && reg.ModelRoot != key {
			continue
		}
		rec, err := reg.Factory()
		if err != nil {
			if reg.ModelRoot == key && cause == nil {
				cause = err
			}
			continue
		}
		if rec.ModelRoot() != key {
			continue
		}
		if err := rec.LoadModelOpt(doc, opt); err != nil {
			return nil, err
		}
		return rec, nil
	}
	if cause != nil {
		return nil, cause
	}
	return nil, singleIssue(key, CodeUnknownStyle, fmt.Errorf("no style has model root %q", key), nil)
}

// Register adds a style to DefaultRegistry.
func Register(style, pkg string, f Factory) error { return DefaultRegistry.Register(style, pkg, f) }

// New constructs a record of style from DefaultRegistry.
func New(style string) (Record, error) { return DefaultRegistry.New(style) }
