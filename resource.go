package recmodel

import (
	"fmt"
	"io/fs"
	"sync"
)

// Resource locates a schema or transform file: the namespace (usually the Go
// package that ships the file) and the file name within it.
type Resource struct {
	Namespace string
	Filename  string
}

// IsZero reports whether r locates nothing.
func (r Resource) IsZero() bool { return r.Namespace == "" && r.Filename == "" }

func (r Resource) String() string {
	if r.IsZero() {
		return ""
	}
	return r.Namespace + ":" + r.Filename
}

var (
	resourcesMu sync.RWMutex
	resources   = map[string]fs.FS{}
)

// RegisterResources makes the files of fsys available under namespace.
func RegisterResources(namespace string, fsys fs.FS) {
	resourcesMu.Lock()
	resources[namespace] = fsys
	resourcesMu.Unlock()
}

// ReadResource returns the bytes of r. The content is not interpreted.
func ReadResource(r Resource) ([]byte, error) {
	resourcesMu.RLock()
	fsys, ok := resources[r.Namespace]
	resourcesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("recmodel: no resources registered for %q: %w", r.Namespace, fs.ErrNotExist)
	}
	return fs.ReadFile(fsys, r.Filename)
}
