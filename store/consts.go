package store

import "os"

const (
	DefaultCacheSize = 256

	fileMode os.FileMode = 0o600
)
