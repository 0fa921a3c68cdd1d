package store

import "errors"

var (
	ErrRecordExists   = errors.New("store: record already exists")
	ErrRecordNotFound = errors.New("store: record not found")
	ErrInvalidName    = errors.New("store: invalid record name")
)
