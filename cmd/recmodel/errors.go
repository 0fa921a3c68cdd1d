package main

import (
	"errors"
	"fmt"
)

var ErrCheckFailed = errors.New("check failed")

func errCheckFailed(n int) error {
	return fmt.Errorf("%w: %d file(s)", ErrCheckFailed, n)
}
