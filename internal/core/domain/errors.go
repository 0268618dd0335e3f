package domain

import "go.trai.ch/zerr"

// ErrChecksFailed is returned when at least one launched process exited
// nonzero. It maps to exit code 1 at the CLI boundary.
var ErrChecksFailed = zerr.New("checks failed")
