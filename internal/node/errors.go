package node

import (
	"errors"
	"fmt"
)

// ErrSuspended is wrapped into the panic raised when an unbuilt node
// is called while the process-wide build mode is BuildSuspended.
var ErrSuspended = errors.New("building is suspended")

// errUnsupported marks operations a node kind does not provide, such
// as replicate-with-overrides on Conv. Callers match it with
// errors.Is(err, errors.ErrUnsupported).
var errUnsupported = errors.ErrUnsupported

// InvalidPaddingError reports a symbolic padding mode whose implied
// downscale factor has no integral stride, so the padding would not
// hold for all input sizes.
type InvalidPaddingError struct {
	Class string
	Mode  any
}

func (e *InvalidPaddingError) Error() string {
	return fmt.Sprintf("%s: padding %v will not hold for all input sizes", e.Class, e.Mode)
}

// UnsupportedRankError reports an input rank the framework has no
// module for (Born provides 2-D convolution only; 1-D is lowered onto
// it, anything higher is rejected).
type UnsupportedRankError struct {
	Class string
	Rank  int
}

func (e *UnsupportedRankError) Error() string {
	return fmt.Sprintf("%s: no module for input of rank %d", e.Class, e.Rank)
}
