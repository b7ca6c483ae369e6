package params

import "fmt"

// InvalidNameError reports an explicitly empty display name. A node
// may be unnamed (its kind name is used), but an empty name given on
// purpose is always a configuration mistake.
type InvalidNameError struct {
	Class string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("%s: node name must not be empty", e.Class)
}

// TooManyArgsError reports more positional shorthand values than the
// node's parameter table declares.
type TooManyArgsError struct {
	Class string
	Got   int
	Max   int
}

func (e *TooManyArgsError) Error() string {
	return fmt.Sprintf("%s: %d positional arguments given, table declares %d", e.Class, e.Got, e.Max)
}

// UnknownArgError reports a keyword override for a key the parameter
// table does not declare.
type UnknownArgError struct {
	Class string
	Key   string
}

func (e *UnknownArgError) Error() string {
	return fmt.Sprintf("%s: unknown parameter %q", e.Class, e.Key)
}
