package node

import (
	"reflect"
	"runtime"
	"strings"
)

// FuncName returns a display name for a function value: the bare
// symbol name without package path or closure suffixes. Best effort;
// returns "" when the symbol cannot be resolved (or is an anonymous
// closure, whose generated name helps nobody).
func FuncName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return ""
	}
	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return ""
	}
	name := rf.Name()
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, "-fm")
	if strings.HasPrefix(name, "func") {
		return ""
	}
	return name
}

// kindName derives a display name from a module's concrete type,
// dropping pointer markers and generic type arguments.
func kindName(m any) string {
	t := reflect.TypeOf(m)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	name := t.Name()
	if i := strings.Index(name, "["); i >= 0 {
		name = name[:i]
	}
	return name
}
