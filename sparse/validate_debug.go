//go:build debug_sparse

package sparse

import "github.com/cockroachdb/errors"

// DebugValidate will call Validate on the provided object and panics if any errors are returned. This
// method no-ops unless the debug_sparse build tag is present
func DebugValidate(validatable Validatable) {
	err := validatable.Validate()
	if err != nil {
		panic(err)
	}
}

// assert panics if condition is false. It returns condition so that callers in builds without the
// debug_sparse tag can bail out of an operation that would otherwise index out of range.
func (t *PageTable) assert(condition bool, format string, args ...any) bool {
	if !condition {
		panic(errors.AssertionFailedf("%s", assertionMessage(format, args...)))
	}
	return true
}
