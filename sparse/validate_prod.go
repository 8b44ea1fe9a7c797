//go:build !debug_sparse

package sparse

import (
	"context"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/slog"
)

// DebugValidate will call Validate on the provided object and panics if any errors are returned. This
// method no-ops unless the debug_sparse build tag is present
func DebugValidate(validatable Validatable) {
}

// assert logs an assertion failure if condition is false and returns condition. Callers stop the
// current operation on false.
func (t *PageTable) assert(condition bool, format string, args ...any) bool {
	if !condition {
		err := errors.AssertionFailedf("%s", assertionMessage(format, args...))
		t.log().LogAttrs(context.Background(), slog.LevelError, "sparse page table assertion failed", slog.String("error", err.Error()))
	}
	return condition
}
