package sparse_test

import (
	"bytes"
	"testing"

	"github.com/baldurk/renderdoc-sub009/sparse"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func page(memory sparse.ResourceId, offset uint64) sparse.Page {
	return sparse.Page{Memory: memory, Offset: offset}
}

var nullPage = sparse.Page{}

// newLoggedTable returns a page table whose log output is captured in the returned buffer
func newLoggedTable() (*sparse.PageTable, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf))
	return sparse.NewPageTable(logger), &buf
}

func requireSingle(t *testing.T, mapping sparse.PageRangeMapping, expected sparse.Page, reused bool) {
	t.Helper()
	require.True(t, mapping.HasSingleMapping())
	require.Equal(t, expected, mapping.SingleMapping)
	require.Equal(t, reused, mapping.SinglePageReused)
}
