package sparse

import (
	"fmt"
	"sync/atomic"
)

// ResourceId is an opaque identifier for a piece of backing memory. The page table only stores and
// compares these, it never dereferences them.
type ResourceId uint64

// NullResourceId is the identifier used for unbound pages
const NullResourceId ResourceId = 0

var resourceIDGen uint64

// NewResourceId returns an identifier that has not been returned before in this process.
func NewResourceId() ResourceId {
	return ResourceId(atomic.AddUint64(&resourceIDGen, 1))
}

func (id ResourceId) IsNull() bool {
	return id == NullResourceId
}

func (id ResourceId) String() string {
	return fmt.Sprintf("ResourceId::%d", uint64(id))
}
