package residency

import (
	"github.com/baldurk/renderdoc-sub009/sparse"
	"github.com/dolthub/swiss"
	"golang.org/x/exp/slices"
)

// Usage is the part of one memory object referenced by a page table
type Usage struct {
	Memory sparse.ResourceId
	// PageCount counts every page bound to the memory, so a reused page is counted once per use
	PageCount uint64
	// MinOffset and EndOffset bound the memory bytes referenced, [MinOffset, EndOffset)
	MinOffset uint64
	EndOffset uint64
}

func (u *Usage) add(offset uint64, size uint64, pages uint64) {
	if u.PageCount == 0 || offset < u.MinOffset {
		u.MinOffset = offset
	}
	if offset+size > u.EndOffset {
		u.EndOffset = offset + size
	}
	u.PageCount += pages
}

// Index is a reverse lookup from memory objects to the pages of a page table bound to them. It is
// a snapshot and does not follow later changes to the table.
type Index struct {
	pageByteSize uint64
	usage        *swiss.Map[sparse.ResourceId, *Usage]
}

// Build indexes every non-null memory bound anywhere in table. Mappings in their single form are
// counted without being expanded.
func Build(table *sparse.PageTable) *Index {
	index := &Index{
		pageByteSize: uint64(table.PageByteSize()),
		usage:        swiss.NewMap[sparse.ResourceId, *Usage](42),
	}

	tail := table.MipTail()
	for sub := uint32(0); sub < table.NumSubresources(); sub++ {
		if table.IsSubresourceInMipTail(sub) && len(tail.Mappings) > 0 {
			continue
		}

		mapping := table.MappingForSubresource(sub)
		index.addMapping(&mapping, table.CalcSubresourcePageDim(sub).Volume())
	}

	tailPages := table.MipTailSlicePageCount()
	for i := range tail.Mappings {
		index.addMapping(&tail.Mappings[i], tailPages)
	}

	return index
}

func (i *Index) addMapping(mapping *sparse.PageRangeMapping, numPages uint32) {
	if mapping.HasSingleMapping() {
		page := mapping.SingleMapping
		if page.IsNull() || numPages == 0 {
			return
		}

		size := uint64(numPages) * i.pageByteSize
		if mapping.SinglePageReused {
			size = i.pageByteSize
		}
		i.usageFor(page.Memory).add(page.Offset, size, uint64(numPages))
		return
	}

	for _, page := range mapping.Pages {
		if page.IsNull() {
			continue
		}
		i.usageFor(page.Memory).add(page.Offset, i.pageByteSize, 1)
	}
}

func (i *Index) usageFor(memory sparse.ResourceId) *Usage {
	usage, ok := i.usage.Get(memory)
	if !ok {
		usage = &Usage{Memory: memory}
		i.usage.Put(memory, usage)
	}
	return usage
}

// Memories returns every memory referenced by the table in ascending id order
func (i *Index) Memories() []sparse.ResourceId {
	memories := make([]sparse.ResourceId, 0, i.usage.Count())
	i.usage.Iter(func(memory sparse.ResourceId, _ *Usage) bool {
		memories = append(memories, memory)
		return false
	})
	slices.Sort(memories)
	return memories
}

func (i *Index) Usage(memory sparse.ResourceId) (Usage, bool) {
	usage, ok := i.usage.Get(memory)
	if !ok {
		return Usage{}, false
	}
	return *usage, true
}

func (i *Index) Has(memory sparse.ResourceId) bool {
	return i.usage.Has(memory)
}

// Count is the number of distinct memories referenced
func (i *Index) Count() int {
	return i.usage.Count()
}
