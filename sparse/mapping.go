package sparse

import "golang.org/x/exp/slices"

// PageRangeMapping holds the binding for one contiguous run of pages: one subresource, or one slice
// of a mip tail.
//
// When Pages is empty the mapping is in its single form and SingleMapping stands in for every page
// in the run. If SinglePageReused is set each page resolves to exactly SingleMapping, otherwise page
// i resolves to SingleMapping with its offset advanced by i pages. When Pages is non-empty it holds
// one entry per page and the single fields are ignored and kept null.
type PageRangeMapping struct {
	SingleMapping    Page
	SinglePageReused bool
	Pages            []Page
}

// HasSingleMapping returns true if the mapping is in its single form
func (m PageRangeMapping) HasSingleMapping() bool {
	return len(m.Pages) == 0
}

// IsMapped returns true if any page in the run is bound to non-null memory
func (m PageRangeMapping) IsMapped() bool {
	if m.HasSingleMapping() {
		return !m.SingleMapping.IsNull()
	}

	for _, page := range m.Pages {
		if !page.IsNull() {
			return true
		}
	}

	return false
}

// CreatePages expands a single mapping into numPages explicit pages. It does nothing if the pages have
// already been expanded.
func (m *PageRangeMapping) CreatePages(numPages uint32, pageSize uint32) {
	if len(m.Pages) > 0 {
		return
	}

	m.Pages = make([]Page, numPages)

	page := m.SingleMapping
	for i := range m.Pages {
		m.Pages[i] = page

		if !m.SinglePageReused && !page.IsNull() {
			page.Offset += uint64(pageSize)
		}
	}

	m.SingleMapping = Page{}
	m.SinglePageReused = false
}

// GetPage returns the page at idx within the run without expanding the mapping
func (m PageRangeMapping) GetPage(idx uint32, pageSize uint32) Page {
	if !m.HasSingleMapping() {
		return m.Pages[idx]
	}

	if m.SinglePageReused || m.SingleMapping.IsNull() {
		return m.SingleMapping
	}

	return Page{
		Memory: m.SingleMapping.Memory,
		Offset: m.SingleMapping.Offset + uint64(idx)*uint64(pageSize),
	}
}

// SimplifyUnmapped collapses an expanded mapping back to the null single form if every page is
// unbound. Uniformly bound expanded mappings are left expanded.
func (m *PageRangeMapping) SimplifyUnmapped() {
	if m.HasSingleMapping() {
		return
	}

	for _, page := range m.Pages {
		if !page.IsNull() {
			return
		}
	}

	m.Pages = nil
	m.SingleMapping = Page{}
	m.SinglePageReused = false
}

// Clone returns a copy of the mapping that shares no page storage with m
func (m *PageRangeMapping) Clone() PageRangeMapping {
	return PageRangeMapping{
		SingleMapping:    m.SingleMapping,
		SinglePageReused: m.SinglePageReused,
		Pages:            slices.Clone(m.Pages),
	}
}

func (m *PageRangeMapping) setSingle(memory ResourceId, offset uint64, reused bool) {
	m.Pages = nil
	m.SingleMapping = Page{Memory: memory, Offset: offset}
	m.SinglePageReused = reused
}
