package sparse

type Statistics struct {
	// MappingCount is the number of page range mappings, counting each mip tail mapping and each
	// subresource outside the mip tail
	MappingCount int
	// ExpandedMappingCount is how many of those mappings hold an explicit page array
	ExpandedMappingCount int
	PageCount            int
	MappedPageCount      int
	// ExpandedPageCount is the number of pages stored explicitly across all expanded mappings
	ExpandedPageCount int
}

func (s *Statistics) Clear() {
	s.MappingCount = 0
	s.ExpandedMappingCount = 0
	s.PageCount = 0
	s.MappedPageCount = 0
	s.ExpandedPageCount = 0
}

func (s *Statistics) AddStatistics(other *Statistics) {
	s.MappingCount += other.MappingCount
	s.ExpandedMappingCount += other.ExpandedMappingCount
	s.PageCount += other.PageCount
	s.MappedPageCount += other.MappedPageCount
	s.ExpandedPageCount += other.ExpandedPageCount
}

func (s *Statistics) addMapping(mapping *PageRangeMapping, numPages uint32) {
	s.MappingCount++
	s.PageCount += int(numPages)

	if mapping.HasSingleMapping() {
		if !mapping.SingleMapping.IsNull() {
			s.MappedPageCount += int(numPages)
		}
		return
	}

	s.ExpandedMappingCount++
	s.ExpandedPageCount += len(mapping.Pages)
	for _, page := range mapping.Pages {
		if !page.IsNull() {
			s.MappedPageCount++
		}
	}
}

// AddStatistics adds the table's mapping and page counts to stats
func (t *PageTable) AddStatistics(stats *Statistics) {
	for sub := uint32(0); sub < t.NumSubresources(); sub++ {
		if t.IsSubresourceInMipTail(sub) && len(t.mipTail.Mappings) > 0 {
			continue
		}
		stats.addMapping(&t.subresources[sub], t.CalcSubresourcePageDim(sub).Volume())
	}

	tailPages := t.MipTailSlicePageCount()
	for i := range t.mipTail.Mappings {
		stats.addMapping(&t.mipTail.Mappings[i], tailPages)
	}
}
