package sparse

// MipTail describes the packed tail of small mips for a texture, or the whole of a buffer.
//
// A ByteStride of 0 means every array slice shares one packed tail and Mappings has a single entry.
// Otherwise each slice has its own tail ByteStride bytes after the previous one, and Mappings has one
// entry per slice. A table whose FirstMip is at or beyond its mip count has no tail.
type MipTail struct {
	FirstMip            uint32
	ByteOffset          uint64
	ByteStride          uint64
	TotalPackedByteSize uint64
	Mappings            []PageRangeMapping
}

func (t *MipTail) clone() MipTail {
	tail := *t
	if t.Mappings != nil {
		tail.Mappings = make([]PageRangeMapping, len(t.Mappings))
		for i := range t.Mappings {
			tail.Mappings[i] = t.Mappings[i].Clone()
		}
	}
	return tail
}

// sliceByteSize is the number of bytes each mapping in the tail covers
func (t *MipTail) sliceByteSize() uint64 {
	if t.ByteStride == 0 || len(t.Mappings) == 0 {
		return t.TotalPackedByteSize
	}
	return t.TotalPackedByteSize / uint64(len(t.Mappings))
}
