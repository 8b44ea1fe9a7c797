package sparse

import "unsafe"

//go:generate mockgen -destination mocks/visitor.go -package mocks github.com/baldurk/renderdoc-sub009/sparse Visitor

// Visitor receives the fields of a page table in a fixed order, so that a generic serializer can
// persist or display it without knowing its structure. Every BeginStruct and BeginArray is matched by
// an EndStruct or EndArray. Elements of an array are visited with an empty name.
type Visitor interface {
	BeginStruct(name string)
	EndStruct()
	BeginArray(name string, length int)
	EndArray()
	Uint32(name string, value uint32)
	Uint64(name string, value uint64)
	// OffsetOrSize is a 64-bit quantity that measures bytes
	OffsetOrSize(name string, value uint64)
	Bool(name string, value bool)
	ResourceId(name string, value ResourceId)
}

func (c Coord) Serialise(name string, visitor Visitor) {
	visitor.BeginStruct(name)
	visitor.Uint32("x", c.X)
	visitor.Uint32("y", c.Y)
	visitor.Uint32("z", c.Z)
	visitor.EndStruct()
}

func (p Page) Serialise(name string, visitor Visitor) {
	visitor.BeginStruct(name)
	visitor.ResourceId("memory", p.Memory)
	visitor.Uint64("offset", p.Offset)
	visitor.EndStruct()
}

func (m *PageRangeMapping) Serialise(name string, visitor Visitor) {
	visitor.BeginStruct(name)
	m.SingleMapping.Serialise("singleMapping", visitor)
	visitor.Bool("singlePageReused", m.SinglePageReused)
	visitor.BeginArray("pages", len(m.Pages))
	for _, page := range m.Pages {
		page.Serialise("", visitor)
	}
	visitor.EndArray()
	visitor.EndStruct()
}

func (t *MipTail) Serialise(name string, visitor Visitor) {
	visitor.BeginStruct(name)
	visitor.Uint32("firstMip", t.FirstMip)
	visitor.OffsetOrSize("byteOffset", t.ByteOffset)
	visitor.Uint64("byteStride", t.ByteStride)
	visitor.Uint64("totalPackedByteSize", t.TotalPackedByteSize)
	serialiseMappings("mappings", t.Mappings, visitor)
	visitor.EndStruct()
}

// Serialise walks every field of the table in declaration order
func (t *PageTable) Serialise(name string, visitor Visitor) {
	visitor.BeginStruct(name)
	t.textureDim.Serialise("textureDim", visitor)
	visitor.Uint32("mipCount", t.mipCount)
	visitor.Uint32("arraySize", t.arraySize)
	visitor.OffsetOrSize("pageByteSize", uint64(t.pageByteSize))
	t.pageTexelSize.Serialise("pageTexelSize", visitor)
	serialiseMappings("subresources", t.subresources, visitor)
	t.mipTail.Serialise("mipTail", visitor)
	visitor.EndStruct()
}

func serialiseMappings(name string, mappings []PageRangeMapping, visitor Visitor) {
	visitor.BeginArray(name, len(mappings))
	for i := range mappings {
		mappings[i].Serialise("", visitor)
	}
	visitor.EndArray()
}

// SerialiseSize estimates the number of bytes needed to store the table: a fixed size for the table
// and for each mapping, plus one Page for every page of each expanded mapping.
func (t *PageTable) SerialiseSize() uint64 {
	size := uint64(unsafe.Sizeof(*t))

	mappingSize := func(mapping *PageRangeMapping) uint64 {
		ret := uint64(unsafe.Sizeof(PageRangeMapping{}))
		if !mapping.HasSingleMapping() {
			ret += uint64(unsafe.Sizeof(Page{})) * uint64(len(mapping.Pages))
		}
		return ret
	}

	for i := range t.mipTail.Mappings {
		size += mappingSize(&t.mipTail.Mappings[i])
	}

	for i := range t.subresources {
		size += mappingSize(&t.subresources[i])
	}

	return size
}
