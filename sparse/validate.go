package sparse

import (
	"fmt"

	cerrors "github.com/cockroachdb/errors"
)

// Validatable is used by the DebugValidate method to allow it to act upon
// all types with a Validate method
type Validatable interface {
	Validate() error
}

var _ Validatable = &PageTable{}

// Validate checks the structural invariants of the page table and returns an error describing the
// first one that does not hold.
func (t *PageTable) Validate() error {
	if t.pageByteSize == 0 {
		return cerrors.Wrap(InvalidPageTableError, "page byte size is zero")
	}

	if uint32(len(t.subresources)) != t.arraySize*t.mipCount {
		return cerrors.Wrapf(InvalidPageTableError, "%d subresources for %d slices of %d mips",
			len(t.subresources), t.arraySize, t.mipCount)
	}

	if t.mipTail.FirstMip < t.mipCount {
		expected := 1
		if t.mipTail.ByteStride != 0 {
			expected = int(t.arraySize)
		}
		if len(t.mipTail.Mappings) != expected {
			return cerrors.Wrapf(InvalidPageTableError, "mip tail has %d mappings, expected %d",
				len(t.mipTail.Mappings), expected)
		}
	} else if len(t.mipTail.Mappings) != 0 {
		return cerrors.Wrapf(InvalidPageTableError, "mip tail starting at mip %d of %d has %d mappings",
			t.mipTail.FirstMip, t.mipCount, len(t.mipTail.Mappings))
	}

	for sub := range t.subresources {
		if err := t.validateMapping(&t.subresources[sub], t.CalcSubresourcePageDim(uint32(sub)).Volume()); err != nil {
			return cerrors.Wrapf(err, "subresource %d", sub)
		}
	}

	tailPages := t.MipTailSlicePageCount()
	for slice := range t.mipTail.Mappings {
		if err := t.validateMapping(&t.mipTail.Mappings[slice], tailPages); err != nil {
			return cerrors.Wrapf(err, "mip tail mapping %d", slice)
		}
	}

	return nil
}

func (t *PageTable) validateMapping(mapping *PageRangeMapping, numPages uint32) error {
	if mapping.HasSingleMapping() {
		return nil
	}

	if uint32(len(mapping.Pages)) != numPages {
		return cerrors.Wrapf(InvalidPageTableError, "expanded mapping has %d pages, expected %d",
			len(mapping.Pages), numPages)
	}

	if mapping.SingleMapping != (Page{}) || mapping.SinglePageReused {
		return cerrors.Wrap(InvalidPageTableError, "expanded mapping has a non-null single mapping")
	}

	for i, page := range mapping.Pages {
		if page.IsNull() && page.Offset != 0 {
			return cerrors.Wrapf(InvalidPageTableError, "unbound page %d has offset %d", i, page.Offset)
		}
	}

	return nil
}

func assertionMessage(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}
