package vulkan

import (
	"context"

	"github.com/baldurk/renderdoc-sub009/sparse"
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/core1_0"
	"golang.org/x/exp/slog"
)

type SparseMemoryBindFlags uint32

const (
	// SparseMemoryBindMetadata binds the metadata aspect, which is not tracked
	SparseMemoryBindMetadata SparseMemoryBindFlags = 1
)

// MemoryBind binds an opaque byte range of a resource to memory. A nil Memory unbinds the range.
type MemoryBind struct {
	ResourceOffset uint64
	Size           uint64
	Memory         DeviceMemory
	MemoryOffset   uint64
	Flags          SparseMemoryBindFlags
}

type ImageSubresource struct {
	MipLevel   uint32
	ArrayLayer uint32
}

// ImageMemoryBind binds a texel region of one image subresource to memory. A nil Memory unbinds the
// region.
type ImageMemoryBind struct {
	Subresource  ImageSubresource
	Offset       core1_0.Offset3D
	Extent       core1_0.Extent3D
	Memory       DeviceMemory
	MemoryOffset uint64
}

func (r *Resource) memoryId(memory DeviceMemory) sparse.ResourceId {
	return r.memories.Register(memory)
}

// BindBuffer applies opaque binds to a sparse buffer
func (r *Resource) BindBuffer(binds []MemoryBind) error {
	if r.image {
		return errors.New("cannot apply buffer binds to an image")
	}

	for _, bind := range binds {
		if bind.Flags&SparseMemoryBindMetadata != 0 {
			r.logger.LogAttrs(context.Background(), slog.LevelWarn, "skipping metadata bind on sparse buffer",
				slog.Uint64("ResourceOffset", bind.ResourceOffset))
			continue
		}

		memory := r.memoryId(bind.Memory)
		r.logger.Debug("BindBuffer",
			slog.Uint64("ResourceOffset", bind.ResourceOffset),
			slog.Uint64("Size", bind.Size),
			slog.String("Memory", memory.String()),
			slog.Uint64("MemoryOffset", bind.MemoryOffset))

		r.table.SetBufferRange(bind.ResourceOffset, memory, bind.MemoryOffset, bind.Size, false)
	}

	return nil
}

// BindImageOpaque applies opaque binds to a sparse image. Only binds of the mip tail are tracked
// since the opaque layout of the rest of an image is implementation-defined. Other binds are skipped
// with a warning.
func (r *Resource) BindImageOpaque(binds []MemoryBind) error {
	if !r.image {
		return errors.New("cannot apply opaque image binds to a buffer")
	}

	for _, bind := range binds {
		if bind.Flags&SparseMemoryBindMetadata != 0 {
			r.logger.LogAttrs(context.Background(), slog.LevelWarn, "skipping metadata bind on sparse image",
				slog.Uint64("ResourceOffset", bind.ResourceOffset))
			continue
		}

		if !r.table.IsByteOffsetInResource(bind.ResourceOffset) {
			r.logger.LogAttrs(context.Background(), slog.LevelWarn, "skipping opaque image bind outside the mip tail",
				slog.Uint64("ResourceOffset", bind.ResourceOffset),
				slog.Uint64("Size", bind.Size))
			continue
		}

		memory := r.memoryId(bind.Memory)
		r.logger.Debug("BindImageOpaque",
			slog.Uint64("ResourceOffset", bind.ResourceOffset),
			slog.Uint64("Size", bind.Size),
			slog.String("Memory", memory.String()),
			slog.Uint64("MemoryOffset", bind.MemoryOffset))

		r.table.SetMipTailRange(bind.ResourceOffset, memory, bind.MemoryOffset, bind.Size, false)
	}

	return nil
}

// BindImage applies texel region binds to a sparse image. Subresources in the mip tail can only be
// bound with BindImageOpaque. Binds before an invalid bind are still applied.
func (r *Resource) BindImage(binds []ImageMemoryBind) error {
	if !r.image {
		return errors.New("cannot apply image binds to a buffer")
	}

	for i, bind := range binds {
		if bind.Subresource.MipLevel >= r.table.MipCount() || bind.Subresource.ArrayLayer >= r.table.ArraySize() {
			return errors.Newf("bind %d subresource mip %d layer %d is outside the image", i, bind.Subresource.MipLevel, bind.Subresource.ArrayLayer)
		}
		if bind.Offset.X < 0 || bind.Offset.Y < 0 || bind.Offset.Z < 0 {
			return errors.Newf("bind %d has negative offset %+v", i, bind.Offset)
		}

		sub := r.table.CalcSubresource(bind.Subresource.ArrayLayer, bind.Subresource.MipLevel)
		if r.table.IsSubresourceInMipTail(sub) {
			return errors.Newf("bind %d is for mip %d in the mip tail", i, bind.Subresource.MipLevel)
		}

		offset := sparse.Coord{X: uint32(bind.Offset.X), Y: uint32(bind.Offset.Y), Z: uint32(bind.Offset.Z)}
		extent := sparse.Coord{X: uint32(bind.Extent.Width), Y: uint32(bind.Extent.Height), Z: uint32(bind.Extent.Depth)}
		memory := r.memoryId(bind.Memory)

		r.logger.Debug("BindImage",
			slog.Int("Subresource", int(sub)),
			slog.String("Offset", offset.String()),
			slog.String("Extent", extent.String()),
			slog.String("Memory", memory.String()),
			slog.Uint64("MemoryOffset", bind.MemoryOffset))

		r.table.SetImageBoxRange(sub, offset, extent, memory, bind.MemoryOffset, false)
	}

	return nil
}
