package vulkan

import (
	"github.com/baldurk/renderdoc-sub009/sparse"
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/core1_0"
	"golang.org/x/exp/slog"
)

// ImageSparseRequirements are the sparse memory requirements of an image's bound aspect
type ImageSparseRequirements struct {
	// Granularity is the texel size of one sparse block
	Granularity core1_0.Extent3D
	// MipTailFirstLod is the first mip level in the mip tail. It is at least the image's mip count
	// when the image has no mip tail
	MipTailFirstLod uint32
	// MipTailSize is the byte size of one array layer's mip tail, or of the whole tail when
	// SingleMipTail is set
	MipTailSize uint64
	// MipTailOffset is the opaque byte offset of the mip tail in the image's memory binding range
	MipTailOffset uint64
	// MipTailStride is the opaque byte stride between array layers' mip tails
	MipTailStride uint64
	// SingleMipTail is set when all array layers share one mip tail
	SingleMipTail bool
}

type CreateOptions struct {
	// Logger is used by the resource and its page table. If nil, slog.Default() is used
	Logger *slog.Logger
	// Memories assigns ids to bound memory. Resources bound from the same memory objects should share
	// a registry. If nil the resource creates its own, unsynchronized
	Memories *MemoryRegistry
}

// Resource tracks the sparse bindings of one buffer or image
type Resource struct {
	logger   *slog.Logger
	memories *MemoryRegistry
	table    *sparse.PageTable
	image    bool
}

func newResource(options CreateOptions) *Resource {
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	memories := options.Memories
	if memories == nil {
		memories = NewMemoryRegistry(false)
	}

	return &Resource{
		logger:   logger,
		memories: memories,
		table:    sparse.NewPageTable(logger),
	}
}

// NewBufferResource creates a sparse buffer with nothing bound. The sparse block size is the
// alignment of the buffer's memory requirements.
func NewBufferResource(info core1_0.BufferCreateInfo, req core1_0.MemoryRequirements, options CreateOptions) (*Resource, error) {
	if req.Alignment <= 0 {
		return nil, errors.Newf("sparse buffer has invalid block size %d", req.Alignment)
	}

	r := newResource(options)
	r.table.InitialiseBuffer(uint64(info.Size), uint32(req.Alignment))
	return r, nil
}

// NewImageResource creates a sparse image with nothing bound. 3D images have a single array layer.
func NewImageResource(info core1_0.ImageCreateInfo, req core1_0.MemoryRequirements, sparseReq ImageSparseRequirements, options CreateOptions) (*Resource, error) {
	if req.Alignment <= 0 {
		return nil, errors.Newf("sparse image has invalid block size %d", req.Alignment)
	}
	if sparseReq.Granularity.Width <= 0 || sparseReq.Granularity.Height <= 0 || sparseReq.Granularity.Depth <= 0 {
		return nil, errors.Newf("sparse image has invalid block granularity %+v", sparseReq.Granularity)
	}

	depth := uint32(1)
	layers := uint32(info.ArrayLayers)
	if info.ImageType == core1_0.ImageType3D {
		depth = uint32(info.Extent.Depth)
		layers = 1
	}

	tailStride := sparseReq.MipTailStride
	tailSize := sparseReq.MipTailSize * uint64(layers)
	if sparseReq.SingleMipTail {
		tailStride = 0
		tailSize = sparseReq.MipTailSize
	}

	r := newResource(options)
	r.image = true
	r.table.InitialiseImage(
		sparse.Coord{X: uint32(info.Extent.Width), Y: uint32(info.Extent.Height), Z: depth},
		uint32(info.MipLevels), layers, uint32(req.Alignment),
		sparse.Coord{
			X: uint32(sparseReq.Granularity.Width),
			Y: uint32(sparseReq.Granularity.Height),
			Z: uint32(sparseReq.Granularity.Depth),
		},
		sparseReq.MipTailFirstLod, sparseReq.MipTailOffset, tailStride, tailSize)

	return r, nil
}

func (r *Resource) PageTable() *sparse.PageTable {
	return r.table
}

func (r *Resource) Memories() *MemoryRegistry {
	return r.memories
}
