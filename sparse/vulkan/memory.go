package vulkan

import (
	"sync"

	"github.com/baldurk/renderdoc-sub009/sparse"
	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/core/v2/driver"
)

//go:generate mockgen -destination mocks/devicememory.go -package mocks github.com/baldurk/renderdoc-sub009/sparse/vulkan DeviceMemory

// DeviceMemory is the part of core1_0.DeviceMemory needed to track sparse bindings
type DeviceMemory interface {
	Handle() driver.VkDeviceMemory
}

// MemoryRegistry assigns a sparse.ResourceId to each DeviceMemory object bound to sparse resources,
// so that page tables can refer to memory without holding Vulkan objects. Memories are identified by
// the DeviceMemory object itself.
type MemoryRegistry struct {
	mutex        sync.RWMutex
	synchronized bool

	ids      *swiss.Map[DeviceMemory, sparse.ResourceId]
	memories *swiss.Map[sparse.ResourceId, DeviceMemory]
}

// NewMemoryRegistry creates an empty registry. A registry shared by resources that are bound from
// more than one goroutine should be synchronized.
func NewMemoryRegistry(synchronized bool) *MemoryRegistry {
	return &MemoryRegistry{
		synchronized: synchronized,
		ids:          swiss.NewMap[DeviceMemory, sparse.ResourceId](42),
		memories:     swiss.NewMap[sparse.ResourceId, DeviceMemory](42),
	}
}

func (r *MemoryRegistry) lock() {
	if r.synchronized {
		r.mutex.Lock()
	}
}

func (r *MemoryRegistry) unlock() {
	if r.synchronized {
		r.mutex.Unlock()
	}
}

func (r *MemoryRegistry) rlock() {
	if r.synchronized {
		r.mutex.RLock()
	}
}

func (r *MemoryRegistry) runlock() {
	if r.synchronized {
		r.mutex.RUnlock()
	}
}

// Register returns the id of memory, assigning a new one the first time memory is seen. A nil memory
// is sparse.NullResourceId.
func (r *MemoryRegistry) Register(memory DeviceMemory) sparse.ResourceId {
	if memory == nil {
		return sparse.NullResourceId
	}

	r.lock()
	defer r.unlock()

	id, ok := r.ids.Get(memory)
	if !ok {
		id = sparse.NewResourceId()
		r.ids.Put(memory, id)
		r.memories.Put(id, memory)
	}
	return id
}

func (r *MemoryRegistry) Lookup(memory DeviceMemory) (sparse.ResourceId, bool) {
	if memory == nil {
		return sparse.NullResourceId, false
	}

	r.rlock()
	defer r.runlock()
	return r.ids.Get(memory)
}

// Memory returns the memory object an id was assigned to
func (r *MemoryRegistry) Memory(id sparse.ResourceId) (DeviceMemory, bool) {
	r.rlock()
	defer r.runlock()
	return r.memories.Get(id)
}

// Forget drops memory from the registry, typically once it has been freed. Page tables that still
// refer to its id are unaffected.
func (r *MemoryRegistry) Forget(memory DeviceMemory) {
	if memory == nil {
		return
	}

	r.lock()
	defer r.unlock()

	id, ok := r.ids.Get(memory)
	if !ok {
		return
	}
	r.ids.Delete(memory)
	r.memories.Delete(id)
}

func (r *MemoryRegistry) Count() int {
	r.rlock()
	defer r.runlock()
	return r.ids.Count()
}
