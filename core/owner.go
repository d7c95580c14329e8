package core

import vk "github.com/vulkan-go/vulkan"

// Owner holds exactly one Vulkan handle together with the function
// that destroys it. The zero value of T is treated as the null handle,
// an Owner never invokes its destructor on it. Destruction ordering is
// established by the caller: an Owner must be destroyed strictly after
// every Owner that captured it as a parent.
type Owner[T comparable] struct {
	object  T
	destroy func(T)
}

// NewOwner creates an Owner for handles whose destructor needs only
// the handle itself, such as a vk.Instance or a vk.Device.
func NewOwner[T comparable](destroy func(T)) *Owner[T] {
	return &Owner[T]{destroy: destroy}
}

// NewInstanceOwner creates an Owner for handles destroyed against an
// owning instance. The instance handle is read at destruction time, so
// the parent Owner may be filled after this one is constructed.
func NewInstanceOwner[T comparable](instance *Owner[vk.Instance], destroy func(vk.Instance, T)) *Owner[T] {
	return &Owner[T]{destroy: func(obj T) {
		destroy(instance.Get(), obj)
	}}
}

// NewDeviceOwner creates an Owner for handles destroyed against an
// owning logical device.
func NewDeviceOwner[T comparable](device *Owner[vk.Device], destroy func(vk.Device, T)) *Owner[T] {
	return &Owner[T]{destroy: func(obj T) {
		destroy(device.Get(), obj)
	}}
}

// Get returns the held handle for passing into driver calls.
// Ownership is not transferred.
func (o *Owner[T]) Get() T {
	return o.object
}

// Set stores a new handle, destroying the previously held one first.
func (o *Owner[T]) Set(obj T) {
	if obj != o.object {
		o.cleanup()
		o.object = obj
	}
}

// Replace destroys the held handle and returns a pointer to the empty
// slot, ready to be filled by a vk.CreateX call.
func (o *Owner[T]) Replace() *T {
	o.cleanup()
	return &o.object
}

// Empty reports whether the Owner currently holds the null handle.
func (o *Owner[T]) Empty() bool {
	var null T
	return o.object == null
}

// Destroy releases the held handle. Destroying an empty Owner is a no-op,
// so calling it again, or after a failed creation, is safe.
func (o *Owner[T]) Destroy() {
	o.cleanup()
}

func (o *Owner[T]) cleanup() {
	var null T
	if o.object != null {
		o.destroy(o.object)
		o.object = null
	}
}

// destroyAll releases a batch of same-typed Owners in reverse order of
// creation. Used for the per-image resources that come in slices.
func destroyAll[T comparable](owners []*Owner[T]) {
	for idx := len(owners) - 1; idx >= 0; idx-- {
		owners[idx].Destroy()
	}
}
