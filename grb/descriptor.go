package grb

import "runtime"

// Descriptor wraps an opaque GrB_Descriptor handle, which modifies how an
// operation treats its output, mask, and inputs.
type Descriptor struct {
	handle uintptr // Pointer to GrB_Descriptor
}

// NewDescriptor creates a descriptor with all fields at their defaults.
func NewDescriptor() (*Descriptor, error) {
	mu.Lock()
	defer mu.Unlock()

	a, err := apiUnderLock()
	if err != nil {
		return nil, err
	}

	var handle uintptr
	if info := Info(a.descriptorNew(&handle)); info != InfoSuccess {
		return nil, apiError("GrB_Descriptor_new", info)
	}

	d := &Descriptor{handle: handle}
	runtime.SetFinalizer(d, func(d *Descriptor) {
		_ = d.Destroy()
	})
	return d, nil
}

// Set assigns a value to one descriptor field.
func (d *Descriptor) Set(field DescField, value DescValue) error {
	mu.Lock()
	defer mu.Unlock()

	a, err := apiUnderLock()
	if err != nil {
		return err
	}
	if d == nil || d.handle == 0 {
		return apiError("GrB_Descriptor_set", InfoUninitializedObject)
	}

	if info := Info(a.descriptorSet(d.handle, int32(field), int32(value))); info != InfoSuccess {
		return apiError("GrB_Descriptor_set", info)
	}
	return nil
}

// Destroy releases the underlying GrB_Descriptor. Calling on a nil or
// already-destroyed receiver is a no-op.
func (d *Descriptor) Destroy() error {
	if d == nil {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	if d.handle == 0 {
		return nil
	}

	handle := d.handle
	d.handle = 0
	runtime.SetFinalizer(d, nil)

	if !initialized || api == nil {
		return nil
	}
	if info := Info(api.descriptorFree(&handle)); info != InfoSuccess {
		return apiError("GrB_Descriptor_free", info)
	}
	return nil
}
