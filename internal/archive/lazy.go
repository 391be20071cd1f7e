package archive

// cell is a one-shot initializable field: the first successful call to
// get invokes load and caches the result; an error is returned without
// being cached, leaving the cell unloaded so a retry is possible. Once
// loaded, every later call returns the cached value directly. This is the "load once, no synchronization"
// accessor the lazy column store and the rest of the read path share —
// concurrent first access is explicitly not required to be safe.
type cell[T any] struct {
	loaded bool
	value  T
}

func (c *cell[T]) get(load func() (T, error)) (T, error) {
	if c.loaded {
		return c.value, nil
	}
	v, err := load()
	if err != nil {
		var zero T
		return zero, err
	}
	c.value = v
	c.loaded = true
	return c.value, nil
}
