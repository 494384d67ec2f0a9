package mirror

// Dict is an insertion-ordered attribute table. A struct field of type Dict or
// *Dict acts as the instance's dynamic attribute table.
type Dict struct {
	keys   []string
	values map[string]any
}

// NewDict builds a table from alternating name/value pairs. A trailing name
// without value is ignored.
func NewDict(pairs ...any) *Dict {
	d := &Dict{}
	for i := 0; i+1 < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			continue
		}
		d.Set(name, pairs[i+1])
	}
	return d
}

// Set binds name, keeping the original position when it already exists.
func (d *Dict) Set(name string, value any) {
	if d.values == nil {
		d.values = make(map[string]any)
	}
	if _, exists := d.values[name]; !exists {
		d.keys = append(d.keys, name)
	}
	d.values[name] = value
}

// Get returns the value bound to name.
func (d *Dict) Get(name string) (any, bool) {
	if d == nil || d.values == nil {
		return nil, false
	}
	value, ok := d.values[name]
	return value, ok
}

// Has reports whether name is bound.
func (d *Dict) Has(name string) bool {
	_, ok := d.Get(name)
	return ok
}

// Delete unbinds name.
func (d *Dict) Delete(name string) {
	if d == nil || d.values == nil {
		return
	}
	if _, ok := d.values[name]; !ok {
		return
	}
	delete(d.values, name)
	for idx, key := range d.keys {
		if key == name {
			d.keys = append(d.keys[:idx], d.keys[idx+1:]...)
			break
		}
	}
}

// Keys returns the bound names in insertion order.
func (d *Dict) Keys() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.keys...)
}

// Len returns the number of bound names.
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}
