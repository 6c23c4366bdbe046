package docmodel

// Size returns the element count of the list or array at path.
func (d *Document) Size(path string) (int, error) {
	items, err := d.Items(path)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// Each calls fn for every element of the list or array at path, in order. The
// element count is fixed when iteration starts; documents handed to fn are
// live, so writes through them change d.
func (d *Document) Each(path string, fn func(i int, v Value)) error {
	items, err := d.Items(path)
	if err != nil {
		return err
	}
	for i, v := range items {
		fn(i, v)
	}
	return nil
}

// Append adds v to the end of the list at path, creating the list if the key
// is absent.
func (d *Document) Append(path string, v Value) *Document {
	return d.record(d.assign(path+"[*]", v))
}
