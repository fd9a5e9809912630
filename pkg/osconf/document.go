package osconf

// Document is the raw, pre-validation form of a configuration document.
// Section values are scalars exactly as the decoder produced them, so a
// field can hold a string where an integer belongs; shape checking is
// Validate's concern, not the loader's.
type Document struct {
	// Sections maps section name to field name to raw scalar.
	Sections map[string]map[string]any

	// Source is the file path the document was loaded from, or "" for
	// the built-in default document.
	Source string
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{Sections: make(map[string]map[string]any)}
}

// Lookup returns the raw value stored at section.field.
func (d *Document) Lookup(section, field string) (any, bool) {
	fields, ok := d.Sections[section]
	if !ok {
		return nil, false
	}
	v, ok := fields[field]
	return v, ok
}

// Set stores a raw value, allocating the section on first use.
func (d *Document) Set(section, field string, value any) {
	if d.Sections == nil {
		d.Sections = make(map[string]map[string]any)
	}
	fields, ok := d.Sections[section]
	if !ok {
		fields = make(map[string]any)
		d.Sections[section] = fields
	}
	fields[field] = value
}

// Delete removes a field if present. Mainly useful to tests building
// broken documents from the defaults.
func (d *Document) Delete(section, field string) {
	if fields, ok := d.Sections[section]; ok {
		delete(fields, field)
	}
}
