package osconf

import (
	"errors"
	"fmt"
	"sort"

	"rustrial-os/confgen/pkg/size"
)

// Validate checks doc against the schema and produces the typed
// configuration. All findings across the document are accumulated;
// unknown sections and fields are ignored.
func Validate(doc *Document) (*ResolvedConfig, error) {
	return ValidateStrict(doc, false)
}

// ValidateStrict is Validate with unknown-section and unknown-field
// rejection switched on.
func ValidateStrict(doc *Document, strict bool) (*ResolvedConfig, error) {
	var errs []FieldError
	rc := &ResolvedConfig{}

	for _, spec := range schema {
		raw, ok := doc.Lookup(spec.Section, spec.Name)
		if !ok {
			errs = append(errs, NewMissingField(spec.Section, spec.Name))
			continue
		}
		if ferr := assign(rc, spec, raw); ferr != nil {
			errs = append(errs, *ferr)
		}
	}

	if strict {
		errs = append(errs, unknownEntries(doc)...)
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return rc, nil
}

// assign validates one raw value against its spec and stores it in the
// matching ResolvedConfig field. Schema table and switch stay in
// lockstep; TestValidateDefaults exercises every branch.
func assign(rc *ResolvedConfig, spec FieldSpec, raw any) *FieldError {
	switch spec.Path() {
	case "memory.heap_size":
		return assignSize(&rc.Memory.HeapSize, spec, raw)
	case "memory.dma_size":
		return assignSize(&rc.Memory.DMASize, spec, raw)
	case "memory.stack_size":
		return assignSize(&rc.Memory.StackSize, spec, raw)
	case "network.buffer_size":
		return assignCount(&rc.Network.BufferSize, spec, raw)
	case "network.rx_buffers":
		return assignCount(&rc.Network.RXBuffers, spec, raw)
	case "network.tx_buffers":
		return assignCount(&rc.Network.TXBuffers, spec, raw)
	case "display.width":
		return assignDimension(&rc.Display.Width, spec, raw)
	case "display.height":
		return assignDimension(&rc.Display.Height, spec, raw)
	case "display.default_color":
		return assignColor(&rc.Display.DefaultColor, spec, raw)
	case "display.default_bg":
		return assignColor(&rc.Display.DefaultBG, spec, raw)
	case "build.version":
		return assignText(&rc.Build.Version, spec, raw)
	case "build.target":
		return assignText(&rc.Build.Target, spec, raw)
	}
	return fieldErr(NewInvalidValue(spec.Section, spec.Name, "schema field has no assignment", nil))
}

// assignSize accepts a non-negative integer or a size literal.
func assignSize(dst *size.Value, spec FieldSpec, raw any) *FieldError {
	if s, ok := raw.(string); ok {
		parsed, err := size.Parse(s)
		if err != nil {
			reason := "invalid size literal"
			var perr *size.ParseError
			if errors.As(err, &perr) {
				reason = perr.Reason
			}
			return fieldErr(NewInvalidValue(spec.Section, spec.Name, reason, err))
		}
		*dst = parsed
		return nil
	}

	n, reason := toUint(raw)
	if reason != "" {
		return fieldErr(NewInvalidValue(spec.Section, spec.Name, reason, nil))
	}
	*dst = size.Value(n)
	return nil
}

// assignCount accepts a non-negative integer. Strings are the wrong
// shape here, even when they hold digits.
func assignCount(dst *uint64, spec FieldSpec, raw any) *FieldError {
	if _, ok := raw.(string); ok {
		return fieldErr(NewInvalidValue(spec.Section, spec.Name, "expected an integer, got a string", nil))
	}
	n, reason := toUint(raw)
	if reason != "" {
		return fieldErr(NewInvalidValue(spec.Section, spec.Name, reason, nil))
	}
	*dst = n
	return nil
}

// assignDimension accepts a positive integer.
func assignDimension(dst *uint64, spec FieldSpec, raw any) *FieldError {
	if _, ok := raw.(string); ok {
		return fieldErr(NewInvalidValue(spec.Section, spec.Name, "expected an integer, got a string", nil))
	}
	n, reason := toUint(raw)
	if reason != "" {
		return fieldErr(NewInvalidValue(spec.Section, spec.Name, reason, nil))
	}
	if n == 0 {
		return fieldErr(NewInvalidValue(spec.Section, spec.Name, "must be a positive integer", nil))
	}
	*dst = n
	return nil
}

// assignText accepts a non-empty string.
func assignText(dst *string, spec FieldSpec, raw any) *FieldError {
	s, ok := raw.(string)
	if !ok {
		return fieldErr(NewInvalidValue(spec.Section, spec.Name, fmt.Sprintf("expected a string, got %T", raw), nil))
	}
	if s == "" {
		return fieldErr(NewInvalidValue(spec.Section, spec.Name, "must not be empty", nil))
	}
	*dst = s
	return nil
}

// assignColor accepts one of the 16 VGA palette color names.
func assignColor(dst *string, spec FieldSpec, raw any) *FieldError {
	s, ok := raw.(string)
	if !ok {
		return fieldErr(NewInvalidValue(spec.Section, spec.Name, fmt.Sprintf("expected a string, got %T", raw), nil))
	}
	if !IsVGAColor(s) {
		return fieldErr(NewInvalidValue(spec.Section, spec.Name, fmt.Sprintf("%q is not a VGA palette color", s), nil))
	}
	*dst = s
	return nil
}

// toUint coerces the integer shapes the decoders produce: YAML yields
// int, TOML int64. An empty reason means success.
func toUint(raw any) (uint64, string) {
	switch v := raw.(type) {
	case int:
		if v < 0 {
			return 0, "must be non-negative"
		}
		return uint64(v), ""
	case int64:
		if v < 0 {
			return 0, "must be non-negative"
		}
		return uint64(v), ""
	case uint64:
		return v, ""
	case float64, float32:
		return 0, "must be an integer, not a float"
	default:
		return 0, fmt.Sprintf("expected an integer, got %T", raw)
	}
}

// unknownEntries reports document content the schema does not declare, in
// deterministic order.
func unknownEntries(doc *Document) []FieldError {
	known := make(map[string]map[string]bool, len(sectionLabels))
	for _, spec := range schema {
		fields, ok := known[spec.Section]
		if !ok {
			fields = make(map[string]bool)
			known[spec.Section] = fields
		}
		fields[spec.Name] = true
	}

	var errs []FieldError
	for _, section := range sortedKeys(doc.Sections) {
		fields, ok := known[section]
		if !ok {
			errs = append(errs, NewUnknownSection(section))
			continue
		}
		for _, name := range sortedKeys(doc.Sections[section]) {
			if !fields[name] {
				errs = append(errs, NewUnknownField(section, name))
			}
		}
	}
	return errs
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func fieldErr(fe FieldError) *FieldError { return &fe }
