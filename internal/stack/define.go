// File: internal/stack/define.go
// Brief: The normalize → validate → cross-reference pipeline.

package stack

// DefineOptions configures Define. Registry supplies the per-collection
// entity validators; a nil registry skips schema validation but still runs
// the cross-reference check in strict mode.
type DefineOptions struct {
	Strict   bool
	Registry Registry
}

// NewDefineOptions returns the default options: strict, no registry.
func NewDefineOptions() DefineOptions {
	return DefineOptions{Strict: true}
}

// Define runs the full pipeline over a raw stack value. In strict mode the
// stack is normalized, schema-validated, and cross-reference-checked; any
// failure is returned as a typed aggregate error whose message is the full
// formatted report. With Strict false, Define normalizes only and returns
// the result unchecked — the escape hatch for stacks that intentionally
// reference entities owned by a sibling stack loaded later.
func Define(raw map[string]any, opts DefineOptions) (*Definition, error) {
	def, err := Normalize(raw)
	if err != nil {
		return nil, err
	}
	if !opts.Strict {
		return def, nil
	}
	if opts.Registry != nil {
		def, err = opts.Registry.Validate(def)
		if err != nil {
			return nil, err
		}
	}
	if err := CheckRefs(def); err != nil {
		return nil, err
	}
	return def, nil
}
