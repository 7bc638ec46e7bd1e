package populate

// ValidateDepth rejects a tree holding an array field anywhere below its
// root. Joining such a field would need a per-element unwind and regroup at
// a nested level, which has no unambiguous single-pass form.
func ValidateDepth(t Tree) error {
	return t.Walk(func(v Visit) error {
		if v.Depth > 0 && v.Field.IsArray {
			return &PathError{Kind: ErrUnsupportedDepth, Path: v.Path, Segment: v.Field.Name}
		}
		return nil
	})
}
