package populate

import (
	"errors"

	"github.com/rediwo/mongo-join/types"
	"github.com/rediwo/mongo-join/utils"
)

// Field is one resolved segment of a population path
type Field struct {
	Name    string
	IsArray bool

	// Model and Collection name the referenced model; both are empty when
	// the field is not a reference
	Model      string
	Collection string
}

// IsJoin reports whether the field references another collection
func (f Field) IsJoin() bool {
	return f.Collection != ""
}

// Same is the structural identity used when merging population trees
func (f Field) Same(other Field) bool {
	return f.Name == other.Name && f.Collection == other.Collection
}

// ResolveSegment resolves one field of model. For a reference it also
// returns the referenced model, against which the next segment resolves. For
// a document with declared fields next is the embedded model; otherwise next
// is nil.
func ResolveSegment(reg types.SchemaRegistry, model types.Model, name string) (field Field, next types.Model, err error) {
	info, ok := model.ResolveField(name)
	if !ok || name == "" {
		return Field{}, nil, &PathError{Kind: ErrPathNotFound, Path: name, Segment: name, Model: model.ModelName()}
	}

	field = Field{Name: name, IsArray: info.IsArray}
	if info.Ref == "" {
		return field, info.Embedded, nil
	}

	next, err = reg.Model(info.Ref)
	if err != nil {
		return Field{}, nil, &PathError{Kind: ErrPathNotFound, Path: name, Segment: name, Model: model.ModelName(), Err: err}
	}
	field.Model = next.ModelName()
	field.Collection = next.CollectionName()
	return field, next, nil
}

// ResolvePath resolves a dotted path segment by segment starting at model.
// It stops at the first segment that does not resolve; the error carries
// the whole path.
func ResolvePath(reg types.SchemaRegistry, model types.Model, path string) ([]Field, error) {
	segments := utils.SplitPath(path)
	fields := make([]Field, 0, len(segments))

	current := model
	for _, segment := range segments {
		if current == nil {
			// the previous field is a leaf, there is nothing to descend into
			return nil, &PathError{Kind: ErrPathNotFound, Path: path, Segment: segment}
		}

		field, next, err := ResolveSegment(reg, current, segment)
		if err != nil {
			var pe *PathError
			if errors.As(err, &pe) {
				pe.Path = path
			}
			return nil, err
		}
		fields = append(fields, field)
		current = next
	}

	return fields, nil
}
