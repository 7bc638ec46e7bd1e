package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rediwo/mongo-join/types"
	"github.com/rediwo/mongo-join/utils"
)

type FieldType string

const (
	FieldTypeString   FieldType = "string"
	FieldTypeInt      FieldType = "int"
	FieldTypeInt64    FieldType = "int64"
	FieldTypeFloat    FieldType = "float"
	FieldTypeBool     FieldType = "bool"
	FieldTypeDateTime FieldType = "datetime"
	FieldTypeDecimal  FieldType = "decimal"
	FieldTypeObjectId FieldType = "objectId"
	FieldTypeDocument FieldType = "document"

	// Array types
	FieldTypeStringArray   FieldType = "string[]"
	FieldTypeIntArray      FieldType = "int[]"
	FieldTypeInt64Array    FieldType = "int64[]"
	FieldTypeFloatArray    FieldType = "float[]"
	FieldTypeBoolArray     FieldType = "bool[]"
	FieldTypeDateTimeArray FieldType = "datetime[]"
	FieldTypeObjectIdArray FieldType = "objectId[]"
	FieldTypeDocumentArray FieldType = "document[]"
)

// IsArray reports whether the type holds a list of values
func (t FieldType) IsArray() bool {
	return strings.HasSuffix(string(t), "[]")
}

// ElementType returns the type of one element; scalar types return themselves
func (t FieldType) ElementType() FieldType {
	return FieldType(strings.TrimSuffix(string(t), "[]"))
}

var validFieldTypes = map[FieldType]bool{
	FieldTypeString: true, FieldTypeInt: true, FieldTypeInt64: true, FieldTypeFloat: true,
	FieldTypeBool: true, FieldTypeDateTime: true, FieldTypeDecimal: true,
	FieldTypeObjectId: true, FieldTypeDocument: true,
}

// ParseFieldType validates a type name such as "objectId" or "string[]"
func ParseFieldType(s string) (FieldType, error) {
	t := FieldType(strings.TrimSpace(s))
	if !validFieldTypes[t.ElementType()] {
		return "", fmt.Errorf("unknown field type %q", s)
	}
	return t, nil
}

type Field struct {
	Name     string
	Type     FieldType
	Nullable bool
	Unique   bool
	Index    bool
	Default  any

	// Embedded declares the fields of a document or document[] field. It is
	// nil for opaque documents.
	Embedded *Schema
}

var ErrModelNotFound = errors.New("model not found")

// Schema describes one document model and the collection that stores it
type Schema struct {
	Name       string
	Collection string
	Fields     []Field
	Relations  map[string]Relation
}

func New(name string) *Schema {
	return &Schema{
		Name:       name,
		Collection: utils.CollectionName(name),
		Fields:     []Field{},
		Relations:  make(map[string]Relation),
	}
}

// NewEmbedded returns a schema for the subdocuments of a document field. It
// has no collection of its own.
func NewEmbedded(name string) *Schema {
	return &Schema{
		Name:      name,
		Fields:    []Field{},
		Relations: make(map[string]Relation),
	}
}

func (s *Schema) WithCollection(name string) *Schema {
	s.Collection = name
	return s
}

func (s *Schema) AddField(field Field) *Schema {
	s.Fields = append(s.Fields, field)
	return s
}

func (s *Schema) AddRelation(name string, relation Relation) *Schema {
	s.Relations[name] = relation
	return s
}

// AddReference declares an object id field (or an array of them when many is
// true) pointing at documents of model.
func (s *Schema) AddReference(name, model string, many bool) *Schema {
	fb := NewField(name).ObjectId()
	relType := RelationManyToOne
	if many {
		fb = NewField(name).ObjectIdArray()
		relType = RelationManyToMany
	}
	return s.AddField(fb.Nullable().Build()).AddRelation(name, Relation{Type: relType, Model: model})
}

func (s *Schema) GetField(name string) (*Field, error) {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i], nil
		}
	}
	return nil, fmt.Errorf("field %s not found", name)
}

// HasRelation checks if a relation exists
func (s *Schema) HasRelation(name string) bool {
	_, exists := s.Relations[name]
	return exists
}

// GetRelation returns a relation by field name
func (s *Schema) GetRelation(name string) (Relation, error) {
	relation, exists := s.Relations[name]
	if !exists {
		return Relation{}, fmt.Errorf("relation %s not found", name)
	}
	return relation, nil
}

func (s *Schema) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("schema name cannot be empty")
	}
	if s.Collection == "" {
		return fmt.Errorf("collection name cannot be empty")
	}
	return s.validateFields()
}

func (s *Schema) validateFields() error {
	if len(s.Fields) == 0 {
		return fmt.Errorf("schema must have at least one field")
	}

	seen := make(map[string]bool, len(s.Fields))
	for _, field := range s.Fields {
		if field.Name == "" {
			return fmt.Errorf("field name cannot be empty")
		}
		if strings.Contains(field.Name, ".") {
			return fmt.Errorf("field name %s cannot contain dots", field.Name)
		}
		if seen[field.Name] {
			return fmt.Errorf("duplicate field %s", field.Name)
		}
		if _, err := ParseFieldType(string(field.Type)); err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
		if field.Embedded != nil {
			if field.Type.ElementType() != FieldTypeDocument {
				return fmt.Errorf("field %s: only document fields can embed fields, got %s", field.Name, field.Type)
			}
			if err := field.Embedded.validateFields(); err != nil {
				return fmt.Errorf("field %s: %w", field.Name, err)
			}
		}
		seen[field.Name] = true
	}

	for name, relation := range s.Relations {
		field, err := s.GetField(name)
		if err != nil {
			return fmt.Errorf("relation %s has no field", name)
		}
		if err := ValidateRelation(relation, *field); err != nil {
			return fmt.Errorf("invalid relation %s: %w", name, err)
		}
	}

	return nil
}

// ModelName returns the schema name
func (s *Schema) ModelName() string {
	return s.Name
}

// CollectionName returns the name of the collection holding the documents
func (s *Schema) CollectionName() string {
	return s.Collection
}

// FieldNames returns the declared field names in order, _id excluded
func (s *Schema) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for _, field := range s.Fields {
		if field.Name == "_id" {
			continue
		}
		names = append(names, field.Name)
	}
	return names
}

// ResolveField reports whether name is declared, whether it is an array,
// which model it references and which fields it embeds, if any.
func (s *Schema) ResolveField(name string) (types.FieldInfo, bool) {
	field, err := s.GetField(name)
	if err != nil {
		return types.FieldInfo{}, false
	}
	info := types.FieldInfo{IsArray: field.Type.IsArray()}
	if relation, ok := s.Relations[name]; ok {
		info.Ref = relation.Model
	}
	if field.Embedded != nil {
		info.Embedded = field.Embedded
	}
	return info, true
}

// walkRelations calls fn for every relation of s and of its embedded
// documents. path is the dotted field path from s.
func (s *Schema) walkRelations(prefix string, fn func(path string, relation Relation) error) error {
	for _, field := range s.Fields {
		path := field.Name
		if prefix != "" {
			path = utils.JoinPath(prefix, field.Name)
		}
		if relation, ok := s.Relations[field.Name]; ok {
			if err := fn(path, relation); err != nil {
				return err
			}
		}
		if field.Embedded != nil {
			if err := field.Embedded.walkRelations(path, fn); err != nil {
				return err
			}
		}
	}
	return nil
}
