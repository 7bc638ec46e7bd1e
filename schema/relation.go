package schema

import "fmt"

type RelationType string

const (
	RelationOneToOne   RelationType = "oneToOne"
	RelationManyToOne  RelationType = "manyToOne"
	RelationOneToMany  RelationType = "oneToMany"
	RelationManyToMany RelationType = "manyToMany"
)

// IsMany reports whether the relation holds a list of references
func (t RelationType) IsMany() bool {
	return t == RelationOneToMany || t == RelationManyToMany
}

// Relation marks a field as holding the _id of a document in another model
type Relation struct {
	Type  RelationType
	Model string
}

// ValidateRelation checks that a relation fits the field that stores it
func ValidateRelation(relation Relation, field Field) error {
	if relation.Model == "" {
		return fmt.Errorf("related model cannot be empty")
	}

	switch relation.Type {
	case RelationOneToOne, RelationManyToOne, RelationOneToMany, RelationManyToMany:
	default:
		return fmt.Errorf("unknown relation type: %s", relation.Type)
	}

	if relation.Type.IsMany() != field.Type.IsArray() {
		return fmt.Errorf("relation type %s does not match field type %s", relation.Type, field.Type)
	}
	if field.Type.ElementType() != FieldTypeObjectId {
		return fmt.Errorf("reference field must hold object ids, got %s", field.Type)
	}
	return nil
}
