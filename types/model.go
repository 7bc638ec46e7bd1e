package types

// FieldInfo is what a schema knows about one declared field
type FieldInfo struct {
	// IsArray is true for array fields (including arrays of references)
	IsArray bool

	// Ref names the referenced model; empty when the field is not a reference
	Ref string

	// Embedded describes the subdocuments of a document field whose fields
	// are declared; nil otherwise. Paths continue into it.
	Embedded Model
}

// Model is the part of a document model the population compiler needs
type Model interface {
	ModelName() string
	CollectionName() string

	// FieldNames lists the declared fields in declaration order, without _id
	FieldNames() []string

	// ResolveField looks up a declared field
	ResolveField(name string) (FieldInfo, bool)
}

// SchemaRegistry resolves model names to models
type SchemaRegistry interface {
	Model(name string) (Model, error)
}
