package schema

type FieldBuilder struct {
	field Field
}

func NewField(name string) *FieldBuilder {
	return &FieldBuilder{
		field: Field{
			Name: name,
			Type: FieldTypeString,
		},
	}
}

func (fb *FieldBuilder) String() *FieldBuilder {
	fb.field.Type = FieldTypeString
	return fb
}

func (fb *FieldBuilder) Int() *FieldBuilder {
	fb.field.Type = FieldTypeInt
	return fb
}

func (fb *FieldBuilder) Int64() *FieldBuilder {
	fb.field.Type = FieldTypeInt64
	return fb
}

func (fb *FieldBuilder) Float() *FieldBuilder {
	fb.field.Type = FieldTypeFloat
	return fb
}

func (fb *FieldBuilder) Bool() *FieldBuilder {
	fb.field.Type = FieldTypeBool
	return fb
}

func (fb *FieldBuilder) DateTime() *FieldBuilder {
	fb.field.Type = FieldTypeDateTime
	return fb
}

func (fb *FieldBuilder) ObjectId() *FieldBuilder {
	fb.field.Type = FieldTypeObjectId
	return fb
}

func (fb *FieldBuilder) ObjectIdArray() *FieldBuilder {
	fb.field.Type = FieldTypeObjectIdArray
	return fb
}

func (fb *FieldBuilder) Document() *FieldBuilder {
	fb.field.Type = FieldTypeDocument
	return fb
}

func (fb *FieldBuilder) DocumentArray() *FieldBuilder {
	fb.field.Type = FieldTypeDocumentArray
	return fb
}

// Embed declares the fields of the subdocuments. A field that is not a
// document yet becomes one, keeping its array-ness.
func (fb *FieldBuilder) Embed(embedded *Schema) *FieldBuilder {
	if fb.field.Type.ElementType() != FieldTypeDocument {
		if fb.field.Type.IsArray() {
			fb.field.Type = FieldTypeDocumentArray
		} else {
			fb.field.Type = FieldTypeDocument
		}
	}
	fb.field.Embedded = embedded
	return fb
}

// Type sets an arbitrary field type, e.g. one parsed from a schema file
func (fb *FieldBuilder) Type(t FieldType) *FieldBuilder {
	fb.field.Type = t
	return fb
}

func (fb *FieldBuilder) Nullable() *FieldBuilder {
	fb.field.Nullable = true
	return fb
}

func (fb *FieldBuilder) Unique() *FieldBuilder {
	fb.field.Unique = true
	return fb
}

func (fb *FieldBuilder) Default(value any) *FieldBuilder {
	fb.field.Default = value
	return fb
}

func (fb *FieldBuilder) Index() *FieldBuilder {
	fb.field.Index = true
	return fb
}

func (fb *FieldBuilder) Build() Field {
	return fb.field
}
