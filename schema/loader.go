package schema

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// fileModel is the YAML shape of one model:
//
//	models:
//	  - name: Team
//	    collection: teams # optional
//	    fields:
//	      - name: leader
//	        type: objectId
//	        ref: Player
//	      - name: staff
//	        type: document[]
//	        fields:
//	          - name: coach
//	            ref: Player
type fileModel struct {
	Name       string      `yaml:"name"`
	Collection string      `yaml:"collection"`
	Fields     []fileField `yaml:"fields"`
}

type fileField struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Ref      string `yaml:"ref"`
	Nullable bool   `yaml:"nullable"`
	Unique   bool   `yaml:"unique"`
	Index    bool   `yaml:"index"`
	Default  any    `yaml:"default"`

	Fields []fileField `yaml:"fields"`
}

type file struct {
	Models []fileModel `yaml:"models"`
}

// Parse reads YAML model definitions into a validated registry
func Parse(data []byte) (*Registry, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("schema content is empty")
	}

	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	if len(f.Models) == 0 {
		return nil, fmt.Errorf("no models found in schema")
	}

	registry := NewRegistry()
	for _, m := range f.Models {
		s, err := m.toSchema()
		if err != nil {
			return nil, err
		}
		if err := registry.Register(s); err != nil {
			return nil, err
		}
	}

	if err := registry.Validate(); err != nil {
		return nil, err
	}
	return registry, nil
}

// LoadFile reads and parses a YAML schema file
func LoadFile(filename string) (*Registry, error) {
	if filename == "" {
		return nil, fmt.Errorf("filename is required")
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", filename, err)
	}

	registry, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return registry, nil
}

func (m fileModel) toSchema() (*Schema, error) {
	if strings.TrimSpace(m.Name) == "" {
		return nil, fmt.Errorf("model name cannot be empty")
	}

	s := New(m.Name)
	if m.Collection != "" {
		s.WithCollection(m.Collection)
	}

	if err := addFields(s, m.Fields); err != nil {
		return nil, err
	}
	return s, nil
}

// addFields declares fields on s, recursing into embedded documents
func addFields(s *Schema, fields []fileField) error {
	for _, ff := range fields {
		typeName := ff.Type
		switch {
		case typeName == "" && ff.Ref != "":
			typeName = string(FieldTypeObjectId)
		case typeName == "" && len(ff.Fields) > 0:
			typeName = string(FieldTypeDocument)
		}
		fieldType, err := ParseFieldType(typeName)
		if err != nil {
			return fmt.Errorf("model %s field %s: %w", s.Name, ff.Name, err)
		}

		fb := NewField(ff.Name).Type(fieldType).Default(ff.Default)
		if ff.Nullable {
			fb.Nullable()
		}
		if ff.Unique {
			fb.Unique()
		}
		if ff.Index {
			fb.Index()
		}
		if len(ff.Fields) > 0 {
			embedded := NewEmbedded(s.Name + "." + ff.Name)
			if err := addFields(embedded, ff.Fields); err != nil {
				return err
			}
			fb.Embed(embedded)
		}
		s.AddField(fb.Build())

		if ff.Ref != "" {
			relType := RelationManyToOne
			if fieldType.IsArray() {
				relType = RelationManyToMany
			}
			s.AddRelation(ff.Name, Relation{Type: relType, Model: ff.Ref})
		}
	}
	return nil
}
