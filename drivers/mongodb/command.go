package mongodb

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Command is a MongoDB operation in loggable form
type Command struct {
	Operation  string         // "aggregate", "insert", "drop"
	Collection string         // Collection name
	Pipeline   mongo.Pipeline // For aggregate operations
	Documents  []any          // For insert operations
}

// ToJSON renders the command as indented JSON. Object ids are written as
// ObjectID(<hex>) and regexes as RegExp(/pattern/options) so that they stand
// out from plain strings. Keys of ordered documents keep their order.
func (c *Command) ToJSON() (string, error) {
	jsonCmd := orderedDoc{
		{Key: "operation", Value: c.Operation},
		{Key: "collection", Value: c.Collection},
	}

	if len(c.Pipeline) > 0 {
		pipeline := make([]any, len(c.Pipeline))
		for i, stage := range c.Pipeline {
			pipeline[i] = convertBSONTypes(stage)
		}
		jsonCmd = append(jsonCmd, bson.E{Key: "pipeline", Value: pipeline})
	}

	if len(c.Documents) > 0 {
		jsonCmd = append(jsonCmd, bson.E{Key: "documents", Value: convertBSONTypes(c.Documents)})
	}

	data, err := json.MarshalIndent(jsonCmd, "", "    ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal MongoDB command: %w", err)
	}
	return string(data), nil
}

// convertBSONTypes converts BSON values to JSON-friendly ones
func convertBSONTypes(v any) any {
	switch val := v.(type) {
	case bson.D:
		doc := make(orderedDoc, len(val))
		for i, elem := range val {
			doc[i] = bson.E{Key: elem.Key, Value: convertBSONTypes(elem.Value)}
		}
		return doc
	case []bson.D:
		result := make([]any, len(val))
		for i, item := range val {
			result[i] = convertBSONTypes(item)
		}
		return result
	case bson.M:
		return convertMap(val)
	case map[string]any:
		return convertMap(val)
	case bson.A:
		return convertSlice(val)
	case []any:
		return convertSlice(val)
	case []bson.M:
		result := make([]any, len(val))
		for i, item := range val {
			result[i] = convertBSONTypes(item)
		}
		return result
	case primitive.ObjectID:
		return fmt.Sprintf("ObjectID(%s)", val.Hex())
	case primitive.Regex:
		return fmt.Sprintf("RegExp(/%s/%s)", val.Pattern, val.Options)
	case primitive.DateTime:
		return val.Time().UTC()
	default:
		return v
	}
}

func convertMap(m map[string]any) map[string]any {
	result := make(map[string]any, len(m))
	for k, v := range m {
		result[k] = convertBSONTypes(v)
	}
	return result
}

func convertSlice(s []any) []any {
	result := make([]any, len(s))
	for i, item := range s {
		result[i] = convertBSONTypes(item)
	}
	return result
}

// orderedDoc is a bson.D that marshals to a JSON object in element order
type orderedDoc []bson.E

func (d orderedDoc) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, elem := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(elem.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(elem.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
