package query

import "go.mongodb.org/mongo-driver/bson"

// DefaultStripDepth covers a root document, the elements of a populated
// array and the references nested one level inside them.
const DefaultStripDepth = 2

// Strip is StripDepth with DefaultStripDepth
func Strip(doc bson.M) bson.M {
	return StripDepth(doc, DefaultStripDepth)
}

// StripDepth removes the empty documents a preserving $unwind leaves behind
// for missing references. Inside arrays, nulls and documents that are empty
// after stripping are dropped. In documents, a key whose value is an empty
// document after stripping is dropped; null values are kept. Documents
// nested deeper than maxDepth are returned as they are. The input is not
// modified and StripDepth(StripDepth(d)) equals StripDepth(d).
func StripDepth(doc bson.M, maxDepth int) bson.M {
	if doc == nil {
		return nil
	}
	return stripValue(doc, 0, maxDepth).(bson.M)
}

// stripValue strips v, a value found at document depth depth
func stripValue(v any, depth, maxDepth int) any {
	if depth > maxDepth {
		return v
	}

	switch val := v.(type) {
	case bson.M:
		out := make(bson.M, len(val))
		for k, item := range val {
			if item = stripValue(item, depth+1, maxDepth); !isEmptyDocument(item) {
				out[k] = item
			}
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			if item = stripValue(item, depth+1, maxDepth); !isEmptyDocument(item) {
				out[k] = item
			}
		}
		return out
	case bson.D:
		out := make(bson.D, 0, len(val))
		for _, e := range val {
			if item := stripValue(e.Value, depth+1, maxDepth); !isEmptyDocument(item) {
				out = append(out, bson.E{Key: e.Key, Value: item})
			}
		}
		return out
	case bson.A:
		return bson.A(stripArray(val, depth, maxDepth))
	case []any:
		return stripArray(val, depth, maxDepth)
	default:
		return v
	}
}

// stripArray keeps the array at the depth of the document holding it, so its
// elements are stripped at that same depth
func stripArray(arr []any, depth, maxDepth int) []any {
	out := make([]any, 0, len(arr))
	for _, item := range arr {
		if item == nil {
			continue
		}
		if item = stripValue(item, depth, maxDepth); isEmptyDocument(item) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func isEmptyDocument(v any) bool {
	switch val := v.(type) {
	case bson.M:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	case bson.D:
		return len(val) == 0
	default:
		return false
	}
}
