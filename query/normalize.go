package query

import (
	"reflect"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Normalize returns a copy of value in which every string that is a valid
// object id hex string is replaced by the primitive.ObjectID it encodes.
// Documents and arrays are walked recursively and keep their concrete type.
// Any other slice or string-keyed map, such as []bson.M under $or, is walked
// too. Everything else, including regexes and dates, is returned unchanged.
func Normalize(value any) any {
	switch v := value.(type) {
	case string:
		if oid, err := primitive.ObjectIDFromHex(v); err == nil {
			return oid
		}
		return v
	case bson.M:
		out := make(bson.M, len(v))
		for k, item := range v {
			out[k] = Normalize(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = Normalize(item)
		}
		return out
	case bson.D:
		out := make(bson.D, len(v))
		for i, e := range v {
			out[i] = bson.E{Key: e.Key, Value: Normalize(e.Value)}
		}
		return out
	case bson.A:
		out := make(bson.A, len(v))
		for i, item := range v {
			out[i] = Normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = Normalize(item)
		}
		return out
	case []string:
		out := make(bson.A, len(v))
		for i, item := range v {
			out[i] = Normalize(item)
		}
		return out
	default:
		return normalizeReflect(value)
	}
}

// normalizeReflect walks slices and string-keyed maps of other types. The
// result keeps the input type unless a cast id no longer fits the element
// type, in which case a bson.A or bson.M is returned instead.
func normalizeReflect(value any) any {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice:
		// []byte is binary data
		if rv.IsNil() || rv.Type().Elem().Kind() == reflect.Uint8 {
			return value
		}
		elem := rv.Type().Elem()
		items := make(bson.A, rv.Len())
		fits := true
		for i := range items {
			items[i] = Normalize(rv.Index(i).Interface())
			fits = fits && assignable(items[i], elem)
		}
		if !fits {
			return items
		}
		out := reflect.MakeSlice(rv.Type(), len(items), len(items))
		for i, item := range items {
			if item != nil {
				out.Index(i).Set(reflect.ValueOf(item))
			}
		}
		return out.Interface()

	case reflect.Map:
		if rv.IsNil() || rv.Type().Key().Kind() != reflect.String {
			return value
		}
		elem := rv.Type().Elem()
		items := make(bson.M, rv.Len())
		keys := rv.MapKeys()
		fits := true
		for _, k := range keys {
			item := Normalize(rv.MapIndex(k).Interface())
			items[k.String()] = item
			fits = fits && assignable(item, elem)
		}
		if !fits {
			return items
		}
		out := reflect.MakeMapWithSize(rv.Type(), len(keys))
		for _, k := range keys {
			item := items[k.String()]
			if item == nil {
				out.SetMapIndex(k, reflect.Zero(elem))
				continue
			}
			out.SetMapIndex(k, reflect.ValueOf(item))
		}
		return out.Interface()
	}
	return value
}

func assignable(v any, t reflect.Type) bool {
	if v == nil {
		switch t.Kind() {
		case reflect.Interface, reflect.Map, reflect.Slice, reflect.Pointer:
			return true
		}
		return false
	}
	return reflect.TypeOf(v).AssignableTo(t)
}

// NormalizeFilter is Normalize for a filter document
func NormalizeFilter(filter bson.M) bson.M {
	if filter == nil {
		return nil
	}
	return Normalize(filter).(bson.M)
}
