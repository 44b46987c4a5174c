package coreobj

import (
	jsoniter "github.com/json-iterator/go"
)

// ClassField is the key Snapshot uses for the object's class name.
const ClassField = "$class"

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Snapshot flattens the data members visible on o into plain Go values:
// inherited members first, then each more derived level on top, so the
// result matches what Get returns. Functions and the constructor link are
// left out.
func Snapshot(o *Object) map[string]any {
	return snapshot(o, make(map[*Object]struct{}))
}

func snapshot(o *Object, seen map[*Object]struct{}) map[string]any {
	out := make(map[string]any)
	if o == nil {
		return out
	}
	seen[o] = struct{}{}
	defer delete(seen, o)

	var chain []*Object
	for cur := o; cur != nil; cur = cur.proto {
		chain = append(chain, cur)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		for key, val := range chain[i].slots {
			if key == ConstructorKey || val.Kind() == KindFunction {
				delete(out, key)
				continue
			}
			out[key] = plainValue(val, seen)
		}
	}
	if cl := o.Class(); cl != nil {
		out[ClassField] = cl.Name()
	}
	return out
}

func plainValue(val Value, seen map[*Object]struct{}) any {
	switch val.Kind() {
	case KindNil:
		return nil
	case KindBool:
		return val.Bool()
	case KindInt:
		return val.Int()
	case KindFloat:
		return val.Float()
	case KindString:
		return val.String()
	case KindArray:
		elems := val.Array()
		out := make([]any, len(elems))
		for i, e := range elems {
			out[i] = plainValue(e, seen)
		}
		return out
	case KindHash:
		entries := val.Hash()
		out := make(map[string]any, len(entries))
		for k, e := range entries {
			out[k] = plainValue(e, seen)
		}
		return out
	case KindClass:
		return val.Class().Name()
	case KindObject:
		obj := val.Object()
		if _, cycle := seen[obj]; cycle {
			return obj.String()
		}
		return snapshot(obj, seen)
	default:
		return val.String()
	}
}

// MarshalJSON encodes the Snapshot of o.
func (o *Object) MarshalJSON() ([]byte, error) {
	return jsonAPI.Marshal(Snapshot(o))
}
