package coreobj

type ValueKind int

const (
	KindNil ValueKind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindHash
	KindFunction
	KindClass
	KindObject
)

// Value is a member slot: either a plain field value or a callable.
type Value struct {
	kind ValueKind
	data any
}

// Members maps member names to values. It is the argument to Extend.
type Members map[string]Value

// MethodFunc is the body of a function member. self is the object the
// member was looked up on, not the prototype that holds it.
type MethodFunc func(self *Object, args []Value) (Value, error)

type Function struct {
	Name string
	Fn   MethodFunc
}

// Call invokes the function with self bound as the receiver.
func (f *Function) Call(self *Object, args ...Value) (Value, error) {
	if f == nil || f.Fn == nil {
		return NewNil(), nil
	}
	return f.Fn(self, args)
}
