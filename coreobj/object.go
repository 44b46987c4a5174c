package coreobj

import (
	"fmt"
	"sort"
)

// Object is a bag of own slots plus a link to the object that lookups fall
// through to. Both class prototypes and instances are Objects.
type Object struct {
	proto *Object
	slots map[string]Value
}

// Beget returns a new empty object whose lookups delegate to proto. No
// initializer runs and proto is left untouched. A nil proto yields an object
// with no delegation.
func Beget(proto *Object) *Object {
	return &Object{proto: proto, slots: make(map[string]Value)}
}

// Prototype returns the object lookups fall through to, or nil.
func (o *Object) Prototype() *Object { return o.proto }

// Get resolves name on o, then on each prototype in turn. A miss returns a
// nil value and false.
func (o *Object) Get(name string) (Value, bool) {
	for cur := o; cur != nil; cur = cur.proto {
		if val, ok := cur.slots[name]; ok {
			return val, true
		}
	}
	return NewNil(), false
}

// Set writes an own slot on o. Prototypes are never written through.
func (o *Object) Set(name string, val Value) {
	o.slots[name] = val
}

func (o *Object) HasOwn(name string) bool {
	_, ok := o.slots[name]
	return ok
}

// Delete removes an own slot, uncovering any inherited member of that name.
func (o *Object) Delete(name string) {
	delete(o.slots, name)
}

func (o *Object) OwnKeys() []string {
	keys := make([]string, 0, len(o.slots))
	for k := range o.slots {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Call looks up a function member and invokes it with o as self. Errors from
// the function are returned as is.
func (o *Object) Call(name string, args ...Value) (Value, error) {
	member, ok := o.Get(name)
	if !ok {
		return NewNil(), fmt.Errorf("%w %s", ErrUnknownMember, name)
	}
	fn := member.Function()
	if fn == nil {
		return NewNil(), fmt.Errorf("%s: %w (%s)", name, ErrNotCallable, member.Kind())
	}
	return fn.Call(o, args...)
}

// Class returns the class recorded under the constructor member, or nil for
// objects that were not built by a class.
func (o *Object) Class() *Class {
	val, _ := o.Get(ConstructorKey)
	return val.Class()
}

// Is reports whether class's prototype is on o's delegation chain.
func (o *Object) Is(class *Class) bool {
	if class == nil {
		return false
	}
	for cur := o.proto; cur != nil; cur = cur.proto {
		if cur == class.prototype {
			return true
		}
	}
	return false
}

func (o *Object) String() string {
	if cl := o.Class(); cl != nil {
		return fmt.Sprintf("<%s instance>", cl.Name())
	}
	return "<object>"
}
