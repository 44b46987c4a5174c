package coreobj

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	// InitKey names the initializer member.
	InitKey = "init"
	// ConstructorKey names the prototype member that points back at its class.
	ConstructorKey = "constructor"
)

const anonymousClassName = "anonymous"

// Class is a node in a single-parent hierarchy. It owns a prototype object
// shared by every instance, and the initializer resolved when it was built.
// The parent link never changes after Extend returns.
type Class struct {
	id          uuid.UUID
	name        string
	parent      *Class
	prototype   *Object
	initializer Value
}

// CoreObject is the root class every hierarchy starts from.
var CoreObject = newRootClass()

func newRootClass() *Class {
	root := &Class{
		id:          uuid.New(),
		name:        "CoreObject",
		prototype:   Beget(nil),
		initializer: noopInitializer(),
	}
	root.prototype.Set(ConstructorKey, NewClass(root))
	return root
}

func noopInitializer() Value {
	return NewFunction(InitKey, func(self *Object, args []Value) (Value, error) {
		return NewNil(), nil
	})
}

// Extend builds an unnamed subclass of c. See ExtendNamed.
func (c *Class) Extend(members Members) *Class {
	return c.ExtendNamed("", members)
}

// ExtendNamed builds a subclass of c whose prototype delegates to c's and
// holds a copy of members, overriding inherited members of the same name.
// The initializer is members["init"] if set, else whatever init c's
// prototype chain resolves, else a no-op. A nil or empty members map is
// valid.
func (c *Class) ExtendNamed(name string, members Members) *Class {
	initializer, ok := members[InitKey]
	if !ok || initializer.IsNil() {
		initializer, ok = c.prototype.Get(InitKey)
	}
	if !ok || initializer.IsNil() {
		initializer = noopInitializer()
	}

	child := &Class{
		id:          uuid.New(),
		name:        name,
		parent:      c,
		prototype:   Beget(c.prototype),
		initializer: initializer,
	}
	child.prototype.Set(ConstructorKey, NewClass(child))
	for key, val := range members {
		child.prototype.Set(key, val)
	}
	return child
}

// Create builds an instance delegating to c's prototype and runs the
// resolved initializer on it with args. An error from the initializer is
// returned unchanged and no instance is produced.
func (c *Class) Create(args ...Value) (*Object, error) {
	fn := c.initializer.Function()
	if fn == nil {
		return nil, fmt.Errorf("%s initializer: %w (%s)", c.Name(), ErrNotCallable, c.initializer.Kind())
	}
	inst := Beget(c.prototype)
	if _, err := fn.Call(inst, args...); err != nil {
		return nil, err
	}
	return inst, nil
}

// MustCreate is like Create but panics if the initializer fails.
func (c *Class) MustCreate(args ...Value) *Object {
	inst, err := c.Create(args...)
	if err != nil {
		panic(err)
	}
	return inst
}

func (c *Class) ID() uuid.UUID { return c.id }

func (c *Class) Name() string {
	if c.name == "" {
		return anonymousClassName
	}
	return c.name
}

// Parent returns the class c was extended from; nil for CoreObject.
func (c *Class) Parent() *Class { return c.parent }

// Prototype returns the object shared by every instance of c. Writing to it
// is visible to all instances and subclasses that do not shadow the member.
func (c *Class) Prototype() *Object { return c.prototype }

func (c *Class) Initializer() Value { return c.initializer }

func (c *Class) String() string {
	return fmt.Sprintf("<Class %s>", c.Name())
}

// FieldInit returns an initializer assigning positional arguments to the
// named fields in order. Fields without a matching argument are left unset.
func FieldInit(fields ...string) Value {
	names := append([]string(nil), fields...)
	return NewFunction(InitKey, func(self *Object, args []Value) (Value, error) {
		for i, name := range names {
			if i >= len(args) {
				break
			}
			self.Set(name, args[i])
		}
		return NewNil(), nil
	})
}

// Getter returns a method that reads field from its receiver.
func Getter(field string) Value {
	return NewFunction(field, func(self *Object, args []Value) (Value, error) {
		val, _ := self.Get(field)
		return val, nil
	})
}
