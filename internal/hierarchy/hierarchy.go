// Package hierarchy builds coreobj class hierarchies from YAML documents.
package hierarchy

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mgomes/coreobject/coreobj"
)

var (
	ErrUnknownClass   = errors.New("unknown class")
	ErrDuplicateClass = errors.New("duplicate class")
	ErrInvalidClass   = errors.New("invalid class definition")
)

// Document is the top-level YAML shape.
type Document struct {
	Classes []ClassSpec `yaml:"classes"`
}

// ClassSpec declares one class. Extends defaults to CoreObject and may only
// name a class declared earlier in the document.
type ClassSpec struct {
	Name    string            `yaml:"name"`
	Extends string            `yaml:"extends"`
	Init    []string          `yaml:"init"`
	Members map[string]any    `yaml:"members"`
	Getters map[string]string `yaml:"getters"`
}

func Load(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		return nil, fmt.Errorf("decode hierarchy: %w", err)
	}
	return &doc, nil
}

func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open hierarchy: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Registry holds built classes by name. CoreObject is always present.
type Registry struct {
	classes map[string]*coreobj.Class
	order   []string
}

func NewRegistry() *Registry {
	r := &Registry{classes: make(map[string]*coreobj.Class)}
	r.add(coreobj.CoreObject)
	return r
}

func (r *Registry) add(cl *coreobj.Class) {
	r.classes[cl.Name()] = cl
	r.order = append(r.order, cl.Name())
}

func (r *Registry) Lookup(name string) (*coreobj.Class, bool) {
	cl, ok := r.classes[name]
	return cl, ok
}

// Names returns class names in the order they were defined.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Define extends parent into a new class registered under name.
func (r *Registry) Define(name, parent string, members coreobj.Members) (*coreobj.Class, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrInvalidClass)
	}
	if _, exists := r.classes[name]; exists {
		return nil, fmt.Errorf("%w %s", ErrDuplicateClass, name)
	}
	if parent == "" {
		parent = coreobj.CoreObject.Name()
	}
	base, ok := r.classes[parent]
	if !ok {
		return nil, fmt.Errorf("%s extends %w %s", name, ErrUnknownClass, parent)
	}
	cl := base.ExtendNamed(name, members)
	r.add(cl)
	return cl, nil
}

// Build defines every class of doc in declaration order.
func Build(doc *Document) (*Registry, error) {
	reg := NewRegistry()
	for i, spec := range doc.Classes {
		members, err := spec.members()
		if err != nil {
			return nil, fmt.Errorf("class %d (%s): %w", i, spec.Name, err)
		}
		if _, err := reg.Define(spec.Name, spec.Extends, members); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func (s ClassSpec) members() (coreobj.Members, error) {
	members := make(coreobj.Members, len(s.Members)+len(s.Getters)+1)
	for key, raw := range s.Members {
		if key == coreobj.InitKey {
			return nil, fmt.Errorf("%w: use the init list to declare an initializer", ErrInvalidClass)
		}
		val, err := ToValue(raw)
		if err != nil {
			return nil, fmt.Errorf("member %s: %w", key, err)
		}
		members[key] = val
	}
	for method, field := range s.Getters {
		if _, clash := members[method]; clash {
			return nil, fmt.Errorf("%w: %s is both a member and a getter", ErrInvalidClass, method)
		}
		members[method] = coreobj.Getter(field)
	}
	if len(s.Init) > 0 {
		members[coreobj.InitKey] = coreobj.FieldInit(s.Init...)
	}
	return members, nil
}

// ToValue converts a decoded YAML scalar, list or mapping into a value.
func ToValue(raw any) (coreobj.Value, error) {
	switch v := raw.(type) {
	case nil:
		return coreobj.NewNil(), nil
	case bool:
		return coreobj.NewBool(v), nil
	case int:
		return coreobj.NewInt(int64(v)), nil
	case int64:
		return coreobj.NewInt(v), nil
	case uint64:
		return coreobj.NewInt(int64(v)), nil
	case float64:
		return coreobj.NewFloat(v), nil
	case string:
		return coreobj.NewString(v), nil
	case []any:
		out := make([]coreobj.Value, len(v))
		for i, elem := range v {
			val, err := ToValue(elem)
			if err != nil {
				return coreobj.NewNil(), err
			}
			out[i] = val
		}
		return coreobj.NewArray(out), nil
	case map[string]any:
		out := make(map[string]coreobj.Value, len(v))
		for k, elem := range v {
			val, err := ToValue(elem)
			if err != nil {
				return coreobj.NewNil(), err
			}
			out[k] = val
		}
		return coreobj.NewHash(out), nil
	default:
		return coreobj.NewNil(), fmt.Errorf("unsupported value %T", raw)
	}
}
