package hierarchy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgomes/coreobject/coreobj"
)

func buildFile(t *testing.T, path string) *Registry {
	t.Helper()
	doc, err := LoadFile(path)
	require.NoError(t, err)
	reg, err := Build(doc)
	require.NoError(t, err)
	return reg
}

func buildString(t *testing.T, src string) (*Registry, error) {
	t.Helper()
	doc, err := Load(strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	return Build(doc)
}

func TestBuildAnimals(t *testing.T) {
	reg := buildFile(t, "testdata/animals.yaml")
	assert.Equal(t, []string{"CoreObject", "Animal", "Horse", "Pony"}, reg.Names())

	horse, ok := reg.Lookup("Horse")
	require.True(t, ok)
	animal, _ := reg.Lookup("Animal")
	assert.Same(t, animal, horse.Parent())

	horsey, err := horse.Create(coreobj.NewString("Horsey"))
	require.NoError(t, err)
	name, err := horsey.Call("getName")
	require.NoError(t, err)
	assert.Equal(t, "Horsey", name.String())
	sound, err := horsey.Call("makeSound")
	require.NoError(t, err)
	assert.Equal(t, "Neighhhhh!", sound.String())

	fluffy := animal.MustCreate(coreobj.NewString("Fluffy"))
	sound, _ = fluffy.Call("makeSound")
	assert.Equal(t, "...", sound.String())
}

func TestBuildConvertsNestedValues(t *testing.T) {
	reg := buildFile(t, "testdata/animals.yaml")
	pony, _ := reg.Lookup("Pony")
	inst := pony.MustCreate(coreobj.NewString("Shetland"))

	legs, _ := inst.Get("legs")
	assert.Equal(t, int64(4), legs.Int())

	traits, ok := inst.Get("traits")
	require.True(t, ok)
	require.Equal(t, coreobj.KindHash, traits.Kind())
	assert.Equal(t, "calm", traits.Hash()["temper"].String())
	assert.Equal(t, "[bay, grey]", traits.Hash()["colours"].String())
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{
			name: "unknown parent",
			src:  "classes:\n  - name: Horse\n    extends: Animal\n",
			want: ErrUnknownClass,
		},
		{
			name: "forward reference",
			src:  "classes:\n  - name: A\n    extends: B\n  - name: B\n    extends: A\n",
			want: ErrUnknownClass,
		},
		{
			name: "duplicate",
			src:  "classes:\n  - name: A\n  - name: A\n",
			want: ErrDuplicateClass,
		},
		{
			name: "root redefined",
			src:  "classes:\n  - name: CoreObject\n",
			want: ErrDuplicateClass,
		},
		{
			name: "missing name",
			src:  "classes:\n  - extends: CoreObject\n",
			want: ErrInvalidClass,
		},
		{
			name: "init as member",
			src:  "classes:\n  - name: A\n    members:\n      init: nope\n",
			want: ErrInvalidClass,
		},
		{
			name: "getter clash",
			src:  "classes:\n  - name: A\n    members:\n      size: 1\n    getters:\n      size: other\n",
			want: ErrInvalidClass,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := buildString(t, tc.src)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := Load(strings.NewReader("classes:\n  - name: A\n    parent: B\n"))
	assert.Error(t, err)
}

func TestLoadEmptyDocument(t *testing.T) {
	doc, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	reg, err := Build(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"CoreObject"}, reg.Names())
}

func TestToValue(t *testing.T) {
	val, err := ToValue([]any{1, 2.5, true, nil, "x"})
	require.NoError(t, err)
	assert.Equal(t, "[1, 2.5, true, , x]", val.String())

	_, err = ToValue(struct{}{})
	assert.Error(t, err)
}
