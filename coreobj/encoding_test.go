package coreobj

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotMergesChain(t *testing.T) {
	animal := newAnimal(t)
	horse := animal.ExtendNamed("Horse", Members{
		"sound": NewString("Neighhhhh!"),
		"legs":  NewInt(4),
	})
	horsey := horse.MustCreate(NewString("Horsey"))
	horsey.Set("tags", NewArray([]Value{NewString("fast"), NewBool(true)}))

	snap := Snapshot(horsey)
	assert.Equal(t, map[string]any{
		"$class": "Horse",
		"name":   "Horsey",
		"sound":  "Neighhhhh!",
		"legs":   int64(4),
		"tags":   []any{"fast", true},
	}, snap)
}

func TestSnapshotDropsFieldShadowedByFunction(t *testing.T) {
	base := CoreObject.Extend(Members{"size": NewInt(1)})
	derived := base.Extend(Members{"size": Getter("realSize")})

	snap := Snapshot(derived.MustCreate())
	_, ok := snap["size"]
	assert.False(t, ok)
}

func TestMarshalJSON(t *testing.T) {
	animal := newAnimal(t)
	fluffy := animal.MustCreate(NewString("Fluffy"))
	owner := CoreObject.ExtendNamed("Owner", Members{"init": FieldInit("pet")}).MustCreate(NewObject(fluffy))

	raw, err := json.Marshal(owner)
	require.NoError(t, err)
	assert.JSONEq(t, `{"$class":"Owner","pet":{"$class":"Animal","name":"Fluffy","sound":"..."}}`, string(raw))
}

func TestSnapshotHandlesCycles(t *testing.T) {
	node := CoreObject.ExtendNamed("Node", nil)
	a := node.MustCreate()
	b := node.MustCreate()
	a.Set("next", NewObject(b))
	b.Set("next", NewObject(a))

	snap := Snapshot(a)
	next := snap["next"].(map[string]any)
	assert.Equal(t, "<Node instance>", next["next"])
}
