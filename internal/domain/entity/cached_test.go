package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntity_Valid(t *testing.T) {
	var nilEnt *Entity
	assert.Error(t, nilEnt.Valid())
	assert.Error(t, (&Entity{}).Valid())
	assert.NoError(t, (&Entity{ID: "a"}).Valid())
	assert.NoError(t, (&Entity{ID: "a", Data: []byte("x")}).Valid())
}

func TestEntity_Clone(t *testing.T) {
	e := &Entity{ID: "a", Data: []byte("data")}
	c := e.Clone()
	require.Equal(t, e, c)

	c.Data[0] = 'X'
	assert.Equal(t, []byte("data"), e.Data, "clone must not alias the original payload")

	assert.Nil(t, (*Entity)(nil).Clone())
}
