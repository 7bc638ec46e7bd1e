package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	school := New("School").AddField(NewField("name").Build())
	require.NoError(t, r.Register(school, newPlayerSchema()))

	got, err := r.Get("School")
	require.NoError(t, err)
	assert.Same(t, school, got)

	m, err := r.Model("Player")
	require.NoError(t, err)
	assert.Equal(t, "players", m.CollectionName())

	assert.Equal(t, []string{"School", "Player"}, r.Models())
	require.NoError(t, r.Validate())
}

func TestRegistry_Errors(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(newPlayerSchema()))

	_, err := r.Get("Team")
	assert.True(t, errors.Is(err, ErrModelNotFound))

	_, err = r.Model("Team")
	assert.True(t, errors.Is(err, ErrModelNotFound))

	err = r.Register(newPlayerSchema())
	assert.ErrorContains(t, err, "already registered")

	err = r.Register(New(""))
	assert.Error(t, err)

	// School is referenced but never registered
	err = r.Validate()
	assert.ErrorContains(t, err, "unknown model School")
}

func TestRegistry_ValidateEmbeddedRelations(t *testing.T) {
	r := NewRegistry()
	sponsor := NewEmbedded("Project.sponsor").AddReference("owner", "Player", false)
	require.NoError(t, r.Register(New("Project").AddField(NewField("sponsor").Embed(sponsor).Build())))

	err := r.Validate()
	assert.ErrorContains(t, err, "relation Project.sponsor.owner references unknown model Player")

	require.NoError(t, r.Register(newPlayerSchema()))
	// Player still references the unregistered School
	assert.ErrorContains(t, r.Validate(), "unknown model School")
}
