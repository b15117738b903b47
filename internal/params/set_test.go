package params

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	s := Defaults()

	require.Equal(t, 9, s.Len())
	assert.Equal(t, []string{
		"prompt", "context", "intent", "focus", "priority",
		"confidence", "tags", "metadata", "attention_streams",
	}, s.Names())
	assert.Equal(t, []string{PromptParameter}, s.RequiredNames())

	streams, ok := s.Get(AttentionStreamsParameter)
	require.True(t, ok)
	arr, ok := streams.Type.(ArrayType)
	require.True(t, ok)
	require.NotNil(t, arr.Items)
	assert.Equal(t, "object", arr.Items.Type)

	priority, ok := s.Get("priority")
	require.True(t, ok)
	num, ok := priority.Type.(NumberType)
	require.True(t, ok)
	assert.Equal(t, 0.0, *num.Minimum)
	assert.Equal(t, 10.0, *num.Maximum)
}

func TestDefaults_Independent(t *testing.T) {
	a := Defaults()
	b := Defaults()
	a.SetAllRequired(true)
	assert.Equal(t, []string{PromptParameter}, b.RequiredNames())
}

func TestSet_Add(t *testing.T) {
	s := Defaults()

	err := s.Add(Definition{Name: "url", Description: "Base URL", Type: StringType{}})
	require.NoError(t, err)
	assert.Equal(t, 10, s.Len())
	assert.Equal(t, "url", s.Names()[9])

	t.Run("duplicate of added", func(t *testing.T) {
		err := s.Add(Definition{Name: "url", Description: "again", Type: StringType{}})
		assert.ErrorIs(t, err, ErrDuplicateParameter)
	})

	t.Run("duplicate of default", func(t *testing.T) {
		err := s.Add(Definition{Name: "prompt", Description: "again", Type: StringType{}})
		assert.ErrorIs(t, err, ErrDuplicateParameter)
	})

	t.Run("empty name", func(t *testing.T) {
		err := s.Add(Definition{Name: " ", Description: "d", Type: StringType{}})
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("empty description", func(t *testing.T) {
		err := s.Add(Definition{Name: "x", Description: "\t", Type: StringType{}})
		assert.ErrorIs(t, err, ErrEmptyDescription)
	})

	t.Run("missing type", func(t *testing.T) {
		err := s.Add(Definition{Name: "x", Description: "d"})
		assert.ErrorIs(t, err, ErrMissingType)
	})

	assert.Equal(t, 10, s.Len(), "failed adds must not change the set")
}

func TestSet_ZeroValue(t *testing.T) {
	var s Set
	require.NoError(t, s.Add(Definition{Name: "a", Description: "d", Type: AnyType{}}))
	assert.True(t, s.Has("a"))
}

func TestSet_SetRequired(t *testing.T) {
	s := Defaults()

	require.NoError(t, s.SetRequired([]string{"context", "tags"}, true))
	assert.Equal(t, []string{"prompt", "context", "tags"}, s.RequiredNames())

	require.NoError(t, s.SetRequired([]string{"prompt"}, false))
	assert.Equal(t, []string{"context", "tags"}, s.RequiredNames())
}

func TestSet_SetRequired_UnknownNames(t *testing.T) {
	s := Defaults()

	err := s.SetRequired([]string{"context", "nope", "missing"}, true)
	require.Error(t, err)

	var unknown *UnknownParameterError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, []string{"nope", "missing"}, unknown.Names)
	assert.Equal(t, s.Names(), unknown.Valid)
	assert.Contains(t, err.Error(), "nope, missing")
	assert.Contains(t, err.Error(), "valid: prompt, context, intent")

	assert.Equal(t, []string{"prompt"}, s.RequiredNames(), "no entry may change when a name is unknown")
}

func TestSet_SetAllRequired(t *testing.T) {
	s := Defaults()

	s.SetAllRequired(true)
	assert.Equal(t, s.Names(), s.RequiredNames())

	s.SetAllRequired(false)
	assert.Empty(t, s.RequiredNames())
}

func TestSet_Clone(t *testing.T) {
	s := Defaults()
	c := s.Clone()

	require.NoError(t, c.Add(Definition{Name: "extra", Description: "d", Type: StringType{}}))
	c.SetAllRequired(true)

	assert.Equal(t, 9, s.Len())
	assert.False(t, s.Has("extra"))
	assert.Equal(t, []string{PromptParameter}, s.RequiredNames())
}

func TestSet_DefinitionsIsCopy(t *testing.T) {
	s := Defaults()
	defs := s.Definitions()
	defs[0].Required = false

	def, _ := s.Get(PromptParameter)
	assert.True(t, def.Required)
}
