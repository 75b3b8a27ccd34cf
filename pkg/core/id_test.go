package core_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/timedpad/pkg/core"
)

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  core.ID
	}{
		{name: "string", input: `"abc-123"`, want: "abc-123"},
		{name: "legacy number", input: `1712345678901`, want: "1712345678901"},
		{name: "padded", input: ` 42 `, want: "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id core.ID
			require.NoError(t, json.Unmarshal([]byte(tt.input), &id))
			assert.Equal(t, tt.want, id)
		})
	}

	t.Run("rejects objects", func(t *testing.T) {
		var id core.ID
		assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &id))
	})
}

func TestID_UnmarshalYAML(t *testing.T) {
	var line core.Line
	require.NoError(t, yaml.Unmarshal([]byte("id: 1712345678901\ncontent: hi\n"), &line))
	assert.Equal(t, core.ID("1712345678901"), line.ID)
	assert.Equal(t, "hi", line.Content)

	err := yaml.Unmarshal([]byte("id: [1, 2]\n"), &line)
	assert.Error(t, err)
}

func TestUUIDGenerator_Unique(t *testing.T) {
	seen := make(map[core.ID]bool)
	for i := 0; i < 1000; i++ {
		id := core.UUIDGenerator.NewID()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestNote_Clone(t *testing.T) {
	orig := core.Note{ID: "n1", Title: "Note 1", Lines: []core.Line{{ID: "l1", Content: "a"}}}
	cp := orig.Clone()
	cp.Lines[0].Content = "changed"

	assert.Equal(t, "a", orig.Lines[0].Content)
}
