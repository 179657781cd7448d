package style

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPalette_Color(t *testing.T) {
	p := DefaultPalette()

	t.Run("policy rule is indigo", func(t *testing.T) {
		assert.Equal(t, "#6366f1", p.Color("policy_rule"))
	})

	t.Run("unknown tag is grey", func(t *testing.T) {
		assert.Equal(t, "#9ca3af", p.Color("unknown_tag_xyz"))
	})

	t.Run("never empty", func(t *testing.T) {
		for _, tag := range []string{"", " ", "case", "CASE", "\x00", "policy_rule"} {
			assert.NotEmpty(t, p.Color(tag), "tag %q", tag)
		}
	})

	t.Run("zero palette still answers", func(t *testing.T) {
		var zero Palette
		assert.Equal(t, DefaultColor, zero.Color("case"))
	})

	t.Run("case-insensitive fallback", func(t *testing.T) {
		assert.Equal(t, p.Color("case"), p.Color("Case"))
	})

	t.Run("covers the domain vocabulary", func(t *testing.T) {
		assert.GreaterOrEqual(t, len(p.Table()), 40)
	})
}

func TestPalette_With(t *testing.T) {
	base := DefaultPalette()
	ext := base.With(map[string]string{"case": "#000000", "new_type": "#111111", "blank": ""})

	assert.Equal(t, "#000000", ext.Color("case"))
	assert.Equal(t, "#111111", ext.Color("new_type"))
	assert.Equal(t, DefaultColor, ext.Color("blank"))
	assert.NotEqual(t, "#000000", base.Color("case"), "base must be unchanged")
}

func TestLive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "palette.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default: \"#123456\"\ntypes:\n  case: \"#abcdef\"\n"), 0644))

	live := NewLive(DefaultPalette(), path, zap.NewNop().Sugar())

	t.Run("applies overrides at start", func(t *testing.T) {
		assert.Equal(t, "#abcdef", live.Color("case"))
		assert.Equal(t, "#123456", live.Color("mystery"))
		assert.Equal(t, PolicyRuleColor, live.Color("policy_rule"))
	})

	t.Run("reload picks up edits", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("types:\n  case: \"#000001\"\n"), 0644))
		require.NoError(t, live.Reload())
		assert.Equal(t, "#000001", live.Color("case"))
		assert.Equal(t, DefaultColor, live.Color("mystery"))
	})

	t.Run("broken file keeps current palette", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("types: [unclosed"), 0644))
		assert.Error(t, live.Reload())
		assert.Equal(t, "#000001", live.Color("case"))
	})

	t.Run("missing file falls back to base", func(t *testing.T) {
		l := NewLive(DefaultPalette(), filepath.Join(dir, "absent.yaml"), zap.NewNop().Sugar())
		assert.Equal(t, "#3b82f6", l.Color("case"))
	})
}
