package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("adds new policies over builtin", func(t *testing.T) {
		c, err := Parse([]byte(`
policies:
  - slug: report:export
    name: Export reports
    description: Export compliance reports
    category: reporting
`))
		require.NoError(t, err)

		p, ok := c.Lookup("report:export")
		require.True(t, ok)
		assert.Equal(t, "Export reports", p.Name)

		// Builtin entries survive the merge
		_, ok = c.Lookup("model:read")
		assert.True(t, ok)
	})

	t.Run("replaces builtin entry with same slug", func(t *testing.T) {
		c, err := Parse([]byte(`
policies:
  - slug: model:read
    name: Browse models
    category: models
`))
		require.NoError(t, err)

		p, _ := c.Lookup("model:read")
		assert.Equal(t, "Browse models", p.Name)
		assert.Len(t, c.Policies(), len(Builtin().Policies()))
	})

	t.Run("rejects invalid slug", func(t *testing.T) {
		_, err := Parse([]byte(`
policies:
  - slug: Bad-Slug
    name: Nope
`))
		assert.Error(t, err)
	})

	t.Run("rejects bundle with unknown slug", func(t *testing.T) {
		_, err := Parse([]byte(`
bundles:
  auditor:
    - model:read
    - audit:read_everything
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown slug")
	})

	t.Run("bundle referencing file-defined slug", func(t *testing.T) {
		c, err := Parse([]byte(`
policies:
  - slug: audit:read_everything
    name: Read audit log
    category: administration
bundles:
  auditor:
    - model:read
    - audit:read_everything
`))
		require.NoError(t, err)
		assert.ElementsMatch(t,
			[]string{"model:read", "audit:read_everything"},
			c.DefaultBundle("auditor"))
	})

	t.Run("bundle names are lowercased", func(t *testing.T) {
		c, err := Parse([]byte(`
bundles:
  Reviewer:
    - model:read
`))
		require.NoError(t, err)
		assert.Equal(t, []string{"model:read"}, c.DefaultBundle("reviewer"))
		assert.Equal(t, []string{"model:read"}, c.DefaultBundle("Reviewer"))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Parse([]byte("policies: [whoops"))
		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load("/nonexistent/catalog.yml")
		assert.Error(t, err)
	})

	t.Run("round trip from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yml")
		require.NoError(t, os.WriteFile(path, []byte(`
policies:
  - slug: report:export
    name: Export reports
    category: reporting
`), 0o600))

		c, err := Load(path)
		require.NoError(t, err)
		_, ok := c.Lookup("report:export")
		assert.True(t, ok)
	})
}
