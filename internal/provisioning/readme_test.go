package provisioning

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstitute(t *testing.T) {
	t.Parallel()
	values := map[string]string{"loggedUser": "octocat", "empty": ""}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single variable", "Created by ${loggedUser}", "Created by octocat"},
		{"repeated variable", "${loggedUser}/${loggedUser}", "octocat/octocat"},
		{"unknown variable", "Hello ${other}", "Hello ${other}"},
		{"empty value", "[${empty}]", "[]"},
		{"escaped variable", "Use $${loggedUser} in templates", "Use ${loggedUser} in templates"},
		{"no variables", "plain text $ and {braces}", "plain text $ and {braces}"},
		{"unterminated", "${loggedUser", "${loggedUser"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Substitute(tt.in, values))
		})
	}
}

func TestSubstituteFile(t *testing.T) {
	t.Parallel()

	t.Run("rewrites and keeps mode", func(t *testing.T) {
		t.Parallel()
		path := writeReadme(t, t.TempDir(), "= Demo\nOwner: ${loggedUser}\n")

		ok, err := substituteFile(path, func() (map[string]string, error) {
			return map[string]string{LoggedUserVariable: "octocat"}, nil
		})
		require.NoError(t, err)
		assert.True(t, ok)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "= Demo\nOwner: octocat\n", string(data))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		called := false
		ok, err := substituteFile(filepath.Join(t.TempDir(), ReadmeFile), func() (map[string]string, error) {
			called = true
			return nil, nil
		})
		require.NoError(t, err)
		assert.False(t, ok)
		assert.False(t, called)
	})

	t.Run("values error leaves file untouched", func(t *testing.T) {
		t.Parallel()
		path := writeReadme(t, t.TempDir(), "${loggedUser}")

		_, err := substituteFile(path, func() (map[string]string, error) {
			return nil, errors.New("unauthorized")
		})
		require.Error(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "${loggedUser}", string(data))
	})
}
