package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeStore(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipes.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCheckCommand(t *testing.T) {
	t.Run("healthy store", func(t *testing.T) {
		path := writeStore(t, `[{"id": 1, "name": "a", "ingredients": []}, {"id": 4, "name": "b", "ingredients": ["x"]}]`)

		var out bytes.Buffer
		cmd := NewCheckCommand()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"--store", path})

		require.NoError(t, cmd.Execute())
		assert.Contains(t, out.String(), "Recipes: 2")
		assert.Contains(t, out.String(), "Next id: 5")
		assert.Contains(t, out.String(), "OK")
	})

	t.Run("missing store is empty", func(t *testing.T) {
		var out bytes.Buffer
		cmd := NewCheckCommand()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"--store", filepath.Join(t.TempDir(), "absent.json")})

		require.NoError(t, cmd.Execute())
		assert.Contains(t, out.String(), "Recipes: 0")
		assert.Contains(t, out.String(), "Next id: 1")
	})

	t.Run("duplicate ids fail", func(t *testing.T) {
		path := writeStore(t, `[{"id": 2, "name": "a", "ingredients": []}, {"id": 2, "name": "b", "ingredients": []}]`)

		var out bytes.Buffer
		cmd := NewCheckCommand()
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--store", path})

		err := cmd.Execute()
		require.Error(t, err)
		assert.Contains(t, out.String(), "Duplicate ids: [2]")
	})

	t.Run("corrupt store fails", func(t *testing.T) {
		path := writeStore(t, "nope")

		cmd := NewCheckCommand()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--store", path})

		err := cmd.Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unreadable")
	})
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := NewVersionCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Recipe Keeper v"+Version)
}
