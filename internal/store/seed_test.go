package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"marmer/internal/store"
)

func writeSeedFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func minimalSeedFiles() map[string]string {
	return map[string]string{
		"users.json":       `[{"id": 1, "username": "nora", "name": "Nora", "profile_image": "nora.jpg"}]`,
		"posts.json":       `[]`,
		"reels.json":       `[{"id": 1, "caption": "pour", "extra": {"nested": true}}]`,
		"stories.json":     `[]`,
		"suggestions.json": `[{"id": 1, "username": "atlas.archive"}]`,
	}
}

func TestLoadSeed(t *testing.T) {
	t.Parallel()

	t.Run("loads one array per collection", func(t *testing.T) {
		t.Parallel()

		dir := writeSeedFiles(t, minimalSeedFiles())

		seed, err := store.LoadSeed(dir)
		require.NoError(t, err)
		require.Len(t, seed.Users, 1)
		require.Equal(t, "nora", seed.Users[0].Username)
		require.Empty(t, seed.Posts)
		require.Len(t, seed.Reels, 1)
		require.Len(t, seed.Suggestions, 1)
	})

	t.Run("opaque collections keep unknown keys", func(t *testing.T) {
		t.Parallel()

		dir := writeSeedFiles(t, minimalSeedFiles())

		seed, err := store.LoadSeed(dir)
		require.NoError(t, err)
		require.Contains(t, seed.Reels[0], "extra")
	})

	t.Run("missing file fails", func(t *testing.T) {
		t.Parallel()

		files := minimalSeedFiles()
		delete(files, "reels.json")
		dir := writeSeedFiles(t, files)

		_, err := store.LoadSeed(dir)
		require.Error(t, err)
	})

	t.Run("malformed json fails with the file name", func(t *testing.T) {
		t.Parallel()

		files := minimalSeedFiles()
		files["posts.json"] = `{not json`
		dir := writeSeedFiles(t, files)

		_, err := store.LoadSeed(dir)
		require.ErrorContains(t, err, "posts.json")
	})

	t.Run("ships with usable seed data", func(t *testing.T) {
		t.Parallel()

		seed, err := store.LoadSeed(filepath.Join("..", "..", "data"))
		require.NoError(t, err)
		require.NotEmpty(t, seed.Users)
		require.NotEmpty(t, seed.Posts)
		require.NotEmpty(t, seed.Reels)
		require.NotEmpty(t, seed.Stories)
		require.NotEmpty(t, seed.Suggestions)
	})
}
