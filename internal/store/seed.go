package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"marmer/internal/core"
)

// Seed is the static initial content, one JSON array per collection.
// It is loaded once at startup and never written back.
type Seed struct {
	Users       []core.User
	Posts       []core.Post
	Reels       []core.Reel
	Stories     []core.StoryGroup
	Suggestions []core.Suggestion
}

func LoadSeed(dir string) (Seed, error) {
	var seed Seed

	for name, target := range map[string]any{
		"users.json":       &seed.Users,
		"posts.json":       &seed.Posts,
		"reels.json":       &seed.Reels,
		"stories.json":     &seed.Stories,
		"suggestions.json": &seed.Suggestions,
	} {
		if err := readJSON(filepath.Join(dir, name), target); err != nil {
			return Seed{}, err
		}
	}

	return seed, nil
}

func readJSON(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return nil
}
