package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/samber/lo"

	"marmer/internal/config"
	"marmer/internal/core"
)

// Store keeps the five collections in process memory. A single RWMutex
// serializes mutations so id assignment and append never interleave.
type Store struct {
	Logger *slog.Logger
	Config *config.Config

	mu          sync.RWMutex
	users       []core.User
	posts       []core.Post
	reels       []core.Reel
	stories     []core.StoryGroup
	suggestions []core.Suggestion
}

func (s *Store) Init(_ context.Context) error {
	s.Logger = s.Logger.With("component", "store.Store")

	seed, err := LoadSeed(s.Config.DataDir)
	if err != nil {
		return fmt.Errorf("loading seed data: %w", err)
	}
	s.Load(seed)

	s.Logger.Info("seed data loaded",
		"users", len(seed.Users),
		"posts", len(seed.Posts),
		"reels", len(seed.Reels),
		"stories", len(seed.Stories),
		"suggestions", len(seed.Suggestions),
	)
	return nil
}

// Load replaces every collection with the seed's contents. Collections are
// never nil so list responses always marshal as arrays.
func (s *Store) Load(seed Seed) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = orEmpty(seed.Users)
	s.posts = lo.Map(orEmpty(seed.Posts), normalizePost)
	s.reels = orEmpty(seed.Reels)
	s.stories = orEmpty(seed.Stories)
	s.suggestions = orEmpty(seed.Suggestions)
}

func (s *Store) Users(_ context.Context) []core.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.users)
}

func (s *Store) User(_ context.Context, id int) (core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := lo.Find(s.users, func(u core.User) bool { return u.ID == id })
	if !ok {
		return core.User{}, fmt.Errorf("user %d: %w", id, core.ErrNotFound)
	}
	return user, nil
}

func (s *Store) Posts(_ context.Context) []core.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clonePosts(s.posts)
}

func (s *Store) Post(_ context.Context, id int) (core.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := lo.Find(s.posts, func(p core.Post) bool { return p.ID == id })
	if !ok {
		return core.Post{}, fmt.Errorf("post %d: %w", id, core.ErrNotFound)
	}
	return clonePost(post), nil
}

func (s *Store) PostsByAuthor(_ context.Context, authorID int) []core.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return clonePosts(lo.Filter(s.posts, func(p core.Post, _ int) bool {
		return p.Author.ID == authorID
	}))
}

func (s *Store) CreatePost(_ context.Context, title, body string, tags []string, media []core.Media) core.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tags == nil {
		tags = []string{}
	}
	if media == nil {
		media = []core.Media{}
	}

	post := core.Post{
		ID:            nextID(lo.Map(s.posts, func(p core.Post, _ int) int { return p.ID })),
		Title:         title,
		Body:          body,
		Media:         media,
		Tags:          tags,
		Author:        core.PlaceholderAuthor,
		CreatedAt:     now(),
		CommentsCount: 0,
		Comments:      []core.Comment{},
	}
	s.posts = append(s.posts, post)

	return clonePost(post)
}

func (s *Store) DeletePost(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists := lo.ContainsBy(s.posts, func(p core.Post) bool { return p.ID == id })
	if !exists {
		return fmt.Errorf("post %d: %w", id, core.ErrNotFound)
	}
	s.posts = lo.Reject(s.posts, func(p core.Post, _ int) bool { return p.ID == id })

	return nil
}

func (s *Store) AddComment(_ context.Context, postID int, body string) (core.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, i, ok := lo.FindIndexOf(s.posts, func(p core.Post) bool { return p.ID == postID })
	if !ok {
		return core.Comment{}, fmt.Errorf("post %d: %w", postID, core.ErrNotFound)
	}
	if body == "" {
		return core.Comment{}, fmt.Errorf("comment body: %w", core.ErrInvalidInput)
	}

	post := &s.posts[i]
	comment := core.Comment{
		ID:        nextID(lo.Map(post.Comments, func(c core.Comment, _ int) int { return c.ID })),
		Body:      body,
		Author:    core.PlaceholderAuthor,
		CreatedAt: now(),
	}

	// Clip forces the append to reallocate, so post copies handed out
	// earlier never observe the new comment.
	post.Comments = append(slices.Clip(post.Comments), comment)
	post.CommentsCount = len(post.Comments)

	return comment, nil
}

func (s *Store) Reels(_ context.Context) []core.Reel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.reels)
}

func (s *Store) Reel(_ context.Context, id int) (core.Reel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reel, ok := lo.Find(s.reels, func(r core.Reel) bool {
		rid, ok := r.ID()
		return ok && rid == id
	})
	if !ok {
		return nil, fmt.Errorf("reel %d: %w", id, core.ErrNotFound)
	}
	return reel, nil
}

func (s *Store) Stories(_ context.Context) []core.StoryGroup {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.stories)
}

func (s *Store) CreateStory(_ context.Context, username string, images []string) core.StoryGroup {
	s.mu.Lock()
	defer s.mu.Unlock()

	group := core.StoryGroup{
		ID:           nextID(lo.Map(s.stories, func(g core.StoryGroup, _ int) int { return g.ID })),
		Username:     username,
		ProfileImage: core.PlaceholderAuthor.ProfileImage,
		IsRead:       false,
		Stories: lo.Map(images, func(url string, i int) core.StoryItem {
			return core.StoryItem{ID: i + 1, Image: url}
		}),
	}
	s.stories = append(s.stories, group)

	return group
}

func (s *Store) Suggestions(_ context.Context) []core.Suggestion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.suggestions)
}

// nextID is max+1 so ids stay unique even after deletions. lo.Max returns
// the zero value for an empty collection, which makes the first id 1.
func nextID(ids []int) int {
	return lo.Max(ids) + 1
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func normalizePost(p core.Post, _ int) core.Post {
	p.Media = orEmpty(p.Media)
	p.Tags = orEmpty(p.Tags)
	p.Comments = orEmpty(p.Comments)
	return p
}

func clonePost(p core.Post) core.Post {
	p.Comments = slices.Clone(p.Comments)
	return p
}

func clonePosts(posts []core.Post) []core.Post {
	return lo.Map(posts, func(p core.Post, _ int) core.Post { return clonePost(p) })
}
