package core

import "fmt"

// User is a seeded account. Users are never created or updated through the API.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	ProfileImage string `json:"profile_image"`
}

// Media is one uploaded file attached to a post.
type Media struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

type Comment struct {
	ID        int    `json:"id"`
	Body      string `json:"body"`
	Author    User   `json:"author"`
	CreatedAt string `json:"created_at"`
}

type Post struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	Media         []Media   `json:"media"`
	Tags          []string  `json:"tags"`
	Author        User      `json:"author"`
	CreatedAt     string    `json:"created_at"`
	CommentsCount int       `json:"comments_count"`
	Comments      []Comment `json:"comments"`
}

type StoryItem struct {
	ID    int    `json:"id"`
	Image string `json:"image"`
}

type StoryGroup struct {
	ID           int         `json:"id"`
	Username     string      `json:"username"`
	ProfileImage string      `json:"profile_image"`
	IsRead       bool        `json:"isRead"`
	Stories      []StoryItem `json:"stories"`
}

// Reel and Suggestion are opaque seed records, served back as-is.
type Reel map[string]any

type Suggestion map[string]any

// ID returns the numeric value of the reel's "id" key. JSON numbers decode
// to float64, seed files may also carry them as strings.
func (r Reel) ID() (int, bool) {
	switch v := r["id"].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case string:
		var id int
		_, err := fmt.Sscanf(v, "%d", &id)
		return id, err == nil
	default:
		return 0, false
	}
}

// PlaceholderAuthor is attached to everything created through the API.
// There is no authentication in this system.
var PlaceholderAuthor = User{
	ID:           999,
	Username:     "test_user",
	Name:         "Test User",
	ProfileImage: "default.png",
}
