package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"marmer/internal/core"
	"marmer/internal/store"
)

// maxMediaFiles caps how many files one request may attach under "media".
const maxMediaFiles = 5

// maxUploadBytes is the in-memory buffer limit for multipart parsing.
const maxUploadBytes = 32 << 20

var errTooManyFiles = fmt.Errorf("more than %d media files: %w", maxMediaFiles, core.ErrInvalidInput)

type Backend struct {
	Logger   *slog.Logger
	Store    core.Store
	Uploader core.MediaStorage
}

func (b *Backend) Init(context.Context) error {
	b.Logger = b.Logger.With("component", "api.Backend")
	return nil
}

func (b *Backend) Routes(r chi.Router) {
	r.Get("/", b.root)
	r.Get("/health", b.health)

	r.Get("/users", b.listUsers)
	r.Get("/users/{id}", b.getUser)
	r.Get("/users/{id}/posts", b.listUserPosts)

	r.Get("/posts", b.listPosts)
	r.Post("/posts", b.createPost)
	r.Get("/posts/{id}", b.getPost)
	r.Delete("/posts/{id}", b.deletePost)
	r.Post("/posts/{id}/comments", b.createComment)

	r.Get("/stories", b.listStories)
	r.Post("/stories", b.createStory)

	r.Get("/suggestions", b.listSuggestions)

	r.Get("/reels", b.listReels)
	r.Get("/reels/{id}", b.getReel)
}

func (b *Backend) root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Marmer API is running"})
}

func (b *Backend) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (b *Backend) listUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, b.Store.Users(r.Context()))
}

func (b *Backend) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	user, err := b.Store.User(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (b *Backend) listUserPosts(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Data: b.Store.PostsByAuthor(r.Context(), id)})
}

func (b *Backend) listPosts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dataResponse{Data: b.Store.Posts(r.Context())})
}

func (b *Backend) getPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid post id")
		return
	}

	post, err := b.Store.Post(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (b *Backend) createPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	media, err := b.uploadAll(r.Context(), r.MultipartForm.File["media"])
	if err != nil {
		b.writeUploadError(w, r, err)
		return
	}

	post := b.Store.CreatePost(
		r.Context(),
		r.FormValue("title"),
		r.FormValue("body"),
		store.NormalizeTags(r.MultipartForm.Value["tags"]),
		media,
	)
	writeJSON(w, http.StatusCreated, post)
}

func (b *Backend) deletePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid post id")
		return
	}

	if err := b.Store.DeletePost(r.Context(), id); err != nil {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (b *Backend) createComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid post id")
		return
	}

	var input struct {
		Body string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	comment, err := b.Store.AddComment(r.Context(), id, input.Body)
	switch {
	case errors.Is(err, core.ErrNotFound):
		writeError(w, http.StatusNotFound, "Post not found")
	case errors.Is(err, core.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Comment body is required")
	default:
		writeJSON(w, http.StatusCreated, comment)
	}
}

func (b *Backend) listStories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, b.Store.Stories(r.Context()))
}

func (b *Backend) createStory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	media, err := b.uploadAll(r.Context(), r.MultipartForm.File["media"])
	if err != nil {
		b.writeUploadError(w, r, err)
		return
	}

	group := b.Store.CreateStory(
		r.Context(),
		r.FormValue("username"),
		lo.Map(media, func(m core.Media, _ int) string { return m.URL }),
	)
	writeJSON(w, http.StatusCreated, group)
}

func (b *Backend) listSuggestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, b.Store.Suggestions(r.Context()))
}

func (b *Backend) listReels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dataResponse{Data: b.Store.Reels(r.Context())})
}

func (b *Backend) getReel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid reel id")
		return
	}

	reel, err := b.Store.Reel(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Reel not found")
		return
	}
	writeJSON(w, http.StatusOK, reel)
}

// uploadAll stores every file before any record is constructed. The first
// failure aborts the whole batch, nothing partial is ever kept.
func (b *Backend) uploadAll(ctx context.Context, files []*multipart.FileHeader) ([]core.Media, error) {
	if len(files) > maxMediaFiles {
		return nil, errTooManyFiles
	}

	media := make([]core.Media, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: %s", core.ErrUpload, fh.Filename)
		}

		m, err := b.Uploader.Upload(ctx, fh.Filename, f)
		f.Close()
		if err != nil {
			return nil, err
		}
		media = append(media, m)
	}
	return media, nil
}

func (b *Backend) writeUploadError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, core.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, "Too many media files")
		return
	}
	b.Logger.Error("media upload failed", "path", r.URL.Path, "error", err)
	writeError(w, http.StatusBadGateway, "Media upload failed")
}

type dataResponse struct {
	Data any `json:"data"`
}

func pathID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
