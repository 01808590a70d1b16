package cloudinary_test

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"marmer/internal/cloudinary"
	"marmer/internal/config"
	"marmer/internal/core"
)

func testConfig() *config.Cloudinary {
	return &config.Cloudinary{
		CloudName: "demo",
		APIKey:    "key123",
		APISecret: "shhh",
		Folder:    "marmer",
	}
}

func newClient(t *testing.T, baseURL string, cfg *config.Cloudinary) *cloudinary.Client {
	t.Helper()

	c := &cloudinary.Client{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config:  cfg,
		BaseURL: baseURL,
	}
	require.NoError(t, c.Init(t.Context()))
	t.Cleanup(func() { c.Shutdown(context.Background()) }) //nolint:errcheck

	return c
}

func TestClient_Upload(t *testing.T) {
	t.Parallel()

	t.Run("posts a signed multipart request", func(t *testing.T) {
		t.Parallel()

		var gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			require.NoError(t, r.ParseMultipartForm(1<<20))

			require.Equal(t, "key123", r.FormValue("api_key"))
			require.Equal(t, "marmer", r.FormValue("folder"))
			require.NotEmpty(t, r.FormValue("timestamp"))

			payload := fmt.Sprintf("folder=%s&timestamp=%s", r.FormValue("folder"), r.FormValue("timestamp"))
			sum := sha1.Sum([]byte(payload + "shhh"))
			require.Equal(t, hex.EncodeToString(sum[:]), r.FormValue("signature"))

			file, header, err := r.FormFile("file")
			require.NoError(t, err)
			defer file.Close()
			require.Equal(t, "cat.jpg", header.Filename)

			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{
				"secure_url": "https://res.cloudinary.com/demo/image/upload/v1/marmer/cat.jpg",
				"resource_type": "image"
			}`)
		}))
		t.Cleanup(srv.Close)

		c := newClient(t, srv.URL, testConfig())

		media, err := c.Upload(t.Context(), "cat.jpg", strings.NewReader("file contents"))
		require.NoError(t, err)
		require.Equal(t, "/demo/auto/upload", gotPath)
		require.Equal(t, core.Media{
			URL:  "https://res.cloudinary.com/demo/image/upload/v1/marmer/cat.jpg",
			Type: "image",
		}, media)
	})

	t.Run("upstream error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"error": {"message": "Invalid Signature"}}`, http.StatusUnauthorized)
		}))
		t.Cleanup(srv.Close)

		c := newClient(t, srv.URL, testConfig())

		_, err := c.Upload(t.Context(), "cat.jpg", strings.NewReader("x"))
		require.ErrorIs(t, err, core.ErrUpload)
	})

	t.Run("missing credentials", func(t *testing.T) {
		t.Parallel()

		c := newClient(t, "http://127.0.0.1:0", &config.Cloudinary{Folder: "marmer"})

		_, err := c.Upload(t.Context(), "cat.jpg", strings.NewReader("x"))
		require.ErrorIs(t, err, core.ErrUpload)
	})
}
