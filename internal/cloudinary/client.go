package cloudinary

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"resty.dev/v3"

	"marmer/internal/config"
	"marmer/internal/core"
)

const defaultBaseURL = "https://api.cloudinary.com/v1_1"

// Client uploads files to Cloudinary's upload API with "auto" resource type
// detection, so the reply carries the resolved type ("image" or "video").
type Client struct {
	Logger *slog.Logger
	Config *config.Cloudinary

	// BaseURL overrides the Cloudinary endpoint, used in tests.
	BaseURL string

	client *resty.Client
}

type uploadResponse struct {
	SecureURL    string `json:"secure_url"`
	ResourceType string `json:"resource_type"`
}

func (c *Client) Init(_ context.Context) error {
	c.Logger = c.Logger.With("component", "cloudinary.Client")

	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	c.client = resty.New().
		SetBaseURL(c.BaseURL).
		SetTimeout(30 * time.Second)

	return nil
}

func (c *Client) Shutdown(_ context.Context) error {
	return c.client.Close()
}

func (c *Client) Upload(ctx context.Context, filename string, file io.Reader) (core.Media, error) {
	if c.Config.CloudName == "" || c.Config.APIKey == "" || c.Config.APISecret == "" {
		return core.Media{}, fmt.Errorf("%w: cloudinary credentials are not configured", core.ErrUpload)
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	var result uploadResponse
	resp, err := c.client.R().
		WithContext(ctx).
		SetFileReader("file", filename, file).
		SetFormData(map[string]string{
			"api_key":   c.Config.APIKey,
			"timestamp": timestamp,
			"folder":    c.Config.Folder,
			"signature": c.sign(map[string]string{
				"folder":    c.Config.Folder,
				"timestamp": timestamp,
			}),
		}).
		SetResult(&result).
		Post(fmt.Sprintf("/%s/auto/upload", c.Config.CloudName))
	if err != nil {
		return core.Media{}, fmt.Errorf("%w: %w", core.ErrUpload, err)
	}
	if resp.IsError() {
		return core.Media{}, fmt.Errorf("%w: cloudinary replied %s", core.ErrUpload, resp.Status())
	}

	c.Logger.Debug("uploaded file", "filename", filename, "url", result.SecureURL, "type", result.ResourceType)

	return core.Media{URL: result.SecureURL, Type: result.ResourceType}, nil
}

// sign builds the request signature: parameters sorted by name, joined as a
// query string, SHA-1 hashed with the API secret appended. The file and
// api_key parameters are excluded, per the upload API contract.
func (c *Client) sign(params map[string]string) string {
	keys := lo.Keys(params)
	sort.Strings(keys)

	pairs := lo.Map(keys, func(k string, _ int) string { return k + "=" + params[k] })
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + c.Config.APISecret))

	return hex.EncodeToString(sum[:])
}
