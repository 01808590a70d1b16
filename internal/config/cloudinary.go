package config

import (
	"context"

	"github.com/kelseyhightower/envconfig"
)

// Cloudinary credentials are configured out-of-band, never via flags.
type Cloudinary struct {
	CloudName string `envconfig:"CLOUDINARY_CLOUD_NAME"`
	APIKey    string `envconfig:"CLOUDINARY_API_KEY"`
	APISecret string `envconfig:"CLOUDINARY_API_SECRET"`
	Folder    string `envconfig:"CLOUDINARY_UPLOAD_FOLDER" default:"marmer"`
}

func (c *Cloudinary) Init(_ context.Context) error {
	return envconfig.Process("", c)
}
