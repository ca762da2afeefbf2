package blobstore

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// MediaKind describes how one family of content types is handled.
type MediaKind struct {
	Prefix    string `yaml:"prefix"`
	Thumbnail bool   `yaml:"thumbnail"`
}

type mediaConfig struct {
	Kinds []MediaKind `yaml:"kinds"`
}

// MediaRegistry decides which content types count as media and whether they
// get a thumbnail. Kinds are loaded from the embedded YAML file.
type MediaRegistry struct {
	kinds []MediaKind
}

// NewMediaRegistry loads the embedded media-kind configuration.
func NewMediaRegistry() (*MediaRegistry, error) {
	data, err := configFiles.ReadFile("config/media.yaml")
	if err != nil {
		return nil, fmt.Errorf("read media config: %w", err)
	}

	var cfg mediaConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal media config: %w", err)
	}

	return &MediaRegistry{kinds: cfg.Kinds}, nil
}

// IsMedia reports whether the content type belongs to a media kind.
func (r *MediaRegistry) IsMedia(contentType string) bool {
	for _, k := range r.kinds {
		if strings.HasPrefix(contentType, k.Prefix) {
			return true
		}
	}
	return false
}

// WantsThumbnail reports whether the content type should get a thumbnail URL.
func (r *MediaRegistry) WantsThumbnail(contentType string) bool {
	for _, k := range r.kinds {
		if strings.HasPrefix(contentType, k.Prefix) {
			return k.Thumbnail
		}
	}
	return false
}
