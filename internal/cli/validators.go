package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fanhub/fanhub-terminal/pkg/gallery"
	"github.com/fanhub/fanhub-terminal/pkg/models"
)

// ValidateCategory checks category against kind's filter table
func ValidateCategory(kind models.CollectionKind, category string) error {
	categories := gallery.Categories(kind)
	if Contains(categories, category) {
		return nil
	}
	return fmt.Errorf("invalid %s category: %s (must be one of: %s)", kind, category, strings.Join(categories, ", "))
}

// ParseCollection converts a collection name to its kind
func ParseCollection(name string) (models.CollectionKind, error) {
	switch strings.ToLower(name) {
	case "", "gallery":
		return models.CollectionGallery, nil
	case "jenna":
		return models.CollectionJenna, nil
	default:
		return "", fmt.Errorf("invalid collection: %s (must be: gallery or jenna)", name)
	}
}

// ValidateAssetType validates a set-asset target
func ValidateAssetType(t string) error {
	switch t {
	case "banner", "pfp":
		return nil
	}
	return fmt.Errorf("invalid asset type: %s (must be: banner or pfp)", t)
}

// ValidateFilePath validates that a file path exists and is a file
func ValidateFilePath(path string) error {
	if !filepath.IsAbs(path) {
		path, _ = filepath.Abs(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("path does not exist: %s", path)
		}
		return fmt.Errorf("error accessing path: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, expected file: %s", path)
	}

	return nil
}

// ValidateOutputFormat validates the output format flag
func ValidateOutputFormat(format string) error {
	validFormats := []string{"text", "json", "yaml"}
	for _, valid := range validFormats {
		if format == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid output format: %s (must be: text, json, or yaml)", format)
}

// ValidateChannelName validates a channel name for add/delete
func ValidateChannelName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("channel name cannot be empty")
	}
	return nil
}

// Contains checks if a string is in a slice
func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
