package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateUploads(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	return nil
}

func (c *Config) validateStorage() error {
	if c.Storage.BaseURL != "" {
		if _, err := url.ParseRequestURI(c.Storage.BaseURL); err != nil {
			return fmt.Errorf("storage.base_url is not a valid URL: %w", err)
		}
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if c.Catalog.BaseURL != "" {
		if _, err := url.ParseRequestURI(c.Catalog.BaseURL); err != nil {
			return fmt.Errorf("catalog.base_url is not a valid URL: %w", err)
		}
	}
	return nil
}

func (c *Config) validateUploads() error {
	if c.Uploads.Concurrency < 1 || c.Uploads.Concurrency > 32 {
		return errors.New("uploads.concurrency must be between 1 and 32")
	}
	if c.Uploads.MaxAudioMiB < 1 {
		return errors.New("uploads.max_audio_mib must be at least 1")
	}
	if c.Uploads.MaxImageMiB < 1 {
		return errors.New("uploads.max_image_mib must be at least 1")
	}
	if c.Uploads.MinCoverArtPx < 1 {
		return errors.New("uploads.min_cover_art_px must be at least 1")
	}
	return nil
}
