package config

import "strings"

func (c *Config) normalize() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}

	c.Storage.BaseURL = strings.TrimRight(strings.TrimSpace(c.Storage.BaseURL), "/")
	c.Storage.Token = strings.TrimSpace(c.Storage.Token)
	c.Storage.Folder = strings.Trim(strings.TrimSpace(c.Storage.Folder), "/")
	c.Catalog.BaseURL = strings.TrimRight(strings.TrimSpace(c.Catalog.BaseURL), "/")
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)

	if c.Storage.RequestTimeout <= 0 {
		c.Storage.RequestTimeout = defaultRequestTimeout
	}
	if c.Catalog.RequestTimeout <= 0 {
		c.Catalog.RequestTimeout = defaultRequestTimeout
	}
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNtfyTimeout
	}
	if c.Uploads.Concurrency <= 0 {
		c.Uploads.Concurrency = defaultUploadConcurrency
	}
	return nil
}
