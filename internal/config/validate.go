package config

import "errors"

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validatePipeline(); err != nil {
		return err
	}
	if err := c.validateRetention(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Bind == "" {
		return errors.New("server.bind must be set")
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.DownloadDir == "" {
		return errors.New("paths.download_dir must be set")
	}
	return nil
}

func (c *Config) validatePipeline() error {
	if c.Pipeline.YtdlpBinary == "" {
		return errors.New("pipeline.ytdlp_binary must be set")
	}
	if c.Pipeline.FetchTimeoutSeconds <= 0 {
		return errors.New("pipeline.fetch_timeout_seconds must be positive")
	}
	if c.Pipeline.MaxConcurrent < 1 {
		return errors.New("pipeline.max_concurrent must be at least 1")
	}
	if c.Pipeline.MinFreeMB < 0 {
		return errors.New("pipeline.min_free_mb must not be negative")
	}
	return nil
}

func (c *Config) validateRetention() error {
	if c.Retention.SweepIntervalHours < 1 {
		return errors.New("retention.sweep_interval_hours must be at least 1")
	}
	if c.Retention.MaxAgeHours < 1 {
		return errors.New("retention.max_age_hours must be at least 1")
	}
	return nil
}
