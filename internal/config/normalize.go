package config

import "strings"

// Normalize expands home-relative paths and trims whitespace so downstream
// code can use the values verbatim.
func (c *Config) Normalize() {
	c.Server.Bind = strings.TrimSpace(c.Server.Bind)
	c.Server.BaseURL = strings.TrimRight(strings.TrimSpace(c.Server.BaseURL), "/")
	c.Paths.DownloadDir = ExpandPath(c.Paths.DownloadDir)
	c.Paths.LogDir = ExpandPath(c.Paths.LogDir)
	c.Pipeline.YtdlpBinary = strings.TrimSpace(c.Pipeline.YtdlpBinary)
	c.History.Path = ExpandPath(c.History.Path)
}
