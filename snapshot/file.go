package snapshot

import (
	"net/url"
	"strings"
)

// FileConfig describes the SQLite file a [Store] persists to.
type FileConfig struct {
	path    string
	durable bool
}

func File(file string) *FileConfig {
	file = strings.TrimSpace(file)
	if file == "" {
		panic("file can't be blank")
	}
	return &FileConfig{path: file}
}

// Durable makes every write wait for the data to reach the disk.
func (c *FileConfig) Durable(durable bool) *FileConfig {
	c.durable = durable
	return c
}

func (c *FileConfig) uri() string {
	if c == nil {
		return ":memory:"
	}

	query := url.Values{}
	if c.durable {
		query.Set("_sync", "full")
	}

	uri, err := url.Parse(c.path)
	if err != nil {
		return c.path + "?" + query.Encode()
	}

	uri.RawQuery = query.Encode()

	return uri.String()
}
