package sqlite

import "strings"

type Config struct {
	uri   string
	conns int
}

type ConfigFunc = func(c *Config)

// URI sets the database location: a file path or ":memory:", optionally followed by "?" and
// go-sqlite3 connection parameters.
func (c *Config) URI(uri string) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		panic("URI can't be blank")
	}
	if strings.HasPrefix(uri, "?") {
		panic("URI can't start with ?")
	}
	c.uri = uri
}

// Conns sets the size of the connection pool of a file database. In-memory databases always use a
// single connection.
func (c *Config) Conns(conns int) {
	if conns < 1 {
		panic("conns can't be < 1")
	}
	c.conns = conns
}

func WithURI(uri string) ConfigFunc {
	return func(c *Config) {
		c.URI(uri)
	}
}

func WithConns(conns int) ConfigFunc {
	return func(c *Config) {
		c.Conns(conns)
	}
}
