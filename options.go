package docdex

import "github.com/calder-search/docdex/internal/db"

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	driver    string
	addrs     []string
	username  string
	password  string
	dbNum     int
	keyPrefix string
	path      string
	store     db.Store
}

// WithRedis connects the client to a Redis store at the given addresses.
func WithRedis(addrs ...string) Option {
	return func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = addrs
	}
}

// WithRedisAuth sets Redis credentials.
func WithRedisAuth(username, password string) Option {
	return func(c *clientConfig) {
		c.username = username
		c.password = password
	}
}

// WithRedisDB selects the Redis logical database.
func WithRedisDB(n int) Option {
	return func(c *clientConfig) {
		c.dbNum = n
	}
}

// WithKeyPrefix namespaces all store keys. Default "docdex:".
func WithKeyPrefix(prefix string) Option {
	return func(c *clientConfig) {
		c.keyPrefix = prefix
	}
}

// WithBleve connects the client to an embedded bleve index at path.
// An empty path means an in-memory index.
func WithBleve(path string) Option {
	return func(c *clientConfig) {
		c.driver = "bleve"
		c.path = path
	}
}

// WithStore wires a custom store implementation, overriding any driver.
func WithStore(s Store) Option {
	return func(c *clientConfig) {
		c.store = s
	}
}
