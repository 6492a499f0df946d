package toolchain

import "os"

// Env is the source of environment variables consulted during resolution.
type Env interface {
	Lookup(key string) (string, bool)
}

// OSEnv reads the process environment.
type OSEnv struct{}

// Lookup implements Env.
func (OSEnv) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapEnv is a fixed environment, mostly useful in tests.
type MapEnv map[string]string

// Lookup implements Env.
func (m MapEnv) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Value returns the variable or "" when unset.
func Value(env Env, key string) string {
	if env == nil {
		return ""
	}
	v, _ := env.Lookup(key)
	return v
}
