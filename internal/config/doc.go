// Package config defines the application's configuration structures and
// the logic for loading them from the environment and optional config
// files. Configuration is read once at startup and passed explicitly to
// the components that need it; nothing reads the environment ad hoc at
// call time.
package config
