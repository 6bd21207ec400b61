// Package config holds the driver options and the layering that builds them:
// defaults, then environment variables, then command-line flags. Each layer
// only overrides the options it actually sets, which the nullable field types
// make explicit.
package config
