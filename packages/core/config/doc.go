// Package config loads project configuration from a restfile.yaml file:
// the default flavor, shared variables and named environment overlays.
package config
