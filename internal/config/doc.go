// Package config defines the application configuration structures and
// loads them from environment variables (PAIRFORGE_ prefix) and an
// optional YAML file, with environment values taking precedence.
package config
