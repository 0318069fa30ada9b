// Package config provides application configuration management.
//
// Configuration is loaded from a YAML file and validated with
// go-playground/validator. Missing values fall back to documented defaults
// after validation, so a minimal config only needs the feed endpoint.
package config
