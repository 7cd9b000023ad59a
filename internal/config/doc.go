// Package config provides configuration structures and utilities for
// coursecrawl. It defines the main options for crawling the course
// catalogue, persistence, and export preferences, plus named search
// presets loaded from a YAML file.
package config
