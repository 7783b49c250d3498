// Package file writes articles as Markdown files with YAML front-matter.
package file
