// Package github commits content files to a GitHub repository through the
// contents API.
package github
