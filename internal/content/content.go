// Package content generates junk file payloads and derives names from the
// configured templates.
package content

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/repofill/repofill/internal/model"
)

// ASCII letters, digits, and punctuation.
const charset = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"0123456789" +
	"!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Generate returns size random characters, each on its own line.
func Generate(size int) string {
	if size <= 0 {
		return ""
	}
	parts := make([]string, size)
	for i := range parts {
		parts[i] = string(charset[rand.IntN(len(charset))])
	}
	return strings.Join(parts, "\n")
}

// RepoName derives a repository name from the configured prefix.
func RepoName(n model.NamingConfig, index int) string {
	return fmt.Sprintf("%s%d", n.RepoPrefix, index)
}

// FileName derives a file path from the configured prefix and extension.
func FileName(n model.NamingConfig, index int) string {
	return fmt.Sprintf("%s%d.%s", n.FilePrefix, index, n.FileExtension)
}

// CommitMessage is the message used for both create and update commits.
func CommitMessage(name string) string {
	return fmt.Sprintf("Add/Update file %s with junk content", name)
}
