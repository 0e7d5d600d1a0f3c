package model

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"time"
)

var runIDRegex = regexp.MustCompile(`^run_[0-9]{10}_[0-9a-f]{8}$`)

// GenerateRunID returns a unique run identifier of the form
// run_<unix10>_<hex8>. The timestamp prefix makes lexical order
// chronological, which the report lookup relies on.
func GenerateRunID() (string, error) {
	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("generate random bytes: %w", err)
	}
	return fmt.Sprintf("run_%010d_%s", time.Now().Unix(), hex.EncodeToString(randomBytes)), nil
}

// ValidateRunID reports whether id has the run identifier format.
func ValidateRunID(id string) bool {
	return runIDRegex.MatchString(id)
}
