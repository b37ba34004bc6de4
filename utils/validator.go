package utils

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	sanitizerOnce sync.Once
	sanitizer     *bluemonday.Policy
)

// SanitizeText strips all HTML from user-supplied text fields.
func SanitizeText(input string) string {
	sanitizerOnce.Do(func() {
		sanitizer = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(sanitizer.Sanitize(input))
}
