// Package sanitize strips markup from user-submitted text fields. The API
// stores plain text only (names, appointment titles, descriptions); anything
// that looks like HTML in the payload is markup we never want echoed back to
// the mobile client.
package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// policy is the singleton strict policy: no tags or attributes survive.
// Initialized once via sync.Once for thread-safe lazy initialization.
var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// Text strips all HTML tags and attributes from the input and trims the
// surrounding whitespace. Entities introduced by the stripping (e.g. &lt;)
// are left encoded; the stored value is what the client will display.
func Text(input string) string {
	return strings.TrimSpace(getPolicy().Sanitize(input))
}
