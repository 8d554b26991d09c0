// Package career derives the two pieces of shared state every screen
// needs from the user's analysis history: the restricted-mode flag and
// the role catalog.
package career

import (
	"strings"

	"github.com/careernav/canav/internal/core/api"
)

// Restricted reports whether gated features should be locked. Unknown
// state (still loading) resolves to locked, never to open.
func Restricted(loading, hasAnyHistory bool) bool {
	return loading || !hasAnyHistory
}

// noRole is the backend's placeholder when an analysis produced no
// usable domain.
const noRole = "N/A"

// Roles reduces history records to the de-duplicated set of job roles,
// keeping first-occurrence order and dropping blank and placeholder
// domains.
func Roles(records []api.HistoryRecord) []string {
	seen := make(map[string]bool, len(records))
	var roles []string
	for _, r := range records {
		domain := strings.TrimSpace(r.Domain)
		if domain == "" || domain == noRole || seen[domain] {
			continue
		}
		seen[domain] = true
		roles = append(roles, domain)
	}
	return roles
}
