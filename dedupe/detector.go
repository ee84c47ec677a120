// ABOUTME: Duplicate account detection by normalized-name matching
// ABOUTME: Groups probable duplicates for human review; never auto-merges
package dedupe

import (
	"strings"

	"github.com/harperreed/rolo/models"
)

// Group is a set of probable duplicate accounts, always size >= 2.
type Group struct {
	Accounts []models.Account
}

// FindDuplicates scans the account collection for probable duplicates.
// Two accounts match when their normalized names are equal, or when either
// normalized name contains the other as a substring. The containment rule
// produces false positives on short names ("A" matches "Acme"); output is
// review material, not a merge decision, so the looser matching is kept.
//
// O(n²) over a few hundred accounts, run only on explicit request.
func FindDuplicates(accounts []models.Account) []Group {
	var groups []Group
	processed := make(map[int]bool, len(accounts))

	for i := range accounts {
		if processed[i] {
			continue
		}

		group := []models.Account{accounts[i]}
		nameA := normalizeName(accounts[i].Name)

		for j := i + 1; j < len(accounts); j++ {
			if processed[j] {
				continue
			}
			nameB := normalizeName(accounts[j].Name)
			if namesMatch(nameA, nameB) {
				group = append(group, accounts[j])
				processed[j] = true
			}
		}

		processed[i] = true
		if len(group) >= 2 {
			groups = append(groups, Group{Accounts: group})
		}
	}

	return groups
}

func namesMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

// normalizeName lowercases and strips whitespace for comparison.
func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
