package dedupe

import (
	"testing"

	"github.com/google/uuid"
	"github.com/harperreed/rolo/models"
)

func account(name string) models.Account {
	return models.Account{
		ID:       uuid.New(),
		Kind:     models.KindCustomer,
		Name:     name,
		Customer: &models.CustomerFields{},
	}
}

func groupNames(g Group) []string {
	names := make([]string, len(g.Accounts))
	for i, a := range g.Accounts {
		names[i] = a.Name
	}
	return names
}

func TestFindDuplicatesCaseAndWhitespaceInsensitive(t *testing.T) {
	accounts := []models.Account{
		account("Acme Inc"),
		account("acme inc "),
		account("Initech"),
	}

	groups := FindDuplicates(accounts)

	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if len(groups[0].Accounts) != 2 {
		t.Errorf("expected 2 members, got %v", groupNames(groups[0]))
	}
}

func TestFindDuplicatesSubstringContainment(t *testing.T) {
	accounts := []models.Account{
		account("Acme"),
		account("Acme Industries"),
	}

	groups := FindDuplicates(accounts)

	if len(groups) != 1 || len(groups[0].Accounts) != 2 {
		t.Fatalf("expected Acme and Acme Industries grouped, got %v", groups)
	}
}

func TestFindDuplicatesNoSingletonGroups(t *testing.T) {
	accounts := []models.Account{
		account("Alpha"),
		account("Bravo"),
		account("Charlie"),
	}

	if groups := FindDuplicates(accounts); len(groups) != 0 {
		t.Errorf("expected no groups for distinct names, got %d", len(groups))
	}
}

func TestFindDuplicatesProcessedAccountsNotRegrouped(t *testing.T) {
	accounts := []models.Account{
		account("Acme"),
		account("Acme Industries"),
		account("Acme Industrial Holdings"),
		account("Zenith"),
	}

	groups := FindDuplicates(accounts)

	if len(groups) != 1 {
		t.Fatalf("expected a single group, got %d", len(groups))
	}

	// Every matched account lands in exactly one group.
	seen := make(map[uuid.UUID]int)
	for _, g := range groups {
		for _, a := range g.Accounts {
			seen[a.ID]++
		}
	}
	for id, count := range seen {
		if count != 1 {
			t.Errorf("account %v appears in %d groups", id, count)
		}
	}
}

func TestFindDuplicatesEmptyNamesNeverMatch(t *testing.T) {
	accounts := []models.Account{
		account(""),
		account("   "),
		account("Acme"),
	}

	if groups := FindDuplicates(accounts); len(groups) != 0 {
		t.Errorf("blank names must not group, got %v", groups)
	}
}

func TestFindDuplicatesShortNameFalsePositivePreserved(t *testing.T) {
	// Documented heuristic behavior: a single-letter name is contained in
	// any name carrying that letter.
	accounts := []models.Account{
		account("A"),
		account("Acme Capital"),
	}

	groups := FindDuplicates(accounts)
	if len(groups) != 1 {
		t.Fatalf("expected the short-name containment match, got %d groups", len(groups))
	}
}
