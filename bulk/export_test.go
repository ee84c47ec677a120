package bulk

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/harperreed/rolo/models"
)

func nonEmptyLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func TestFormatCSVRoundTripRowCount(t *testing.T) {
	var accounts []models.Account
	for i := 0; i < 5; i++ {
		accounts = append(accounts, models.Account{
			ID:       uuid.New(),
			Kind:     models.KindInvestor,
			Name:     "Fund",
			Investor: &models.InvestorFields{},
		})
	}

	lines := nonEmptyLines(FormatCSV(accounts))
	assert.Len(t, lines, 6, "N accounts yield N data rows plus one header row")
	assert.Equal(t, ExportHeader, lines[0])
}

func TestFormatCSVJoinsContactsWithSemicolon(t *testing.T) {
	date := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	account := models.Account{
		ID:       uuid.New(),
		Kind:     models.KindCustomer,
		Name:     "Acme",
		Status:   "active",
		Priority: models.PriorityHigh,
		Customer: &models.CustomerFields{},
		Contacts: []models.Contact{
			{Name: "Alice"},
			{Name: "Bob"},
		},
		NextAction:     "send contract",
		NextActionDate: &date,
	}

	lines := nonEmptyLines(FormatCSV([]models.Account{account}))
	assert.Equal(t, "Acme,active,high,Alice; Bob,send contract,2026-08-25", lines[1])
}

func TestFormatCSVEscapesQuotes(t *testing.T) {
	account := models.Account{
		ID:       uuid.New(),
		Kind:     models.KindCustomer,
		Name:     `Acme "The Best" Inc`,
		Customer: &models.CustomerFields{},
	}

	lines := nonEmptyLines(FormatCSV([]models.Account{account}))
	assert.True(t, strings.HasPrefix(lines[1], `"Acme ""The Best"" Inc"`), "quotes doubled and field wrapped: %q", lines[1])
}

func TestFormatCSVEscapesEmbeddedCommas(t *testing.T) {
	account := models.Account{
		ID:         uuid.New(),
		Kind:       models.KindCustomer,
		Name:       "Acme",
		Customer:   &models.CustomerFields{},
		NextAction: "call, then email",
	}

	lines := nonEmptyLines(FormatCSV([]models.Account{account}))
	assert.Contains(t, lines[1], `"call, then email"`)
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2026, 8, 25, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "accounts_export_2026-08-25.csv", ExportFilename("accounts", now))
	assert.Equal(t, "investors_export_2026-08-25.csv", ExportFilename("investors", now))
}
