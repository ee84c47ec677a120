// ABOUTME: Batch contact import pipeline with per-row failure reporting
// ABOUTME: Resolves or creates parent accounts, caching in-run creations by normalized name
package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/harperreed/rolo/models"
	"github.com/harperreed/rolo/session"
)

// ErrMissingHeader means the file had no header row to key fields by.
var ErrMissingHeader = errors.New("import file is missing a header row")

// Store is the slice of the write interface the pipeline needs.
type Store interface {
	FindAccountByName(name string) (*models.Account, error)
	CreateAccount(account *models.Account) error
	CreateContact(accountID uuid.UUID, contact *models.Contact) error
}

// RowError attributes one failed row to a file line and a reason.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
	Raw    string `json:"raw"`
}

// Report summarizes an import run. Partial row failures do not make the run
// itself an error; callers inspect the counts.
type Report struct {
	SuccessCount int        `json:"success_count"`
	FailedCount  int        `json:"failed_count"`
	Errors       []RowError `json:"errors,omitempty"`
}

// Pipeline imports contacts from delimited text, creating parent accounts as
// needed. Writes are strictly sequential; one malformed row never aborts the
// rest of the batch.
type Pipeline struct {
	store Store
	guard *session.Guard

	// accountCache holds accounts created during this run, keyed by
	// normalized company name. The backing snapshot used by
	// FindAccountByName typically has not caught up with writes issued
	// earlier in the same run, so without this cache a file with two rows
	// naming the same new company would create the account twice.
	accountCache map[string]*models.Account

	// Kind assigned to accounts the pipeline has to create. Defaults to
	// customer.
	NewAccountKind models.AccountKind

	// OnProgress, if set, is called after each row with rows processed so
	// far and the total row count.
	OnProgress func(done, total int)
}

// New creates a pipeline. The guard is optional; when present it is armed
// for the duration of the run so the open detail view does not churn through
// a reconciliation pass per written row.
func New(store Store, guard *session.Guard) *Pipeline {
	return &Pipeline{
		store:          store,
		guard:          guard,
		accountCache:   make(map[string]*models.Account),
		NewAccountKind: models.KindCustomer,
	}
}

// Run parses and imports the file. Rows are processed in file order with a
// cancellation check at the top of each iteration; rows already written stay
// written if the context is cancelled mid-run.
func (p *Pipeline) Run(ctx context.Context, text string) (*Report, error) {
	rows, err := ParseCSV(text)
	if err != nil {
		return nil, err
	}

	report := &Report{}

	work := func() error {
		for i, row := range rows {
			if err := ctx.Err(); err != nil {
				return err
			}

			p.importRow(row, report)

			if p.OnProgress != nil {
				p.OnProgress(i+1, len(rows))
			}
		}
		return nil
	}

	if p.guard != nil {
		err = p.guard.Run(work)
	} else {
		err = work()
	}
	if err != nil {
		return report, err
	}

	return report, nil
}

func (p *Pipeline) importRow(row Row, report *Report) {
	name := row.Fields["name"]
	email := row.Fields["email"]

	if name == "" || email == "" {
		p.fail(report, row, "missing required fields (name, email)")
		return
	}

	company := row.Fields["company"]
	if strings.TrimSpace(company) == "" {
		p.fail(report, row, "missing company to attach contact to")
		return
	}

	account, err := p.findOrCreateAccount(company)
	if err != nil {
		p.fail(report, row, fmt.Sprintf("failed to resolve company %q: %v", company, err))
		return
	}

	contact := &models.Contact{
		Name:  name,
		Email: email,
		Phone: row.Fields["phone"],
		Title: row.Fields["title"],
	}
	if err := p.store.CreateContact(account.ID, contact); err != nil {
		p.fail(report, row, fmt.Sprintf("failed to create contact: %v", err))
		return
	}

	report.SuccessCount++
}

// findOrCreateAccount resolves the parent: in-run cache first, then the
// store's snapshot by exact case-insensitive name, then creation.
func (p *Pipeline) findOrCreateAccount(company string) (*models.Account, error) {
	key := normalizeCompany(company)

	if account, ok := p.accountCache[key]; ok {
		return account, nil
	}

	account, err := p.store.FindAccountByName(company)
	if err != nil {
		return nil, err
	}
	if account != nil {
		p.accountCache[key] = account
		return account, nil
	}

	created := &models.Account{
		Kind: p.NewAccountKind,
		Name: strings.TrimSpace(company),
	}
	switch p.NewAccountKind {
	case models.KindInvestor:
		created.Investor = &models.InvestorFields{}
	case models.KindPartner:
		created.Partner = &models.PartnerFields{}
	default:
		created.Customer = &models.CustomerFields{}
	}

	if err := p.store.CreateAccount(created); err != nil {
		return nil, err
	}

	p.accountCache[key] = created
	return created, nil
}

func (p *Pipeline) fail(report *Report, row Row, reason string) {
	report.FailedCount++
	report.Errors = append(report.Errors, RowError{
		Line:   row.Line,
		Reason: reason,
		Raw:    row.Raw,
	})
}

func normalizeCompany(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
