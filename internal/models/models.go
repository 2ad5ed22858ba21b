// Package models provides the data structures used throughout the application.
package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Default values applied by the record normalizer when a column could not be
// resolved or a cell is empty. These follow the Brazilian ledger convention
// of the systems this tool imports into.
const (
	DefaultDescription = "Sem Descrição"
	DefaultCategory    = "Geral"
	DefaultAccount     = "Banco Principal"
)

// Role identifies the semantic meaning assigned to a column of a raw grid.
type Role string

const (
	RoleDate         Role = "date"
	RoleAmount       Role = "amount"
	RoleDescription  Role = "description"
	RoleCounterparty Role = "counterparty"
	RoleCategory     Role = "category"
	RoleAccount      Role = "account"

	// Contact import roles
	RoleName     Role = "name"
	RoleDocument Role = "document"
	RoleEmail    Role = "email"
	RolePhone    Role = "phone"
	RoleNotes    Role = "notes"
)

// RoleMap maps a logical role to the index of the column that carries it.
// Roles that could not be resolved are absent from the map. For non-empty
// ledger grids, RoleDate and RoleAmount are always resolved (positional
// fallbacks guarantee it); the remaining roles are optional.
type RoleMap map[Role]int

// Column returns the column index assigned to the given role and whether
// the role was resolved at all.
func (m RoleMap) Column(role Role) (int, bool) {
	idx, ok := m[role]
	return idx, ok
}

// Cell returns the trimmed cell value for the given role in the given row,
// or "" when the role is unresolved or the row is too short.
func (m RoleMap) Cell(row []string, role Role) string {
	idx, ok := m[role]
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// RawGrid is the rectangular output of the tabular extractor: a header row
// followed by data rows of raw string cells. It is ephemeral, produced and
// consumed within a single ingestion call.
type RawGrid struct {
	Header []string
	Rows   [][]string
}

// IsEmpty reports whether the grid carries no data rows.
func (g RawGrid) IsEmpty() bool {
	return len(g.Rows) == 0
}

// TransactionRecord is the canonical unit emitted by the record normalizer.
// Date is stored in ISO format (YYYY-MM-DD). Amount is a signed decimal;
// records whose amount normalizes to zero are dropped before a batch is
// assembled, so every record in a batch has a non-zero amount.
type TransactionRecord struct {
	Account      string          `csv:"Conta"`
	Category     string          `csv:"Categoria"`
	Counterparty string          `csv:"Entidade"`
	Description  string          `csv:"Descricao"`
	Date         string          `csv:"Data"`
	Amount       decimal.Decimal `csv:"Valor"`
}

// ContactRecord is the canonical unit of the contacts import variant.
type ContactRecord struct {
	Name             string `csv:"Nome"`
	DocumentID       string `csv:"Documento"`
	Email            string `csv:"Email"`
	Phone            string `csv:"Telefone"`
	Notes            string `csv:"Observacoes"`
	RegistrationDate string `csv:"DataCadastro"`
}

// ImportBatch is an ordered, reviewable set of normalized transaction
// records pending commit. SourceSet records the sorted list of contributing
// file names and identifies the batch for caching purposes.
type ImportBatch struct {
	Records   []TransactionRecord
	SourceSet []string
}

// ContactBatch is the contacts-import counterpart of ImportBatch.
type ContactBatch struct {
	Records   []ContactRecord
	SourceSet []string
}

// Len returns the number of records in the batch.
func (b *ImportBatch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Records)
}

// Descriptions returns the distinct description strings of the batch in
// first-occurrence order. Used by the batch classifier to build its prompt.
func (b *ImportBatch) Descriptions() []string {
	seen := make(map[string]bool, len(b.Records))
	out := make([]string, 0, len(b.Records))
	for _, r := range b.Records {
		d := strings.TrimSpace(r.Description)
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}
