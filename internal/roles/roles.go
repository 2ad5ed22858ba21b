// Package roles assigns semantic roles to the columns of a raw grid. The
// inference is a pure function over header labels and sample rows: keyword
// containment first, positional and statistical fallbacks second. It never
// fails; the worst case is a map with only the guaranteed roles resolved.
package roles

import (
	"strings"

	"mribeiro/extrato-csv/internal/models"
)

// ledgerKeywords maps each ledger role to the header fragments that resolve
// it. Portuguese comes first because that is what Brazilian statements
// carry; accented and plain spellings are both listed since header cells
// arrive with inconsistent encodings.
var ledgerKeywords = map[models.Role][]string{
	models.RoleDate:         {"data", "dt", "date", "movimento"},
	models.RoleAmount:       {"valor", "value", "amount", "débito", "debito", "crédito", "credito", "saldo"},
	models.RoleDescription:  {"descri", "histórico", "historico", "memo", "lançamento", "lancamento", "discriminação", "discriminacao"},
	models.RoleCounterparty: {"entidade", "cliente", "nome", "favorecido"},
	models.RoleCategory:     {"categoria", "classifica"},
	models.RoleAccount:      {"conta", "banco", "origem"},
}

// ledgerRoleOrder fixes the resolution order so overlapping keywords behave
// deterministically.
var ledgerRoleOrder = []models.Role{
	models.RoleDate,
	models.RoleAmount,
	models.RoleDescription,
	models.RoleCounterparty,
	models.RoleCategory,
	models.RoleAccount,
}

var contactKeywords = map[models.Role][]string{
	models.RoleName:     {"nome", "name", "cliente", "razão", "razao"},
	models.RoleDocument: {"documento", "cpf", "cnpj", "doc"},
	models.RoleEmail:    {"email", "e-mail"},
	models.RolePhone:    {"telefone", "fone", "celular", "phone", "whatsapp"},
	models.RoleNotes:    {"observa", "obs", "nota", "notes"},
	models.RoleDate:     {"data", "cadastro", "date"},
}

var contactRoleOrder = []models.Role{
	models.RoleName,
	models.RoleDocument,
	models.RoleEmail,
	models.RolePhone,
	models.RoleNotes,
	models.RoleDate,
}

// InferRoles resolves the semantic role of each column of a ledger grid.
// Guarantees on non-empty grids: date and amount are always resolved (column
// zero and the last column serve as fallbacks); description falls back to
// the unassigned column with the longest mean text; counterparty, category
// and account stay unresolved when no keyword matches and are defaulted
// downstream, never guessed positionally.
//
// Known weakness, kept deliberately: statements with separate débito,
// crédito and saldo columns resolve amount to the first keyword hit, which
// may be a running-balance column rather than the transaction amount.
func InferRoles(headers []string, sampleRows [][]string) models.RoleMap {
	roleMap := inferByKeyword(headers, ledgerKeywords, ledgerRoleOrder)

	if len(headers) == 0 {
		return roleMap
	}

	if _, ok := roleMap[models.RoleDate]; !ok {
		roleMap[models.RoleDate] = 0
	}
	if _, ok := roleMap[models.RoleAmount]; !ok {
		roleMap[models.RoleAmount] = len(headers) - 1
	}
	if _, ok := roleMap[models.RoleDescription]; !ok {
		if col, ok := longestTextColumn(len(headers), sampleRows, assignedColumns(roleMap)); ok {
			roleMap[models.RoleDescription] = col
		}
	}

	return roleMap
}

// InferContactRoles resolves the column roles of a contacts grid. Only the
// name role has a positional fallback (column zero); the rest stay absent
// when no keyword matches.
func InferContactRoles(headers []string) models.RoleMap {
	roleMap := inferByKeyword(headers, contactKeywords, contactRoleOrder)
	if len(headers) > 0 {
		if _, ok := roleMap[models.RoleName]; !ok {
			roleMap[models.RoleName] = 0
		}
	}
	return roleMap
}

// inferByKeyword resolves each role to the first column whose lower-cased
// header contains one of the role's keywords. Header scan order is column
// order, so the leftmost match wins.
func inferByKeyword(headers []string, keywords map[models.Role][]string, order []models.Role) models.RoleMap {
	lowered := make([]string, len(headers))
	for i, h := range headers {
		lowered[i] = strings.ToLower(strings.TrimSpace(h))
	}

	roleMap := make(models.RoleMap, len(order))
	for _, role := range order {
		for col, header := range lowered {
			if header == "" {
				continue
			}
			if containsAny(header, keywords[role]) {
				roleMap[role] = col
				break
			}
		}
	}
	return roleMap
}

func containsAny(header string, fragments []string) bool {
	for _, f := range fragments {
		if strings.Contains(header, f) {
			return true
		}
	}
	return false
}

func assignedColumns(roleMap models.RoleMap) map[int]bool {
	assigned := make(map[int]bool, len(roleMap))
	for _, col := range roleMap {
		assigned[col] = true
	}
	return assigned
}

// longestTextColumn picks, among unassigned columns, the one with the
// greatest mean cell length over the sample rows. Free-text narrative
// fields are reliably longer than codes, dates or amounts. Ties break to
// the first occurrence.
func longestTextColumn(width int, sampleRows [][]string, assigned map[int]bool) (int, bool) {
	best := -1
	bestMean := -1.0
	for col := 0; col < width; col++ {
		if assigned[col] {
			continue
		}
		total := 0
		for _, row := range sampleRows {
			if col < len(row) {
				total += len(strings.TrimSpace(row[col]))
			}
		}
		mean := 0.0
		if len(sampleRows) > 0 {
			mean = float64(total) / float64(len(sampleRows))
		}
		if mean > bestMean {
			bestMean = mean
			best = col
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}
