package classifier

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"mribeiro/extrato-csv/internal/logging"
	"mribeiro/extrato-csv/internal/models"
)

// KeywordRule assigns a category to descriptions containing any of its
// keywords.
type KeywordRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

type keywordRulesFile struct {
	Categories []KeywordRule `yaml:"categories"`
}

// LoadKeywordRules reads local categorization rules from a YAML file, e.g.:
//
//	categories:
//	  - name: Alimentação
//	    keywords: [ifood, restaurante, padaria]
func LoadKeywordRules(path string) ([]KeywordRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read keyword rules file: %w", err)
	}

	var f keywordRulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("could not parse keyword rules file '%s': %w", path, err)
	}
	return f.Categories, nil
}

// ApplyKeywordRules runs the local keyword rules over the batch before any
// external call, so descriptions the rules already cover don't consume
// quota. Only records still carrying the generic default category are
// touched. Returns the number of records categorized.
func ApplyKeywordRules(batch *models.ImportBatch, rules []KeywordRule) int {
	if batch == nil || len(rules) == 0 {
		return 0
	}

	applied := 0
	for i := range batch.Records {
		rec := &batch.Records[i]
		if rec.Category != models.DefaultCategory && rec.Category != "" {
			continue
		}
		text := strings.ToLower(rec.Description + " " + rec.Counterparty)
		for _, rule := range rules {
			if matchesRule(text, rule) {
				rec.Category = rule.Name
				applied++
				break
			}
		}
	}

	if applied > 0 {
		log.Debug("Local keyword rules applied",
			logging.Field{Key: logging.FieldCount, Value: applied})
	}
	return applied
}

func matchesRule(text string, rule KeywordRule) bool {
	for _, kw := range rule.Keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
