// Package pipeline turns one page of extracted text into one output row,
// resolving each configured field through its user pattern or the matching
// template heuristic.
package pipeline

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/jmendezr85/pdf-extractor-excel/internal/extract"
	"github.com/jmendezr85/pdf-extractor-excel/internal/rules"
)

// PageColumnName is the synthetic column holding the 1-based source page.
const PageColumnName = "Página PDF"

// Row is one page's extracted values. Column order is creation order; a
// duplicate field name overwrites the value but keeps the original column
// position (last write wins, documented sharp edge).
type Row struct {
	Columns []string
	Values  map[string]string
}

// NewRow returns an empty row.
func NewRow() Row {
	return Row{Values: make(map[string]string)}
}

// Set stores a value, registering the column on first sight.
func (r *Row) Set(name, value string) {
	if _, seen := r.Values[name]; !seen {
		r.Columns = append(r.Columns, name)
	}
	r.Values[name] = value
}

// Get returns the value for a column, or "" when absent.
func (r Row) Get(name string) string {
	return r.Values[name]
}

type compiledRule struct {
	name   string
	re     *regexp.Regexp // nil when the rule has no user pattern
	hasGrp bool
	kind   extract.FieldKind
}

// Processor applies a fixed, ordered rule set to page text. It is immutable
// after construction and safe to reuse across pages and runs.
type Processor struct {
	rules          []compiledRule
	useHeuristics  bool
	includePageCol bool
}

// NewProcessor compiles the active rules once for a whole run. User patterns
// are compiled case-insensitive with dot matching newlines; any pattern that
// fails to compile aborts setup so no pages are processed against a partial
// configuration. Rules without a name are skipped entirely.
func NewProcessor(fieldRules []rules.FieldRule, useHeuristics, includePageColumn bool) (*Processor, error) {
	compiled := make([]compiledRule, 0, len(fieldRules))
	for _, fr := range fieldRules {
		if !fr.Active() {
			continue
		}
		cr := compiledRule{name: fr.Name, kind: extract.ClassifyFieldName(fr.Name)}
		if fr.Pattern != "" {
			re, err := regexp.Compile("(?is)" + fr.Pattern)
			if err != nil {
				return nil, fmt.Errorf("regex inválida para '%s': %w", fr.Name, err)
			}
			cr.re = re
			cr.hasGrp = re.NumSubexp() > 0
		}
		compiled = append(compiled, cr)
	}
	return &Processor{
		rules:          compiled,
		useHeuristics:  useHeuristics,
		includePageCol: includePageColumn,
	}, nil
}

// FieldCount returns the number of active rules.
func (p *Processor) FieldCount() int {
	return len(p.rules)
}

// ProcessPage resolves every rule against one page's text and assembles the
// row. A user pattern always wins over the heuristic for the same field; a
// field that matches nothing resolves to "" and never aborts the row.
func (p *Processor) ProcessPage(text string, pageNum int) Row {
	row := NewRow()
	for _, cr := range p.rules {
		row.Set(cr.name, p.resolve(cr, text))
	}
	if p.includePageCol {
		row.Set(PageColumnName, strconv.Itoa(pageNum))
	}
	return row
}

func (p *Processor) resolve(cr compiledRule, text string) string {
	if cr.re != nil {
		m := cr.re.FindStringSubmatch(text)
		if m == nil {
			return ""
		}
		if cr.hasGrp {
			return extract.NormalizeSpaces(m[1])
		}
		return extract.NormalizeSpaces(m[0])
	}
	if p.useHeuristics {
		return cr.kind.Apply(text)
	}
	return ""
}
