// Package schedules loads tax schedules from HCL or JSON files.
package schedules

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"

	"tax-dashboard/core/tax"
	"tax-dashboard/internal/errors"
)

// DefaultCurrency is used when a schedule block names none
const DefaultCurrency = "AUD"

type fileSpec struct {
	Schedules []scheduleSpec `hcl:"schedule,block"`
}

type scheduleSpec struct {
	Name        string        `hcl:"name,label"`
	Description string        `hcl:"description,optional"`
	Currency    string        `hcl:"currency,optional"`
	Brackets    []bracketSpec `hcl:"bracket,block"`
}

type bracketSpec struct {
	UpTo *float64 `hcl:"up_to,optional"`
	Rate float64  `hcl:"rate"`
}

// Loader parses schedule files
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new schedule loader
func NewLoader() *Loader {
	return &Loader{
		parser: hclparse.NewParser(),
	}
}

// Load reads schedules from a file. Files ending in .json use HCL's JSON
// syntax, everything else the native syntax.
func (l *Loader) Load(path string) ([]tax.Schedule, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("schedule file", path)
		}
		return nil, errors.Config("failed to read schedule file", err)
	}
	return l.Parse(src, path)
}

// Parse decodes schedules from source; filename selects the syntax and names diagnostics.
func (l *Loader) Parse(src []byte, filename string) ([]tax.Schedule, error) {
	var (
		file  *hcl.File
		diags hcl.Diagnostics
	)
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		file, diags = l.parser.ParseJSON(src, filename)
	} else {
		file, diags = l.parser.ParseHCL(src, filename)
	}
	if diags.HasErrors() {
		return nil, errors.Parsing("failed to parse "+filename, diags)
	}

	var decoded fileSpec
	if diags := gohcl.DecodeBody(file.Body, nil, &decoded); diags.HasErrors() {
		return nil, errors.Parsing("failed to decode "+filename, diags)
	}

	if len(decoded.Schedules) == 0 {
		return nil, errors.InvalidInputf("%s declares no schedules", filename)
	}

	out := make([]tax.Schedule, 0, len(decoded.Schedules))
	seen := make(map[string]bool, len(decoded.Schedules))
	for _, s := range decoded.Schedules {
		if seen[s.Name] {
			return nil, errors.InvalidInputf("schedule %q declared twice in %s", s.Name, filename)
		}
		seen[s.Name] = true

		schedule := s.toSchedule()
		if err := schedule.Validate(); err != nil {
			return nil, err
		}
		out = append(out, schedule)
	}
	return out, nil
}

func (s scheduleSpec) toSchedule() tax.Schedule {
	currency := strings.ToUpper(s.Currency)
	if currency == "" {
		currency = DefaultCurrency
	}

	table := make(tax.Table, len(s.Brackets))
	for i, b := range s.Brackets {
		table[i] = tax.Bracket{Rate: decimal.NewFromFloat(b.Rate)}
		if b.UpTo != nil {
			ceiling := decimal.NewFromFloat(*b.UpTo)
			table[i].UpTo = &ceiling
		}
	}

	return tax.Schedule{
		Name:        s.Name,
		Description: s.Description,
		Currency:    currency,
		Brackets:    table,
	}
}

// Load reads schedules from a file with a fresh loader
func Load(path string) ([]tax.Schedule, error) {
	return NewLoader().Load(path)
}
