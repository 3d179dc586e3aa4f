package pipeline

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"go-sheet-dashboard/internal/config"
	"go-sheet-dashboard/internal/model"
)

// defaultSiteAliases folds the spelling and encoding variants seen in the
// sheet onto one canonical site name.
var defaultSiteAliases = map[string]string{
	"MARABA":   "MARABÁ",
	"MARABÃ":   "MARABÁ",
	"CANAA":    "CANAÃ",
	"CANAÃ":    "CANAÃ",
	"JACUNDA":  "JACUNDÁ",
	"JACUNDÃ":  "JACUNDÁ",
	"TUCURUI":  "TUCURUÍ",
	"TUCURUÃ":  "TUCURUÍ",
	"REDENÃÃO": "REDENÇÃO",
	"REDENCAO": "REDENÇÃO",
	"REDEÃÃO":  "REDENÇÃO",
}

// Normalizer turns raw rows into canonical records.
// It holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	columns config.ColumnsConfig
	window  config.YearWindow
	aliases map[string]string
	loc     *time.Location
}

// NewNormalizer builds a normalizer. Configured aliases are merged over the
// built-in table; keys and values go through the same folding as site values.
func NewNormalizer(cfg config.NormalizeConfig, columns config.ColumnsConfig) *Normalizer {
	aliases := make(map[string]string, len(defaultSiteAliases)+len(cfg.SiteAliases))
	for k, v := range defaultSiteAliases {
		aliases[foldSite(k)] = foldSite(v)
	}
	for k, v := range cfg.SiteAliases {
		aliases[foldSite(k)] = foldSite(v)
	}

	return &Normalizer{
		columns: columns,
		window:  cfg.YearWindow,
		aliases: aliases,
		loc:     cfg.Location(),
	}
}

// Location is the zone service dates are interpreted in.
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// Normalize derives the canonical record for raw. The returned error is one
// of the invalid-record sentinels when the row must be dropped; the record is
// still returned so callers can inspect it.
func (n *Normalizer) Normalize(raw model.RawRecord) (model.CanonicalRecord, error) {
	rec := model.CanonicalRecord{
		Fields:  raw,
		Site:    n.CanonicalSite(raw[n.columns.Site]),
		Team:    CanonicalTeam(raw[n.columns.Team]),
		Closure: strings.TrimSpace(raw[n.columns.Closure]),
	}
	if n.columns.ServiceType != "" {
		rec.ServiceType = model.CanonicalServiceType(raw[n.columns.ServiceType])
	}

	if d, ok := ParseServiceDate(raw[n.columns.Date], n.loc); ok {
		rec.ServiceDate = &d
		rec.Year = d.Year()
		rec.Month = int(d.Month())
	}

	return rec, validateRecord(rec, n.window)
}

// CanonicalSite trims, upper-cases and folds a site through the alias table.
// Unknown sites pass through in folded form.
func (n *Normalizer) CanonicalSite(v string) string {
	site := foldSite(v)
	if canonical, ok := n.aliases[site]; ok {
		return canonical
	}
	return site
}

func foldSite(v string) string {
	return strings.ToUpper(norm.NFC.String(strings.TrimSpace(v)))
}

// CanonicalTeam upper-cases a team code and removes every whitespace character.
func CanonicalTeam(v string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, v)
}

// ParseServiceDate parses a D/M/Y date at midnight in loc. Strings that do not
// have exactly three numeric parts, or that name a day the calendar does not
// have (31/02/2024), report false.
func ParseServiceDate(s string, loc *time.Location) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	var nums [3]int
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || strings.IndexFunc(p, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
			return time.Time{}, false
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, false
		}
		nums[i] = v
	}

	day, month, year := nums[0], nums[1], nums[2]
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}

	if loc == nil {
		loc = time.Local
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}

	return t, true
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldHeader reduces a header name to a comparison key that ignores case,
// accents, quotes and whitespace, so "Data do Servico" matches "DATA DO SERVIÇO".
func foldHeader(h string) string {
	s, _, err := transform.String(stripMarks, h)
	if err != nil {
		s = h
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '"' || r == '_' {
			return -1
		}
		return unicode.ToUpper(r)
	}, s)
}

// Columns returns the column names this normalizer reads.
func (n *Normalizer) Columns() config.ColumnsConfig {
	return n.columns
}
