package format

import "strings"

// Pattern describes one country's local phone numbering plan: a dialing
// prefix, the expected digit count, and how digits are grouped in the
// rendered number.
type Pattern struct {
	Prefix string
	Digits int
	Groups []int
}

var patterns = map[string]Pattern{
	"SG": {Prefix: "+65", Digits: 8, Groups: []int{4, 4}},
}

// PatternFor looks up the phone pattern for an ISO country code.
func PatternFor(country string) (Pattern, bool) {
	p, ok := patterns[strings.ToUpper(country)]
	return p, ok
}

// Format renders a local number as e.g. "+65-6123-4567". Anything that
// is not exactly the expected digit count after stripping spaces,
// including an absent number, renders as the literal "None".
func (p Pattern) Format(number string) string {
	cleaned := strings.ReplaceAll(number, " ", "")
	if len(cleaned) != p.Digits || !allDigits(cleaned) {
		return "None"
	}
	parts := make([]string, 0, len(p.Groups)+1)
	parts = append(parts, p.Prefix)
	i := 0
	for _, g := range p.Groups {
		parts = append(parts, cleaned[i:i+g])
		i += g
	}
	return strings.Join(parts, "-")
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
