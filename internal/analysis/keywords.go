package analysis

// illegalKeywords lists German substrings that identify charges a landlord
// may not pass on to tenants (§ 2 BetrKV). Matching is case-insensitive and
// the first match wins; the order is fixed and must not be sorted.
var illegalKeywords = []string{
	"bankgebühren",
	"bankgebuehren",
	"reparatur",
	"instandhaltung",
	"rechtsschutzversicherung",
	"maklergebühren",
	"maklergebuehren",
	"renovierung",
	"modernisierung",
	"kleinreparaturen",
	"bankkosten",
	"verwaltungskosten",
	"bewirtschaftungskosten",
	"kontoführungsgebühren",
	"kontofuehrungsgebuehren",
}

// IllegalKeywords returns a copy of the illegal-charge keyword list.
func IllegalKeywords() []string {
	out := make([]string, len(illegalKeywords))
	copy(out, illegalKeywords)
	return out
}
