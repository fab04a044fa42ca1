package service

import "strings"

// maxAdverseActionReasons bounds the list per the regulatory "top reasons"
// convention.
const maxAdverseActionReasons = 4

// adverseActionRules is an ordered priority table: the first matching
// substring wins. Unmatched reasons pass through verbatim.
var adverseActionRules = []struct {
	substring   string
	insensitive bool
	category    string
}{
	{substring: "DTI", category: "High debt-to-income ratio"},
	{substring: "Credit score", category: "Credit score below policy threshold"},
	{substring: "income", insensitive: true, category: "Insufficient income for requested credit"},
	{substring: "Employment", category: "Insufficient employment history"},
	{substring: "Loan amount", category: "Requested amount exceeds policy limits"},
}

// MapAdverseActionReasons translates raw rejection reasons into a bounded,
// de-duplicated, user-facing category list, preserving first-seen order.
func MapAdverseActionReasons(reasons []string) []string {
	seen := make(map[string]struct{}, len(reasons))
	out := make([]string, 0, maxAdverseActionReasons)

	for _, r := range reasons {
		mapped := canonicalReason(r)
		if _, dup := seen[mapped]; dup {
			continue
		}
		seen[mapped] = struct{}{}
		out = append(out, mapped)
		if len(out) == maxAdverseActionReasons {
			break
		}
	}
	return out
}

func canonicalReason(reason string) string {
	for _, rule := range adverseActionRules {
		if rule.insensitive {
			if strings.Contains(strings.ToLower(reason), strings.ToLower(rule.substring)) {
				return rule.category
			}
		} else if strings.Contains(reason, rule.substring) {
			return rule.category
		}
	}
	return reason
}
