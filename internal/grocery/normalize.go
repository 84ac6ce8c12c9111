package grocery

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName returns the aggregation key for an ingredient name.
// "  Brown   SUGAR " -> "brown sugar".
// "ﬂour" (ligature) -> "flour".
func NormalizeName(name string) string {
	// Compatibility composition folds ligatures and full-width forms.
	s := norm.NFKC.String(name)

	// Casers are stateful; build one per call.
	s = cases.Fold().String(s)

	return strings.Join(strings.Fields(s), " ")
}
