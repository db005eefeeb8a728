package usecase

import (
	"regexp"
	"sort"
	"strings"

	"splitledger/internal/domain"
)

// patternRule binds one compiled regex to the tag it fires.
type patternRule struct {
	tag domain.PatternTag
	re  *regexp.Regexp
}

// PatternClassifier tags free-text descriptions with semantic labels. Rules
// run over lowercased, whitespace-collapsed text; several may fire for one
// transaction. Conflict precedence is the tag's own explicit priority, not
// the rule declaration order, so adding rules cannot silently reorder it.
type PatternClassifier struct {
	rules []patternRule
}

// NewPatternClassifier compiles the built-in rule set.
func NewPatternClassifier() *PatternClassifier {
	return &PatternClassifier{rules: []patternRule{
		{domain.TagFullAllocation, regexp.MustCompile(`100\s*%|\bfull(y)?\s+(mine|allocated)\b|\bnot\s+shared\b`)},
		{domain.TagMultiplier2x, regexp.MustCompile(`\b2x\b|\bx2\b|\bdouble\s+(count|charge|this)\b`)},
		{domain.TagGiftOrPresent, regexp.MustCompile(`\bgift\b|\bpresent\b|\bb(irth)?day\b|\banniversary\b`)},
		{domain.TagFreeForPerson, regexp.MustCompile(`\bfree\s+for\s+\w+`)},
		{domain.TagSettlementTransfer, regexp.MustCompile(`\bsettle(ment|\s?up)?\b|\bvenmo\b|\bzelle\b|\be-?transfer\b|\brepay(ment)?\b|\bpay\s?back\b`)},
		{domain.TagCashback, regexp.MustCompile(`\bcash\s?back\b|\breward(s)?\s+(credit|redemption)\b`)},
		{domain.TagRent, regexp.MustCompile(`\brent\b|\blandlord\b`)},
	}}
}

// Classify returns every tag whose rule matches the description. An empty
// set tells the allocation engine to apply the default rule.
func (c *PatternClassifier) Classify(description string) domain.TagSet {
	text := lowerTrim(collapseSpace(description))
	tags := make(domain.TagSet)
	for _, rule := range c.rules {
		if rule.re.MatchString(text) {
			tags[rule.tag] = true
		}
	}
	return tags
}

// CleanDescriptions canonicalizes merchant names in place: the first lookup
// key found as a substring of the lowercased description replaces it. The
// cleaned text is what Classify sees; identity hashes are computed before
// cleaning, so dedup is unaffected.
func CleanDescriptions(ledger domain.CanonicalLedger, lookup domain.MerchantLookup) {
	if len(lookup) == 0 {
		return
	}
	// Longer keys first so "sq *blue bottle" beats "blue".
	keys := make([]string, 0, len(lookup))
	for k := range lookup {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	for i := range ledger {
		lowered := strings.ToLower(ledger[i].Description)
		for _, key := range keys {
			if strings.Contains(lowered, key) {
				ledger[i].Description = lookup[key]
				break
			}
		}
	}
}
