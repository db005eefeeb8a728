package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"splitledger/internal/domain"
)

func TestPatternClassifier_Classify(t *testing.T) {
	classifier := NewPatternClassifier()

	tests := []struct {
		name        string
		description string
		want        []domain.PatternTag
	}{
		{
			name:        "no match yields the empty set",
			description: "Grocery Store",
			want:        nil,
		},
		{
			name:        "gift keywords",
			description: "Birthday present for Blake",
			want:        []domain.PatternTag{domain.TagGiftOrPresent},
		},
		{
			name:        "full allocation keywords",
			description: "new headphones 100% mine",
			want:        []domain.PatternTag{domain.TagFullAllocation},
		},
		{
			name:        "multiplier keyword",
			description: "dinner 2x owed",
			want:        []domain.PatternTag{domain.TagMultiplier2x},
		},
		{
			name:        "settlement keywords",
			description: "Venmo payment to settle up",
			want:        []domain.PatternTag{domain.TagSettlementTransfer},
		},
		{
			name:        "free-for keyword",
			description: "lunch free for avery",
			want:        []domain.PatternTag{domain.TagFreeForPerson},
		},
		{
			name:        "cashback keyword",
			description: "credit card cash back",
			want:        []domain.PatternTag{domain.TagCashback},
		},
		{
			name:        "rent keyword",
			description: "June rent to landlord",
			want:        []domain.PatternTag{domain.TagRent},
		},
		{
			name:        "case and whitespace are normalized before matching",
			description: "  BIRTHDAY   GIFT  ",
			want:        []domain.PatternTag{domain.TagGiftOrPresent},
		},
		{
			name:        "multiple rules may fire for one description",
			description: "gift card payback via zelle",
			want:        []domain.PatternTag{domain.TagGiftOrPresent, domain.TagSettlementTransfer},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Classify(tt.description)
			assert.Len(t, got, len(tt.want))
			for _, tag := range tt.want {
				assert.True(t, got.Has(tag), "expected tag %s", tag)
			}
		})
	}
}

func TestDominantTag_ExplicitPrecedence(t *testing.T) {
	// full allocation > multiplier > gift/free-for > settlement > cashback > rent
	tags := domain.TagSet{
		domain.TagSettlementTransfer: true,
		domain.TagGiftOrPresent:      true,
	}
	assert.Equal(t, domain.TagGiftOrPresent, dominantTag(tags))

	tags[domain.TagFullAllocation] = true
	assert.Equal(t, domain.TagFullAllocation, dominantTag(tags))

	assert.Equal(t, domain.PatternTag(""), dominantTag(domain.TagSet{}))
}

func TestCleanDescriptions(t *testing.T) {
	ledger := domain.CanonicalLedger{
		{Description: "SQ *BLUE BOTTLE 4421 OAKLAND"},
		{Description: "Unknown Vendor LLC"},
	}
	lookup := domain.MerchantLookup{
		"sq *blue bottle": "Blue Bottle Coffee",
		"blue":            "Wrong Match",
	}

	CleanDescriptions(ledger, lookup)

	// The longer key wins over its substring.
	assert.Equal(t, "Blue Bottle Coffee", ledger[0].Description)
	assert.Equal(t, "Unknown Vendor LLC", ledger[1].Description)
}
