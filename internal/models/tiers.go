package models

// PricingTier is one entry in the price ladder. Index 0 is the most
// expensive tier; escalation after rejections only moves to cheaper
// tiers, never back.
type PricingTier struct {
	Index     int     `json:"index"`
	Price     float64 `json:"price"`
	ProductID string  `json:"productId"`
	Display   string  `json:"display"`
}

// TierTable is the platform tier ladder. Price is an informational
// fallback; rendering should prefer the platform store's localized
// price string.
var TierTable = []PricingTier{
	{Index: 0, Price: 9.99, ProductID: "premium_full", Display: "$9.99"},
	{Index: 1, Price: 5.99, ProductID: "premium_offer", Display: "$5.99"},
	{Index: 2, Price: 2.99, ProductID: "premium_discount", Display: "$2.99"},
}

func TopTier() PricingTier    { return TierTable[0] }
func MidTier() PricingTier    { return TierTable[1] }
func BottomTier() PricingTier { return TierTable[2] }

// TierForPrice resolves the ladder entry matching a price. Unknown
// prices fall back to the bottom tier.
func TierForPrice(price float64) PricingTier {
	for _, t := range TierTable {
		if t.Price == price {
			return t
		}
	}
	return BottomTier()
}
