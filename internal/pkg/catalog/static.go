package catalog

// staticProducts is the in-repo fallback registry. Entries here are served
// only when the CMS is unreachable or does not know the slug; keep prices in
// sync with the CMS product collection.
var staticProducts = map[string]Product{
	"legacy-blueprint": legacyBlueprint,
}

var legacyBlueprint = Product{
	ID: "legacy-blueprint",
	Theme: Theme{
		PrimaryColor:    "#000000",
		AccentColor:     "#D32F2F",
		BackgroundColor: "#FAFAFA",
		LogoURL:         "https://res.cloudinary.com/dse1cikja/image/upload/v1767295060/BLUEPRINTAsset_1_2x-8_vucxxa.png",
		LogoWidth:       "180px",
	},
	Checkout: Checkout{
		Headline:    "The Red Protocol: The 'First 48 Hours' Checklist Your Family Doesn't Have.",
		Subhead:     "Standard wills handle the money, but they fail to handle the chaos. This is the operational manual for when the silence settles.",
		ProductName: "The Legacy Blueprint (Red Protocol Edition)",
		Price:       3700,
		Image:       "/images/legacy-blueprint-cover.png",
		Features: []string{
			"The Red Protocol: Immediate 'Crisis Map' for the First 48 Hours",
			"The Digital Estate: Master Key System for Passwords & 2FA",
			"Hidden Asset Recovery: Cold Storage & Safe Deposit Locator",
			"The 'Do Not Sell' List: Heirloom protection protocol",
		},
		StripePriceID: "price_1SkpGiKWkFGAPPbCu0hwJqTT",
		FunnelType:    "digital_product",
		CTAText:       "Secure My Legacy ($37)",
	},
	Bump: &Bump{
		Headline:      "YES! Upgrade to the 'Digital Twin' & Data-Entry Suite (+$17)",
		Description:   "Don't handwrite 100+ pages. Get the Fillable PDF + Excel 'Data Vault' to finish in 20 mins. Auto-calculates net worth. Error-proof.",
		Price:         1700,
		StripePriceID: "price_1SkpHXKWkFGAPPbC9xuZ6PJK",
	},
	OTO: OTO{
		Headline:         "Wait! Your Order is Complete, But Your Mission Isn't.",
		VideoPlaceholder: "The Family Peace Protocol (Preview)",
		Price:            2700,
		RetailPrice:      9700,
		Features: []string{
			"The 'Roundtable' Script: Word-for-word family meeting guide",
			"The Video Legacy Guide: How to record your 'Ethical Will'",
			"The Psychology of Peace: Avoiding the 'Burden' trap",
		},
		StripePriceID: "price_1SkpIvKWkFGAPPbC4BNSXdFJ",
	},
}

// StaticProduct looks up the in-repo registry by slug.
func StaticProduct(slug string) (Product, bool) {
	p, ok := staticProducts[slug]
	return p, ok
}

// DefaultProduct is the last-resort fallback when a slug is unknown
// everywhere. A broken link still gets a working checkout page.
func DefaultProduct() Product {
	return legacyBlueprint
}
