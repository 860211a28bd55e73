package affiliate

import "strings"

// marketplaceTLD maps marketplace country codes to Amazon top-level
// domains. Unrecognized marketplaces fall back to the French storefront.
var marketplaceTLD = map[string]string{
	"FR": "fr",
	"DE": "de",
	"ES": "es",
	"IT": "it",
	"GB": "co.uk",
	"US": "com",
}

const defaultTLD = "fr"

// TLDFor resolves a marketplace code (any case) to a storefront TLD.
func TLDFor(marketplace string) string {
	if tld, ok := marketplaceTLD[strings.ToUpper(marketplace)]; ok {
		return tld
	}
	return defaultTLD
}
