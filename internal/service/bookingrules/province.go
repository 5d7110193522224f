package bookingrules

import (
	"fmt"
	"strings"
)

const (
	provinceQuebec  = "QC"
	provinceOntario = "ON"
)

var provinceAliases = map[string]string{
	"QC":      provinceQuebec,
	"QUEBEC":  provinceQuebec,
	"ON":      provinceOntario,
	"ONTARIO": provinceOntario,
}

// first letter of the postal code (forward sortation area) per province
var postalPrefixes = map[string]string{
	provinceQuebec:  "GHJ",
	provinceOntario: "KLMNP",
}

// ValidateProvinceRestriction accepts only Quebec and Ontario addresses whose
// postal code starts with a letter assigned to that province
func ValidateProvinceRestriction(province, postalCode string) error {
	code, ok := provinceAliases[strings.ToUpper(strings.TrimSpace(province))]
	if !ok {
		return fmt.Errorf("%w: %q, only Quebec (QC) and Ontario (ON) are served", ErrUnsupportedProvince, province)
	}

	postal := strings.ToUpper(strings.TrimSpace(postalCode))
	if postal == "" {
		return ErrMissingPostalCode
	}

	if !strings.ContainsRune(postalPrefixes[code], rune(postal[0])) {
		return fmt.Errorf("%w: postal code %s is not in %s (expected it to start with one of %s)",
			ErrPostalProvinceMismatch, postal, code, strings.Join(strings.Split(postalPrefixes[code], ""), ", "))
	}
	return nil
}
