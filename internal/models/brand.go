package models

import "fmt"

// Brand identifies the business line a product is sold under.
type Brand string

const (
	BrandGHDWoodhead        Brand = "GHDWoodhead"
	BrandGHDDigital         Brand = "GHDDigital"
	BrandGHDAdvisory        Brand = "GHDAdvisory"
	BrandESolutionsGroup    Brand = "eSolutionsGroup"
	BrandMovementStrategies Brand = "MovementStrategies"
	BrandOlssonFireAndRisk  Brand = "OlssonFireAndRisk"
)

// Brands lists every valid brand identifier.
var Brands = []Brand{
	BrandGHDWoodhead,
	BrandGHDDigital,
	BrandGHDAdvisory,
	BrandESolutionsGroup,
	BrandMovementStrategies,
	BrandOlssonFireAndRisk,
}

// ParseBrand converts stored brand text into its Brand value.
func ParseBrand(s string) (Brand, error) {
	b := Brand(s)
	if !b.Valid() {
		return "", fmt.Errorf("unknown brand %q", s)
	}
	return b, nil
}

// Valid reports whether b is a member of the brand enumeration.
func (b Brand) Valid() bool {
	for _, known := range Brands {
		if b == known {
			return true
		}
	}
	return false
}

func (b Brand) String() string {
	return string(b)
}
