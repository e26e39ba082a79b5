package erp

import (
	"strings"

	"github.com/gzmilgar/JumboOCR/internal/domain"
)

// addressSlots is the number of positional slots a free-text address
// decomposes into: name, street, street prefix, city.
const addressSlots = 4

// SplitAddress decomposes a free-text ship-to address into positional
// slots on comma separators. This is a best-effort heuristic, not a
// structured address parser: unfilled trailing slots stay empty except
// the city, which falls back to the deployment's default city.
func SplitAddress(address string) domain.PartnerAddress {
	slots := make([]string, addressSlots)

	parts := strings.Split(address, ",")
	for i := 0; i < addressSlots && i < len(parts); i++ {
		slots[i] = strings.TrimSpace(parts[i])
	}

	if slots[3] == "" {
		slots[3] = DefaultCity
	}

	return domain.PartnerAddress{
		OrganizationName: slots[0],
		StreetName:       slots[1],
		StreetPrefixName: slots[2],
		CityName:         slots[3],
	}
}
