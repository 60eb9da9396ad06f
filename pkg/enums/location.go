package enums

import "fmt"

// Location identifies one of the fixed delivery/stock points.
type Location string

const (
	LocationAddisAbaba Location = "addis_ababa"
	LocationTrieste    Location = "trieste"
	LocationGenoa      Location = "genoa"
)

var validLocations = []Location{
	LocationAddisAbaba,
	LocationTrieste,
	LocationGenoa,
}

// locationLabels maps each stock point to its human-readable form used in
// emails and portal views.
var locationLabels = map[Location]string{
	LocationAddisAbaba: "Addis Ababa, Ethiopia",
	LocationTrieste:    "Trieste, Italy",
	LocationGenoa:      "Genoa, Italy",
}

// String implements fmt.Stringer.
func (l Location) String() string {
	return string(l)
}

// IsValid reports whether the value is a known Location.
func (l Location) IsValid() bool {
	for _, candidate := range validLocations {
		if candidate == l {
			return true
		}
	}
	return false
}

// Label returns the display label for the location, falling back to the raw
// value for unknown inputs.
func (l Location) Label() string {
	if label, ok := locationLabels[l]; ok {
		return label
	}
	return string(l)
}

// ParseLocation converts raw input into a Location.
func ParseLocation(value string) (Location, error) {
	for _, candidate := range validLocations {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid location %q", value)
}

// Availability captures stock state of a coffee at a given location.
type Availability string

const (
	AvailabilityInStock     Availability = "in_stock"
	AvailabilityPreShipment Availability = "pre_shipment"
	AvailabilityOutOfStock  Availability = "out_of_stock"
)

var validAvailabilities = []Availability{
	AvailabilityInStock,
	AvailabilityPreShipment,
	AvailabilityOutOfStock,
}

// String implements fmt.Stringer.
func (a Availability) String() string {
	return string(a)
}

// IsValid reports whether the value is a known Availability.
func (a Availability) IsValid() bool {
	for _, candidate := range validAvailabilities {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAvailability converts raw input into an Availability.
func ParseAvailability(value string) (Availability, error) {
	for _, candidate := range validAvailabilities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid availability %q", value)
}
