package enums

import "fmt"

// Preparation describes how a lot was processed at the station.
type Preparation string

const (
	PreparationWashed  Preparation = "washed"
	PreparationNatural Preparation = "natural"
)

var validPreparations = []Preparation{
	PreparationWashed,
	PreparationNatural,
}

// String implements fmt.Stringer.
func (p Preparation) String() string {
	return string(p)
}

// Label returns the capitalized form used in display names.
func (p Preparation) Label() string {
	switch p {
	case PreparationWashed:
		return "Washed"
	case PreparationNatural:
		return "Natural"
	}
	return string(p)
}

// IsValid reports whether the value is a known Preparation.
func (p Preparation) IsValid() bool {
	for _, candidate := range validPreparations {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePreparation converts raw input into a Preparation.
func ParsePreparation(value string) (Preparation, error) {
	for _, candidate := range validPreparations {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid preparation %q", value)
}
