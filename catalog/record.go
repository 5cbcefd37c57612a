// Package catalog defines the medicine record model shared by the branded
// and generic catalogs.
package catalog

import "fmt"

// Kind identifies one of the two parallel catalogs. They share the same
// record shape and differ only in which commercial name is the unique key.
type Kind string

const (
	Branded Kind = "branded"
	Generic Kind = "generic"
)

// ParseKind validates a catalog name from user input.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Branded:
		return Branded, nil
	case Generic:
		return Generic, nil
	}
	return "", fmt.Errorf("unknown catalog %q, expected %q or %q", s, Branded, Generic)
}

// Other returns the counterpart catalog kind.
func (k Kind) Other() Kind {
	if k == Branded {
		return Generic
	}
	return Branded
}

// Form is the dosage-form category derived from a product name.
type Form string

const (
	FormTablet    Form = "TABLET"
	FormCapsule   Form = "CAPSULE"
	FormInjection Form = "INJECTION"
	FormSyrup     Form = "SYRUP"
	FormTopical   Form = "TOPICAL"
	FormDrops     Form = "DROPS"
	FormPowder    Form = "POWDER"
	FormInhaler   Form = "INHALER"
	FormOther     Form = "OTHER"
)

// Record is one medicine in a catalog. Name is the upsert key and is matched
// case-insensitively while keeping its original casing. Salt, Contents and
// Form are derived from the ingested row and recomputing them from the same
// input always yields the same value. Pointer fields are nil when the source
// cell was absent, empty or unparseable.
type Record struct {
	Name        string   `json:"name"`
	Salt        string   `json:"salt,omitempty"`
	Contents    string   `json:"contents,omitempty"`
	Form        Form     `json:"type,omitempty"`
	Packing     string   `json:"packing,omitempty"`
	Ptr         *float64 `json:"ptr"`
	Mrp         *float64 `json:"mrp"`
	ShipperSize *int     `json:"shipper_size,omitempty"`
}
