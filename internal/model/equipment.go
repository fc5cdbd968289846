// Package model defines the core domain models used throughout the application.
package model

import "strings"

// Equipment represents a catalog entry: immutable reference data, not user-owned.
type Equipment struct {
	Name     string
	Category string
}

// UnknownEquipment is the name the normalizer assigns to rows it cannot
// match against the catalog. Rows carrying it are dropped after import.
const UnknownEquipment = "Unknown Equipment"

// catalog is the ground-truth equipment list handed to the external
// normalizer for fuzzy matching.
var catalog = []Equipment{
	{Name: "Large Hydraulic Excavator", Category: "Earthmoving"},
	{Name: "Bulldozer", Category: "Earthmoving"},
	{Name: "Backhoe Loader", Category: "Earthmoving"},
	{Name: "Skid Steer Loader", Category: "Earthmoving"},
	{Name: "Wheel Loader", Category: "Earthmoving"},
	{Name: "Motor Grader", Category: "Earthmoving"},
	{Name: "Articulated Dump Truck", Category: "Hauling"},
	{Name: "Water Truck", Category: "Hauling"},
	{Name: "Telehandler", Category: "Lifting & Access"},
	{Name: "Mobile Crane (120t)", Category: "Lifting & Access"},
	{Name: "Scissor Lift", Category: "Lifting & Access"},
	{Name: "Manlift", Category: "Lifting & Access"},
	{Name: "Light Tower", Category: "Power & Light"},
	{Name: "Generator (100 KVA)", Category: "Power & Light"},
	{Name: "Generator (500 KVA)", Category: "Power & Light"},
	{Name: "Smooth Drum Compactor", Category: "Compaction & Paving"},
	{Name: "Asphalt Paver", Category: "Compaction & Paving"},
	{Name: "Air Compressor", Category: "Support"},
	{Name: "Water Pump", Category: "Support"},
	{Name: "Welding Machine", Category: "Support"},
}

// Catalog returns a copy of the static equipment catalog.
func Catalog() []Equipment {
	out := make([]Equipment, len(catalog))
	copy(out, catalog)
	return out
}

// FindEquipment looks up a catalog entry by exact name, case-insensitively.
// Fuzzy matching against free text is the normalizer's job, not ours.
func FindEquipment(name string) (Equipment, bool) {
	for _, eq := range catalog {
		if strings.EqualFold(eq.Name, name) {
			return eq, true
		}
	}
	return Equipment{}, false
}
