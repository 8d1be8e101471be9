package enums

import "fmt"

// BuildingType classifies which properties a rebate program applies to.
type BuildingType string

const (
	BuildingTypeResidential BuildingType = "Residential"
	BuildingTypeCommercial  BuildingType = "Commercial"
)

var validBuildingTypes = []BuildingType{
	BuildingTypeResidential,
	BuildingTypeCommercial,
}

func (b BuildingType) String() string {
	return string(b)
}

func (b BuildingType) IsValid() bool {
	for _, candidate := range validBuildingTypes {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBuildingType converts raw input into a BuildingType.
func ParseBuildingType(value string) (BuildingType, error) {
	for _, candidate := range validBuildingTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid building type %q", value)
}
