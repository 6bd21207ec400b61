package symdef

import "fmt"

// Type is the tag of a built-in definition. Extension definitions carry
// TypeUnknown and are found by name only.
type Type int

const (
	TypeUnknown Type = iota
	TypeBinary
	TypeComponent
	TypeCustomAction
	TypeDirectory
	TypeFeature
	TypeFile
	TypeIcon
	TypeMedia
	TypeProperty
	TypeRegistry
	TypeShortcut
	TypeUpgrade
	TypeWixAction
	TypeWixComponentGroup
	TypeWixFeatureGroup
	TypeWixModule
	TypeWixVariable
	TypeWixPatchFamily
	TypeWixPatchID
	TypeWixBundle
	TypeWixBundleContainer
	TypeWixBundlePackage
	TypeWixBundlePayload
	TypeWixBundleVariable
	TypeWixSearch
	TypeWixFileSearch
	TypeWixRegistrySearch
	TypeWixComponentSearch
	TypeWixProductSearch

	typeCount
)

var typeNames = [...]string{
	TypeUnknown:            "Unknown",
	TypeBinary:             "Binary",
	TypeComponent:          "Component",
	TypeCustomAction:       "CustomAction",
	TypeDirectory:          "Directory",
	TypeFeature:            "Feature",
	TypeFile:               "File",
	TypeIcon:               "Icon",
	TypeMedia:              "Media",
	TypeProperty:           "Property",
	TypeRegistry:           "Registry",
	TypeShortcut:           "Shortcut",
	TypeUpgrade:            "Upgrade",
	TypeWixAction:          "WixAction",
	TypeWixComponentGroup:  "WixComponentGroup",
	TypeWixFeatureGroup:    "WixFeatureGroup",
	TypeWixModule:          "WixModule",
	TypeWixVariable:        "WixVariable",
	TypeWixPatchFamily:     "WixPatchFamily",
	TypeWixPatchID:         "WixPatchId",
	TypeWixBundle:          "WixBundle",
	TypeWixBundleContainer: "WixBundleContainer",
	TypeWixBundlePackage:   "WixBundlePackage",
	TypeWixBundlePayload:   "WixBundlePayload",
	TypeWixBundleVariable:  "WixBundleVariable",
	TypeWixSearch:          "WixSearch",
	TypeWixFileSearch:      "WixFileSearch",
	TypeWixRegistrySearch:  "WixRegistrySearch",
	TypeWixComponentSearch: "WixComponentSearch",
	TypeWixProductSearch:   "WixProductSearch",
}

// String returns the table name of the built-in definition.
func (t Type) String() string {
	if t < 0 || t >= typeCount {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}
