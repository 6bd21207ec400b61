package symdef

import (
	"fmt"

	"github.com/specialistvlad/irlink/internal/field"
)

const (
	BinaryData = iota
)

const (
	ComponentComponentID = iota
	ComponentDirectoryRef
	ComponentCondition
	ComponentKeyPath
	ComponentKeyPathType
	ComponentLocation
	ComponentPermanent
	ComponentShared
	ComponentSharedDllRefCount
	ComponentTransitive
	ComponentNeverOverwrite
	ComponentWin64
)

const (
	CustomActionExecutionType = iota
	CustomActionSource
	CustomActionSourceType
	CustomActionTarget
	CustomActionHidden
	CustomActionImpersonate
	CustomActionPatchUninstall
	CustomActionTSAware
	CustomActionWin64
)

const (
	DirectoryParentDirectoryRef = iota
	DirectoryName
	DirectoryShortName
	DirectorySourceName
	DirectorySourceShortName
	DirectoryComponentGUIDGenerationSeed
)

const (
	FeatureParentFeatureRef = iota
	FeatureTitle
	FeatureDescription
	FeatureDisplay
	FeatureLevel
	FeatureDirectoryRef
	FeatureDisallowAbsent
	FeatureDisallowAdvertise
	FeatureInstallDefault
	FeatureTypicalDefault
)

const (
	FileComponentRef = iota
	FileName
	FileShortName
	FileFileSize
	FileVersion
	FileLanguage
	FileAttributes
	FileDirectoryRef
	FileDiskID
	FileSource
	FilePatchGroup
	FileSequence
)

const (
	IconData = iota
)

const (
	MediaLastSequence = iota
	MediaDiskPrompt
	MediaCabinet
	MediaVolumeLabel
	MediaSource
	MediaEmbedCabinet
)

const (
	PropertyValue = iota
	PropertyAdmin
	PropertyHidden
	PropertySecure
)

const (
	RegistryRoot = iota
	RegistryKey
	RegistryName
	RegistryValue
	RegistryComponentRef
	RegistryValueType
)

const (
	ShortcutDirectoryRef = iota
	ShortcutName
	ShortcutShortName
	ShortcutComponentRef
	ShortcutTarget
	ShortcutArguments
	ShortcutDescription
	ShortcutHotkey
	ShortcutIconRef
	ShortcutIconIndex
	ShortcutShow
	ShortcutWorkingDirectory
)

const (
	UpgradeUpgradeCode = iota
	UpgradeVersionMin
	UpgradeVersionMax
	UpgradeLanguage
	UpgradeRemove
	UpgradeActionProperty
	UpgradeAttributes
)

const (
	WixActionSequenceTable = iota
	WixActionAction
	WixActionCondition
	WixActionSequence
	WixActionBefore
	WixActionAfter
	WixActionOverridable
)

const (
	WixModuleModuleID = iota
	WixModuleLanguage
	WixModuleVersion
)

const (
	WixVariableValue = iota
	WixVariableOverridable
)

const (
	WixPatchFamilyProductCode = iota
	WixPatchFamilyVersion
	WixPatchFamilySupersede
)

const (
	WixPatchIDClientPatchID = iota
	WixPatchIDOptimizePatchSizeForLargeFiles
	WixPatchIDAPIPatchingSymbolFlags
)

const (
	WixBundleUpgradeCode = iota
	WixBundleVersion
	WixBundleCopyright
	WixBundleName
	WixBundleManufacturer
	WixBundleProviderKey
	WixBundleTag
	WixBundleCompressed
)

const (
	WixBundleContainerName = iota
	WixBundleContainerType
	WixBundleContainerWorkingPath
	WixBundleContainerSize
)

const (
	WixBundlePackageType = iota
	WixBundlePackagePayloadRef
	WixBundlePackageVital
	WixBundlePackageInstallCondition
	WixBundlePackageCacheID
	WixBundlePackageInstallSize
	WixBundlePackageSize
	WixBundlePackagePermanent
)

const (
	WixBundlePayloadName = iota
	WixBundlePayloadSourceFile
	WixBundlePayloadDownloadURL
	WixBundlePayloadCompressed
	WixBundlePayloadFileSize
	WixBundlePayloadHash
	WixBundlePayloadContainerRef
)

const (
	WixBundleVariableValue = iota
	WixBundleVariableType
	WixBundleVariableHidden
	WixBundleVariablePersisted
)

const (
	WixSearchVariable = iota
	WixSearchCondition
	WixSearchBundleExtensionRef
)

const (
	WixFileSearchPath = iota
	WixFileSearchAttributes
)

const (
	WixRegistrySearchRoot = iota
	WixRegistrySearchKey
	WixRegistrySearchValue
	WixRegistrySearchAttributes
)

const (
	WixComponentSearchGUID = iota
	WixComponentSearchProductCode
	WixComponentSearchAttributes
)

const (
	WixProductSearchGUID = iota
	WixProductSearchAttributes
)

// col pairs a field definition with the index constant that must address it.
type col struct {
	index int
	def   field.Definition
}

func at(index int, def field.Definition) col {
	return col{index: index, def: def}
}

func table(t Type, cat Category, cols ...col) Definition {
	fields := make([]field.Definition, len(cols))
	for i, c := range cols {
		if c.index != i {
			panic(fmt.Sprintf("symdef: %s field %q declared at position %d but its constant is %d", t, c.def.Name, i, c.index))
		}
		fields[i] = c.def
	}
	return Definition{Name: t.String(), Type: t, Category: cat, Fields: fields}
}

func root(def Definition) Definition {
	def.HierarchyRoot = true
	return def
}

func overridable(def Definition, fieldName string) Definition {
	def.OverrideField = fieldName
	return def
}

const (
	str   = field.KindString
	num   = field.KindNumber
	large = field.KindLargeNumber
	flag  = field.KindBool
	path  = field.KindPath
)

var (
	opt = field.Def
	req = field.Required
)

func builtins() []Definition {
	return []Definition{
		table(TypeBinary, CategoryCore,
			at(BinaryData, req("Data", path)),
		),
		table(TypeComponent, CategoryCore,
			at(ComponentComponentID, opt("ComponentId", str)),
			at(ComponentDirectoryRef, req("DirectoryRef", str)),
			at(ComponentCondition, opt("Condition", str)),
			at(ComponentKeyPath, opt("KeyPath", str)),
			at(ComponentKeyPathType, opt("KeyPathType", num)),
			at(ComponentLocation, opt("Location", num)),
			at(ComponentPermanent, opt("Permanent", flag)),
			at(ComponentShared, opt("Shared", flag)),
			at(ComponentSharedDllRefCount, opt("SharedDllRefCount", flag)),
			at(ComponentTransitive, opt("Transitive", flag)),
			at(ComponentNeverOverwrite, opt("NeverOverwrite", flag)),
			at(ComponentWin64, opt("Win64", flag)),
		),
		table(TypeCustomAction, CategoryCore,
			at(CustomActionExecutionType, opt("ExecutionType", num)),
			at(CustomActionSource, opt("Source", str)),
			at(CustomActionSourceType, opt("SourceType", num)),
			at(CustomActionTarget, opt("Target", str)),
			at(CustomActionHidden, opt("Hidden", flag)),
			at(CustomActionImpersonate, opt("Impersonate", flag)),
			at(CustomActionPatchUninstall, opt("PatchUninstall", flag)),
			at(CustomActionTSAware, opt("TSAware", flag)),
			at(CustomActionWin64, opt("Win64", flag)),
		),
		table(TypeDirectory, CategoryCore,
			at(DirectoryParentDirectoryRef, opt("ParentDirectoryRef", str)),
			at(DirectoryName, req("Name", str)),
			at(DirectoryShortName, opt("ShortName", str)),
			at(DirectorySourceName, opt("SourceName", str)),
			at(DirectorySourceShortName, opt("SourceShortName", str)),
			at(DirectoryComponentGUIDGenerationSeed, opt("ComponentGuidGenerationSeed", str)),
		),
		root(table(TypeFeature, CategoryCore,
			at(FeatureParentFeatureRef, opt("ParentFeatureRef", str)),
			at(FeatureTitle, opt("Title", str)),
			at(FeatureDescription, opt("Description", str)),
			at(FeatureDisplay, opt("Display", num)),
			at(FeatureLevel, req("Level", num)),
			at(FeatureDirectoryRef, opt("DirectoryRef", str)),
			at(FeatureDisallowAbsent, opt("DisallowAbsent", flag)),
			at(FeatureDisallowAdvertise, opt("DisallowAdvertise", flag)),
			at(FeatureInstallDefault, opt("InstallDefault", num)),
			at(FeatureTypicalDefault, opt("TypicalDefault", num)),
		)),
		table(TypeFile, CategoryCore,
			at(FileComponentRef, req("ComponentRef", str)),
			at(FileName, req("Name", str)),
			at(FileShortName, opt("ShortName", str)),
			at(FileFileSize, opt("FileSize", large)),
			at(FileVersion, opt("Version", str)),
			at(FileLanguage, opt("Language", str)),
			at(FileAttributes, opt("Attributes", num)),
			at(FileDirectoryRef, opt("DirectoryRef", str)),
			at(FileDiskID, opt("DiskId", num)),
			at(FileSource, opt("Source", path)),
			at(FilePatchGroup, opt("PatchGroup", num)),
			at(FileSequence, opt("Sequence", num)),
		),
		table(TypeIcon, CategoryCore,
			at(IconData, req("Data", path)),
		),
		table(TypeMedia, CategoryCore,
			at(MediaLastSequence, opt("LastSequence", num)),
			at(MediaDiskPrompt, opt("DiskPrompt", str)),
			at(MediaCabinet, opt("Cabinet", str)),
			at(MediaVolumeLabel, opt("VolumeLabel", str)),
			at(MediaSource, opt("Source", str)),
			at(MediaEmbedCabinet, opt("EmbedCabinet", flag)),
		),
		table(TypeProperty, CategoryCore,
			at(PropertyValue, opt("Value", str)),
			at(PropertyAdmin, opt("Admin", flag)),
			at(PropertyHidden, opt("Hidden", flag)),
			at(PropertySecure, opt("Secure", flag)),
		),
		table(TypeRegistry, CategoryCore,
			at(RegistryRoot, req("Root", num)),
			at(RegistryKey, req("Key", str)),
			at(RegistryName, opt("Name", str)),
			at(RegistryValue, opt("Value", str)),
			at(RegistryComponentRef, req("ComponentRef", str)),
			at(RegistryValueType, opt("ValueType", num)),
		),
		table(TypeShortcut, CategoryCore,
			at(ShortcutDirectoryRef, req("DirectoryRef", str)),
			at(ShortcutName, req("Name", str)),
			at(ShortcutShortName, opt("ShortName", str)),
			at(ShortcutComponentRef, req("ComponentRef", str)),
			at(ShortcutTarget, opt("Target", str)),
			at(ShortcutArguments, opt("Arguments", str)),
			at(ShortcutDescription, opt("Description", str)),
			at(ShortcutHotkey, opt("Hotkey", num)),
			at(ShortcutIconRef, opt("IconRef", str)),
			at(ShortcutIconIndex, opt("IconIndex", num)),
			at(ShortcutShow, opt("Show", num)),
			at(ShortcutWorkingDirectory, opt("WorkingDirectory", str)),
		),
		table(TypeUpgrade, CategoryCore,
			at(UpgradeUpgradeCode, req("UpgradeCode", str)),
			at(UpgradeVersionMin, opt("VersionMin", str)),
			at(UpgradeVersionMax, opt("VersionMax", str)),
			at(UpgradeLanguage, opt("Language", str)),
			at(UpgradeRemove, opt("Remove", str)),
			at(UpgradeActionProperty, req("ActionProperty", str)),
			at(UpgradeAttributes, opt("Attributes", num)),
		),
		overridable(table(TypeWixAction, CategoryCore,
			at(WixActionSequenceTable, req("SequenceTable", str)),
			at(WixActionAction, req("Action", str)),
			at(WixActionCondition, opt("Condition", str)),
			at(WixActionSequence, opt("Sequence", num)),
			at(WixActionBefore, opt("Before", str)),
			at(WixActionAfter, opt("After", str)),
			at(WixActionOverridable, opt("Overridable", flag)),
		), "Overridable"),
		table(TypeWixComponentGroup, CategoryCore),
		table(TypeWixFeatureGroup, CategoryCore),
		root(table(TypeWixModule, CategoryCore,
			at(WixModuleModuleID, req("ModuleId", str)),
			at(WixModuleLanguage, opt("Language", str)),
			at(WixModuleVersion, opt("Version", str)),
		)),
		overridable(table(TypeWixVariable, CategoryCore,
			at(WixVariableValue, opt("Value", str)),
			at(WixVariableOverridable, opt("Overridable", flag)),
		), "Overridable"),
		table(TypeWixPatchFamily, CategoryPatch,
			at(WixPatchFamilyProductCode, opt("ProductCode", str)),
			at(WixPatchFamilyVersion, opt("Version", str)),
			at(WixPatchFamilySupersede, opt("Supersede", flag)),
		),
		table(TypeWixPatchID, CategoryPatch,
			at(WixPatchIDClientPatchID, opt("ClientPatchId", str)),
			at(WixPatchIDOptimizePatchSizeForLargeFiles, opt("OptimizePatchSizeForLargeFiles", flag)),
			at(WixPatchIDAPIPatchingSymbolFlags, opt("ApiPatchingSymbolFlags", num)),
		),
		root(table(TypeWixBundle, CategoryBundle,
			at(WixBundleUpgradeCode, req("UpgradeCode", str)),
			at(WixBundleVersion, req("Version", str)),
			at(WixBundleCopyright, opt("Copyright", str)),
			at(WixBundleName, opt("Name", str)),
			at(WixBundleManufacturer, opt("Manufacturer", str)),
			at(WixBundleProviderKey, opt("ProviderKey", str)),
			at(WixBundleTag, opt("Tag", str)),
			at(WixBundleCompressed, opt("Compressed", flag)),
		)),
		table(TypeWixBundleContainer, CategoryBundle,
			at(WixBundleContainerName, req("Name", str)),
			at(WixBundleContainerType, opt("Type", num)),
			at(WixBundleContainerWorkingPath, opt("WorkingPath", path)),
			at(WixBundleContainerSize, opt("Size", large)),
		),
		table(TypeWixBundlePackage, CategoryBundle,
			at(WixBundlePackageType, req("Type", num)),
			at(WixBundlePackagePayloadRef, opt("PayloadRef", str)),
			at(WixBundlePackageVital, opt("Vital", flag)),
			at(WixBundlePackageInstallCondition, opt("InstallCondition", str)),
			at(WixBundlePackageCacheID, opt("CacheId", str)),
			at(WixBundlePackageInstallSize, opt("InstallSize", large)),
			at(WixBundlePackageSize, opt("Size", large)),
			at(WixBundlePackagePermanent, opt("Permanent", flag)),
		),
		table(TypeWixBundlePayload, CategoryBundle,
			at(WixBundlePayloadName, req("Name", str)),
			at(WixBundlePayloadSourceFile, opt("SourceFile", path)),
			at(WixBundlePayloadDownloadURL, opt("DownloadUrl", str)),
			at(WixBundlePayloadCompressed, opt("Compressed", flag)),
			at(WixBundlePayloadFileSize, opt("FileSize", large)),
			at(WixBundlePayloadHash, opt("Hash", str)),
			at(WixBundlePayloadContainerRef, opt("ContainerRef", str)),
		),
		table(TypeWixBundleVariable, CategoryBundle,
			at(WixBundleVariableValue, opt("Value", str)),
			at(WixBundleVariableType, opt("Type", num)),
			at(WixBundleVariableHidden, opt("Hidden", flag)),
			at(WixBundleVariablePersisted, opt("Persisted", flag)),
		),
		table(TypeWixSearch, CategoryBundleSearch,
			at(WixSearchVariable, req("Variable", str)),
			at(WixSearchCondition, opt("Condition", str)),
			at(WixSearchBundleExtensionRef, opt("BundleExtensionRef", str)),
		),
		table(TypeWixFileSearch, CategoryBundleSearch,
			at(WixFileSearchPath, req("Path", str)),
			at(WixFileSearchAttributes, opt("Attributes", num)),
		),
		table(TypeWixRegistrySearch, CategoryBundleSearch,
			at(WixRegistrySearchRoot, req("Root", num)),
			at(WixRegistrySearchKey, req("Key", str)),
			at(WixRegistrySearchValue, opt("Value", str)),
			at(WixRegistrySearchAttributes, opt("Attributes", num)),
		),
		table(TypeWixComponentSearch, CategoryBundleSearch,
			at(WixComponentSearchGUID, req("Guid", str)),
			at(WixComponentSearchProductCode, opt("ProductCode", str)),
			at(WixComponentSearchAttributes, opt("Attributes", num)),
		),
		table(TypeWixProductSearch, CategoryBundleSearch,
			at(WixProductSearchGUID, req("Guid", str)),
			at(WixProductSearchAttributes, opt("Attributes", num)),
		),
	}
}
