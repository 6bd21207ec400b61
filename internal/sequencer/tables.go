package sequencer

// Standard sequence table names.
const (
	AdminExecuteSequence     = "AdminExecuteSequence"
	AdminUISequence          = "AdminUISequence"
	AdvertiseExecuteSequence = "AdvertiseExecuteSequence"
	InstallExecuteSequence   = "InstallExecuteSequence"
	InstallUISequence        = "InstallUISequence"
)
