package flutter

// Platform identifiers as they appear in project directories and
// configuration files
const (
	PlatformAndroid = "android"
	PlatformIOS     = "ios"
	PlatformMacOS   = "macos"
	PlatformWeb     = "web"
	PlatformWindows = "windows"
	PlatformLinux   = "linux"
)

// Platforms lists every platform a Flutter project can target, in display
// order
var Platforms = []string{
	PlatformAndroid,
	PlatformIOS,
	PlatformMacOS,
	PlatformWeb,
	PlatformWindows,
	PlatformLinux,
}

var displayNames = map[string]string{
	PlatformAndroid: "Android",
	PlatformIOS:     "iOS",
	PlatformMacOS:   "macOS",
	PlatformWeb:     "Web",
	PlatformWindows: "Windows",
	PlatformLinux:   "Linux",
}

// DisplayName returns the human-readable name for a platform identifier.
// Unknown identifiers are returned unchanged.
func DisplayName(platform string) string {
	if name, ok := displayNames[platform]; ok {
		return name
	}
	return platform
}
