package common

// File permission constants used for everything the tool writes
const (
	// FilePermissionSecure is used for sensitive files (tool config, cached tokens)
	FilePermissionSecure = 0600

	// FilePermissionNormal is used for project files (firebase.json)
	FilePermissionNormal = 0644

	// DirPermissionSecure is used for directories containing sensitive files
	DirPermissionSecure = 0700

	// DirPermissionNormal is used for normal directories
	DirPermissionNormal = 0755
)
