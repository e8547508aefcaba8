// Package misc holds build time information about the program.
package misc

// Set with -ldflags "-X mdattr/misc.version=... -X mdattr/misc.gitHash=..."
var (
	appName = "mdattr"
	version = "dev"
	gitHash = "unknown"
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
