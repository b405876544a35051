package version

// Version is the current version of the argo-forecast binary.
// This value is set at build time using ldflags:
// -ldflags "-X github.com/rxtech-lab/argo-forecast/internal/version.Version=1.2.3"
// The default value "main" indicates a development build.
var Version = "main"

// ConfigFormat is the pipeline config format this binary reads.
const ConfigFormat = "1.0.0"

// GetVersion returns the current version of the binary.
func GetVersion() string {
	return Version
}
