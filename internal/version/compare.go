package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rxtech-lab/argo-forecast/pkg/errors"
)

// CheckCompatibility checks whether a config written for requested can be read by a
// binary that supports the supported config format.
//
// Compatibility Rules:
//   - If either version is "main" (development build), compatibility check is skipped
//   - Major versions must match exactly
//   - Minor versions must match exactly
//   - Patch versions can differ (e.g., 1.2.0 is compatible with 1.2.5)
func CheckCompatibility(supported, requested string) error {
	supported = strings.TrimPrefix(supported, "v")
	requested = strings.TrimPrefix(requested, "v")

	if supported == "main" || requested == "main" {
		return nil
	}

	supportedSemver, err := semver.NewVersion(supported)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid supported version '%s'", supported)
	}

	requestedSemver, err := semver.NewVersion(requested)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid config version '%s'", requested)
	}

	if supportedSemver.Major() != requestedSemver.Major() {
		return errors.Newf(errors.ErrCodeVersionMismatch,
			"major version mismatch: binary reads %d.x.x configs but config is %d.x.x",
			supportedSemver.Major(), requestedSemver.Major())
	}

	if supportedSemver.Minor() != requestedSemver.Minor() {
		return errors.Newf(errors.ErrCodeVersionMismatch,
			"minor version mismatch: binary reads %d.%d.x configs but config is %d.%d.x",
			supportedSemver.Major(), supportedSemver.Minor(),
			requestedSemver.Major(), requestedSemver.Minor())
	}

	return nil
}
