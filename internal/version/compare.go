package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rxtech-lab/argo-features/pkg/errors"
)

// CheckVersionCompatibility checks if a configuration written for
// configVersion can be run by a binary at binaryVersion.
// Returns nil if compatible, error with details if not.
//
// Compatibility Rules:
//   - An empty config version is not pinned and always compatible
//   - If either version is "main" (development build), compatibility check is skipped
//   - Major versions must match exactly
//   - The binary's minor version must be at least the config's
//   - Patch versions can differ (e.g., 1.2.0 is compatible with 1.2.5)
//
// Examples:
//   - Binary 1.2.0, Config 1.2.0 -> OK (exact match)
//   - Binary 1.3.0, Config 1.2.0 -> OK (config predates new settings)
//   - Binary 1.2.0, Config 1.3.0 -> ERROR (config uses newer settings)
//   - Binary 2.0.0, Config 1.2.0 -> ERROR (major differs)
func CheckVersionCompatibility(binaryVersion, configVersion string) error {
	binaryVersion = strings.TrimPrefix(binaryVersion, "v")
	configVersion = strings.TrimPrefix(configVersion, "v")

	if configVersion == "" || binaryVersion == "main" || configVersion == "main" {
		return nil
	}

	binarySemver, err := semver.NewVersion(binaryVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid binary version '%s'", binaryVersion)
	}

	configSemver, err := semver.NewVersion(configVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid config version '%s'", configVersion)
	}

	if binarySemver.Major() != configSemver.Major() {
		return errors.Newf(errors.ErrCodeInvalidVersion, "major version mismatch: binary is %d.x.x but config requires %d.x.x",
			binarySemver.Major(), configSemver.Major())
	}

	if binarySemver.Minor() < configSemver.Minor() {
		return errors.Newf(errors.ErrCodeInvalidVersion, "minor version mismatch: binary is %d.%d.x but config requires %d.%d.x",
			binarySemver.Major(), binarySemver.Minor(),
			configSemver.Major(), configSemver.Minor())
	}

	return nil
}
