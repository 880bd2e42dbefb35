package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rxtech-lab/argo-execution/pkg/errors"
)

// CheckConfigCompatibility checks whether a configuration file written for configVersion can
// be loaded by a library at libraryVersion.
//
// Compatibility Rules:
//   - An empty config version, or "main" on either side, skips the check
//   - Major versions must match exactly
//   - The library minor version must be greater than or equal to the config minor version
//   - Patch versions can differ
//
// Examples:
//   - Library 0.4.0, Config 0.4.0 -> OK
//   - Library 0.4.2, Config 0.3.9 -> OK (newer minor reads older config)
//   - Library 0.3.0, Config 0.4.0 -> ERROR (config uses newer settings)
//   - Library 1.0.0, Config 0.4.0 -> ERROR (major differs)
func CheckConfigCompatibility(libraryVersion, configVersion string) error {
	libraryVersion = strings.TrimPrefix(libraryVersion, "v")
	configVersion = strings.TrimPrefix(configVersion, "v")

	if configVersion == "" || libraryVersion == "main" || configVersion == "main" {
		return nil
	}

	library, err := semver.NewVersion(libraryVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid library version '%s'", libraryVersion)
	}

	config, err := semver.NewVersion(configVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid config version '%s'", configVersion)
	}

	if library.Major() != config.Major() {
		return errors.Newf(errors.ErrCodeInvalidVersion,
			"major version mismatch: library is %d.x.x but config requires %d.x.x",
			library.Major(), config.Major())
	}

	if library.Minor() < config.Minor() {
		return errors.Newf(errors.ErrCodeInvalidVersion,
			"minor version too old: library is %d.%d.x but config requires at least %d.%d.x",
			library.Major(), library.Minor(), config.Major(), config.Minor())
	}

	return nil
}
