// Package domain contains the core domain models for the decision task:
// build variant classification, task descriptors and run configuration.
package domain

import (
	"fmt"
	"strings"

	"go.trai.ch/zerr"
)

// Architecture is a CPU architecture encoded in a build variant token.
type Architecture string

const (
	ArchX86     Architecture = "x86"
	ArchArm     Architecture = "arm"
	ArchAarch64 Architecture = "aarch64"
)

// BuildType is the build flavor encoded in a build variant token's suffix.
type BuildType string

const (
	BuildDebug   BuildType = "debug"
	BuildRelease BuildType = "release"
)

// Classify derives the architecture and build type from a variant token such
// as "armDebug" or "geckoNightlyAarch64Release".
//
// Architectures are matched in explicit priority order (aarch64 before x86
// before arm) so that aarch64 variants never mis-route to arm. The build type
// must be a suffix of the token. A token missing either attribute is invalid
// input and yields ErrInvalidVariant naming what was and was not found.
func Classify(variant string) (Architecture, BuildType, error) {
	lower := strings.ToLower(variant)

	var architecture Architecture
	switch {
	case strings.Contains(lower, string(ArchAarch64)):
		architecture = ArchAarch64
	case strings.Contains(lower, string(ArchX86)):
		architecture = ArchX86
	case strings.Contains(lower, string(ArchArm)):
		architecture = ArchArm
	}

	var buildType BuildType
	switch {
	case strings.HasSuffix(lower, string(BuildDebug)):
		buildType = BuildDebug
	case strings.HasSuffix(lower, string(BuildRelease)):
		buildType = BuildRelease
	}

	if architecture == "" || buildType == "" {
		err := zerr.With(ErrInvalidVariant, "variant", variant)
		err = zerr.With(err, "architecture", string(architecture))
		return "", "", zerr.With(err, "build_type", string(buildType))
	}

	return architecture, buildType, nil
}

// PlatformLabel returns the human-facing platform label for a variant,
// e.g. "android-arm-debug". Used for result-tracking display.
func PlatformLabel(variant string) (string, error) {
	architecture, buildType, err := Classify(variant)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("android-%s-%s", architecture, buildType), nil
}

// ApkPath reconstructs the gradle output path of the APK produced by a
// variant, rooted at checkoutDir. Release artifacts carry an "-unsigned"
// suffix in the filename; debug artifacts never do.
//
// The derivation strips the build-type suffix and then the architecture
// substring from the token's tail to rebuild gradle's nested directory
// convention. It is exact-format-dependent on the build tool's layout, which
// is why it lives here and nowhere else.
func ApkPath(variant, checkoutDir string) (string, error) {
	architecture, buildType, err := Classify(variant)
	if err != nil {
		return "", err
	}

	shortVariant := variant[:len(variant)-len(buildType)]
	shorterVariant := shortVariant[:len(shortVariant)-len(architecture)]

	postfix := ""
	if buildType == BuildRelease {
		postfix = "-unsigned"
	}

	return fmt.Sprintf(
		"%s/app/build/outputs/apk/%s/%s/app-%s-%s-%s%s.apk",
		checkoutDir, shortVariant, buildType, shorterVariant, architecture, buildType, postfix,
	), nil
}

// NightlyApkPath returns the gradle output path of the nightly release APK
// for an architecture. Nightly builds always use the geckoNightly flavor and
// are always release builds, so they are always unsigned at this point.
func NightlyApkPath(architecture Architecture, checkoutDir string) string {
	return fmt.Sprintf(
		"%s/app/build/outputs/apk/geckoNightly%s/release/app-geckoNightly-%s-release-unsigned.apk",
		checkoutDir, capitalize(string(architecture)), architecture,
	)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
