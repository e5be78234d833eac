// Package platform identifies the host operating system and architecture and
// matches them against the filters used by batch manifests.
package platform

import (
	"fmt"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	OSWindows = "windows"
	OSLinux   = "linux"
	OSMacOS   = "macos"
	OSFreeBSD = "freebsd"
	OSOpenBSD = "openbsd"
	OSNetBSD  = "netbsd"

	ArchAMD64 = "amd64"
	Arch386   = "386"
	ArchARM   = "arm"
	ArchARM64 = "arm64"

	// Any matches every OS or architecture.
	Any = "any"
)

// Platform represents a target platform with OS and Architecture.
// Either field may be "any" or empty to match every value.
type Platform struct {
	OS   string `yaml:"os,omitempty" json:"os,omitempty"`
	Arch string `yaml:"arch,omitempty" json:"arch,omitempty"`
}

// current is swapped out by tests.
var current = func() Platform {
	return Platform{OS: runtime.GOOS, Arch: runtime.GOARCH}
}

// CurrentPlatform returns the normalized host platform.
func CurrentPlatform() Platform {
	return current().Normalize()
}

// Parse reads "os/arch", "os" or "" (any platform).
func Parse(s string) (Platform, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Platform{OS: Any, Arch: Any}, nil
	}
	osName, arch, found := strings.Cut(s, "/")
	if osName == "" || (found && (arch == "" || strings.Contains(arch, "/"))) {
		return Platform{}, fmt.Errorf("invalid platform %q: want os or os/arch", s)
	}
	if !found {
		arch = Any
	}
	return Platform{OS: osName, Arch: arch}.Normalize(), nil
}

// UnmarshalYAML accepts the mapping form {os: linux, arch: amd64} as well as
// the short form "linux/amd64" understood by Parse.
func (p *Platform) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		parsed, err := Parse(node.Value)
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	case yaml.MappingNode:
		var out Platform
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			if value.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: platform %s must be a string", value.Line, key.Value)
			}
			switch key.Value {
			case "os":
				out.OS = value.Value
			case "arch":
				out.Arch = value.Value
			default:
				return fmt.Errorf("line %d: unknown platform field %q", key.Line, key.Value)
			}
		}
		*p = out
		return nil
	default:
		return fmt.Errorf("line %d: platform must be os/arch or a mapping", node.Line)
	}
}

// Normalize maps OS and architecture aliases to their canonical names and
// empty fields to "any".
func (p Platform) Normalize() Platform {
	return Platform{OS: NormalizeOS(p.OS), Arch: NormalizeArch(p.Arch)}
}

// Matches checks if this platform matches the target platform.
// "any" is a wildcard on either side.
func (p Platform) Matches(target Platform) bool {
	p, target = p.Normalize(), target.Normalize()
	return (p.OS == Any || target.OS == Any || p.OS == target.OS) &&
		(p.Arch == Any || target.Arch == Any || p.Arch == target.Arch)
}

// IsCurrent reports whether p matches the host.
func (p Platform) IsCurrent() bool {
	return p.Matches(CurrentPlatform())
}

// String returns a string representation of the platform.
func (p Platform) String() string {
	p = p.Normalize()
	return fmt.Sprintf("%s/%s", p.OS, p.Arch)
}

// NormalizeOS normalizes OS names to a common format.
func NormalizeOS(os string) string {
	os = strings.ToLower(strings.TrimSpace(os))
	switch os {
	case "", "*":
		return Any
	case "darwin", "mac", "osx":
		return OSMacOS
	case "win", "win32", "win64":
		return OSWindows
	default:
		return os
	}
}

// NormalizeArch normalizes architecture names to a common format.
func NormalizeArch(arch string) string {
	arch = strings.ToLower(strings.TrimSpace(arch))
	switch arch {
	case "", "*":
		return Any
	case "x86_64", "x64":
		return ArchAMD64
	case "x86", "i386", "i686":
		return Arch386
	case "aarch64":
		return ArchARM64
	default:
		return arch
	}
}
