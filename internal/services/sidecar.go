package services

import (
	"path/filepath"
	"strings"
)

// SidecarPrefix starts the name of every AppleDouble sidecar file.
const SidecarPrefix = "._"

// CustomIconFileName is the file that holds a folder's custom icon.
const CustomIconFileName = "Icon\r"

// SidecarName returns the ._ name that carries the metadata of name. Any
// directory part of name is kept.
func SidecarName(name string) string {
	dir, base := filepath.Split(name)
	return dir + SidecarPrefix + base
}

// IsSidecarName reports whether the last element of name is a ._ sidecar.
func IsSidecarName(name string) bool {
	base := filepath.Base(name)
	return len(base) > len(SidecarPrefix) && strings.HasPrefix(base, SidecarPrefix)
}

// PrimaryName returns the file a sidecar describes, or false when name is
// not a sidecar.
func PrimaryName(name string) (string, bool) {
	if !IsSidecarName(name) {
		return "", false
	}
	dir, base := filepath.Split(name)
	return dir + strings.TrimPrefix(base, SidecarPrefix), true
}
