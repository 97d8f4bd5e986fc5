// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// notAvailable replaces build fields that were not injected.
const notAvailable = "N/A"

// AppBuildInfo carries build metadata injected with -ldflags into the
// vault-sync and vfs-server binaries.
type AppBuildInfo struct {
	version string
	date    string
	commit  string
}

// NewAppBuildInfo constructs [AppBuildInfo]. Empty fields read as "N/A".
func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	or := func(s string) string {
		if s == "" {
			return notAvailable
		}
		return s
	}
	return AppBuildInfo{version: or(version), date: or(date), commit: or(commit)}
}

func (a AppBuildInfo) BuildVersion() string { return a.version }
func (a AppBuildInfo) BuildDate() string    { return a.date }
func (a AppBuildInfo) BuildCommit() string  { return a.commit }

func (a AppBuildInfo) String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", a.version, a.commit, a.date)
}
