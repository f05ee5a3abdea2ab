package core

import (
	"sort"

	"github.com/Masterminds/semver/v3"
)

// SortPackages orders search results by name, then by version descending.
// Semver-parseable versions sort newest first; anything unparseable sorts
// after the semver versions, lexically.
func SortPackages(pkgs []PackageMetadata) {
	sort.SliceStable(pkgs, func(i, j int) bool {
		if pkgs[i].Name != pkgs[j].Name {
			return pkgs[i].Name < pkgs[j].Name
		}
		vi, erri := semver.NewVersion(pkgs[i].Version)
		vj, errj := semver.NewVersion(pkgs[j].Version)
		switch {
		case erri == nil && errj == nil:
			return vi.GreaterThan(vj)
		case erri == nil:
			return true
		case errj == nil:
			return false
		default:
			return pkgs[i].Version < pkgs[j].Version
		}
	})
}

// LatestVersion returns the entry with the highest semver version among
// packages sharing the given name. Returns nil if no entry matches.
func LatestVersion(pkgs []PackageMetadata, name string) *PackageMetadata {
	var best *PackageMetadata
	var bestVer *semver.Version

	for i := range pkgs {
		p := &pkgs[i]
		if p.Name != name {
			continue
		}
		v, err := semver.NewVersion(p.Version)
		if err != nil {
			if best == nil {
				best = p
			}
			continue
		}
		if bestVer == nil || v.GreaterThan(bestVer) {
			best = p
			bestVer = v
		}
	}
	return best
}
