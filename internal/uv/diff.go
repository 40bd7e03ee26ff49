// ABOUTME: Environment diff: list two virtual environments and compare the sets.
// ABOUTME: Pure comparison after two listing invocations; partial failure fails the whole diff.

package uv

import (
	"context"
	"sort"
)

// VersionPair records the two differing versions of a package present in
// both environments.
type VersionPair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// EnvironmentDiff is the computed difference between two environments.
// Every package name lands in exactly one of: OnlyLeft, OnlyRight,
// VersionDifferences, or (identical in both) omitted entirely.
type EnvironmentDiff struct {
	OnlyLeft           []string               `json:"only_left"`
	OnlyRight          []string               `json:"only_right"`
	VersionDifferences map[string]VersionPair `json:"version_differences"`
}

// CompareEnvironments lists both environments through their own
// interpreters and computes the diff. Either listing failure fails the
// whole operation, propagated unwrapped; there is no partial diff.
func (c *Client) CompareEnvironments(ctx context.Context, leftPath, rightPath string) (*EnvironmentDiff, error) {
	left, err := c.listEnvironment(ctx, leftPath)
	if err != nil {
		return nil, err
	}
	right, err := c.listEnvironment(ctx, rightPath)
	if err != nil {
		return nil, err
	}
	return diffPackages(left, right), nil
}

// listEnvironment lists the installed set of one specific environment,
// selected via --python rather than the ambient interpreter.
func (c *Client) listEnvironment(ctx context.Context, envPath string) ([]Package, error) {
	res, err := c.inv.Invoke(ctx, []string{"pip", "list", "--python", venvPython(envPath)}, true)
	if err != nil {
		return nil, err
	}
	return PackagesFrom(res)
}

// diffPackages computes the pure set/map difference of two listings.
func diffPackages(left, right []Package) *EnvironmentDiff {
	leftVersions := make(map[string]string, len(left))
	for _, pkg := range left {
		leftVersions[pkg.Name] = pkg.Version
	}
	rightVersions := make(map[string]string, len(right))
	for _, pkg := range right {
		rightVersions[pkg.Name] = pkg.Version
	}

	diff := &EnvironmentDiff{
		OnlyLeft:           []string{},
		OnlyRight:          []string{},
		VersionDifferences: map[string]VersionPair{},
	}

	for name, leftVersion := range leftVersions {
		rightVersion, shared := rightVersions[name]
		switch {
		case !shared:
			diff.OnlyLeft = append(diff.OnlyLeft, name)
		case leftVersion != rightVersion:
			diff.VersionDifferences[name] = VersionPair{Left: leftVersion, Right: rightVersion}
		}
	}
	for name := range rightVersions {
		if _, shared := leftVersions[name]; !shared {
			diff.OnlyRight = append(diff.OnlyRight, name)
		}
	}

	sort.Strings(diff.OnlyLeft)
	sort.Strings(diff.OnlyRight)
	return diff
}
