// ABOUTME: Tests for the environment diff computation and its partition invariant.
// ABOUTME: Covers unique packages, version differences, and propagated listing failures.

package uv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffPackages_UniqueAndIdentical(t *testing.T) {
	left := []Package{{Name: "a", Version: "1"}, {Name: "b", Version: "2"}}
	right := []Package{{Name: "a", Version: "1"}, {Name: "c", Version: "3"}}

	diff := diffPackages(left, right)

	assert.Equal(t, []string{"b"}, diff.OnlyLeft)
	assert.Equal(t, []string{"c"}, diff.OnlyRight)
	assert.Empty(t, diff.VersionDifferences, "identical versions are omitted entirely")
}

func TestDiffPackages_VersionDifference(t *testing.T) {
	left := []Package{{Name: "x", Version: "1"}}
	right := []Package{{Name: "x", Version: "2"}}

	diff := diffPackages(left, right)

	assert.Empty(t, diff.OnlyLeft)
	assert.Empty(t, diff.OnlyRight)
	assert.Equal(t, map[string]VersionPair{"x": {Left: "1", Right: "2"}}, diff.VersionDifferences)
}

func TestDiffPackages_PartitionsNames(t *testing.T) {
	left := []Package{
		{Name: "only-left", Version: "1"},
		{Name: "shared-same", Version: "5"},
		{Name: "shared-diff", Version: "1"},
	}
	right := []Package{
		{Name: "only-right", Version: "9"},
		{Name: "shared-same", Version: "5"},
		{Name: "shared-diff", Version: "2"},
	}

	diff := diffPackages(left, right)

	// Every name lands in exactly one bucket; identical names in none.
	seen := map[string]int{}
	for _, name := range diff.OnlyLeft {
		seen[name]++
	}
	for _, name := range diff.OnlyRight {
		seen[name]++
	}
	for name := range diff.VersionDifferences {
		seen[name]++
	}
	for name, count := range seen {
		assert.Equal(t, 1, count, "name %q appears in more than one bucket", name)
	}
	assert.NotContains(t, seen, "shared-same")
	assert.Len(t, seen, 3)
}

func TestDiffPackages_EmptyCollectionsAreNonNil(t *testing.T) {
	diff := diffPackages(nil, nil)

	assert.NotNil(t, diff.OnlyLeft)
	assert.NotNil(t, diff.OnlyRight)
	assert.NotNil(t, diff.VersionDifferences)
}

func TestCompareEnvironments_InvokesEachSide(t *testing.T) {
	spy := &spyInvoker{scripts: []spyResult{
		{res: listingResult(t, `[{"name":"a","version":"1"},{"name":"b","version":"2"}]`)},
		{res: listingResult(t, `[{"name":"a","version":"1"},{"name":"c","version":"3"}]`)},
	}}
	client := NewClient(spy, nil)

	diff, err := client.CompareEnvironments(context.Background(), "/envs/left", "/envs/right")
	require.NoError(t, err)

	require.Len(t, spy.calls, 2)
	assert.Equal(t, []string{"pip", "list", "--python", venvPython("/envs/left")}, spy.calls[0].args)
	assert.Equal(t, []string{"pip", "list", "--python", venvPython("/envs/right")}, spy.calls[1].args)
	assert.True(t, spy.calls[0].structured)
	assert.True(t, spy.calls[1].structured)

	assert.Equal(t, []string{"b"}, diff.OnlyLeft)
	assert.Equal(t, []string{"c"}, diff.OnlyRight)
}

func TestCompareEnvironments_LeftFailureStopsDiff(t *testing.T) {
	failure := &CommandError{Command: "uv pip list", ExitCode: 2, Stderr: "no such env"}
	spy := &spyInvoker{scripts: []spyResult{{err: failure}}}
	client := NewClient(spy, nil)

	_, err := client.CompareEnvironments(context.Background(), "/envs/left", "/envs/right")

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Same(t, failure, cmdErr, "listing failures propagate unwrapped")
	assert.Len(t, spy.calls, 1, "no partial diff on partial failure")
}
