// ABOUTME: Fixed catalog of uv domain operations, each one argument-vector mapping.
// ABOUTME: Thin translation layer over the Invoker; no retries, no local recovery.

package uv

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Package is one installed-package record from a uv listing. Listings carry
// at least name and version; show output adds metadata fields.
type Package struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Client exposes the fixed catalog of package-management operations. Each
// operation is exactly one uv invocation (CreateVirtualenv is the documented
// exception: one creation plus one install per requested package).
type Client struct {
	inv    Invoker
	logger *slog.Logger
}

// NewClient creates a Client over the given invoker.
func NewClient(inv Invoker, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{inv: inv, logger: logger}
}

// ListInstalled returns all installed packages as structured output.
func (c *Client) ListInstalled(ctx context.Context) (Result, error) {
	return c.inv.Invoke(ctx, []string{"pip", "list"}, true)
}

// ListOutdated returns installed packages with a newer version available.
func (c *Client) ListOutdated(ctx context.Context) (Result, error) {
	return c.inv.Invoke(ctx, []string{"pip", "list", "--outdated"}, true)
}

// ShowInfo returns detailed information about one package. An unknown name
// fails with uv's own *CommandError.
func (c *Client) ShowInfo(ctx context.Context, name string) (Result, error) {
	return c.inv.Invoke(ctx, []string{"pip", "show", name}, true)
}

// Install installs a package, pinned exactly when version is non-empty.
func (c *Client) Install(ctx context.Context, name, version string) (Result, error) {
	spec := name
	if version != "" {
		spec = name + "==" + version
	}
	return c.inv.Invoke(ctx, []string{"pip", "install", spec}, false)
}

// Uninstall removes a package. --yes suppresses uv's interactive prompt.
func (c *Client) Uninstall(ctx context.Context, name string) (Result, error) {
	return c.inv.Invoke(ctx, []string{"pip", "uninstall", "--yes", name}, false)
}

// Upgrade moves a package to the latest version, relying on uv's default
// resolution when no pin is given.
func (c *Client) Upgrade(ctx context.Context, name string) (Result, error) {
	return c.Install(ctx, name, "")
}

// Pip passes an arbitrary pip subcommand through to uv.
func (c *Client) Pip(ctx context.Context, args []string) (Result, error) {
	return c.inv.Invoke(ctx, append([]string{"pip"}, args...), false)
}

// IsInstalled reports whether a package appears in the installed listing.
// Names compare case-insensitively; uv normalizes names but this layer must
// not assume the stored case.
func (c *Client) IsInstalled(ctx context.Context, name string) (bool, error) {
	res, err := c.ListInstalled(ctx)
	if err != nil {
		return false, err
	}
	pkgs, err := PackagesFrom(res)
	if err != nil {
		return false, err
	}
	for _, pkg := range pkgs {
		if strings.EqualFold(pkg.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

// ParseRequirements resolves a requirements file without installing. The
// path must exist locally before any process is spawned; a missing file
// fails with ErrFileNotFound from this layer, not from uv.
func (c *Client) ParseRequirements(ctx context.Context, path string) (Result, error) {
	if _, err := os.Stat(path); err != nil {
		return Result{}, fmt.Errorf("%w: requirements file %s", ErrFileNotFound, path)
	}
	return c.inv.Invoke(ctx, []string{"pip", "install", "--dry-run", "--report", "-", "-r", path}, true)
}

// Run executes an arbitrary script or command inside the managed environment.
func (c *Client) Run(ctx context.Context, args []string) (Result, error) {
	return c.inv.Invoke(ctx, append([]string{"run"}, args...), false)
}

// Init scaffolds a new project at the current location.
func (c *Client) Init(ctx context.Context) (Result, error) {
	return c.inv.Invoke(ctx, []string{"init"}, false)
}

// AddDependency declares a dependency in the project metadata.
func (c *Client) AddDependency(ctx context.Context, name, version string) (Result, error) {
	spec := name
	if version != "" {
		spec = name + "==" + version
	}
	return c.inv.Invoke(ctx, []string{"add", spec}, false)
}

// RemoveDependency removes a declared dependency from the project metadata.
func (c *Client) RemoveDependency(ctx context.Context, name string) (Result, error) {
	return c.inv.Invoke(ctx, []string{"remove", name}, false)
}

// Sync reconciles the installed set to the declared set. With dryRun the
// command reports what would change without mutating anything.
func (c *Client) Sync(ctx context.Context, dryRun bool) (Result, error) {
	args := []string{"sync"}
	if dryRun {
		args = append(args, "--dry-run")
	}
	return c.inv.Invoke(ctx, args, false)
}

// Lock regenerates the project lockfile.
func (c *Client) Lock(ctx context.Context) (Result, error) {
	return c.inv.Invoke(ctx, []string{"lock"}, false)
}

// Version reports the resolved uv binary's version. Used by readiness checks.
func (c *Client) Version(ctx context.Context) (Result, error) {
	return c.inv.Invoke(ctx, []string{"--version"}, false)
}

// CreateVirtualenv creates an isolated environment and installs the given
// packages into it one at a time, through the same resolved uv binary with
// the environment's interpreter selected via --python. Not atomic: the
// first failing install stops the sequence, earlier packages stay
// installed, and later ones are never attempted.
func (c *Client) CreateVirtualenv(ctx context.Context, path string, packages []string) (Result, error) {
	res, err := c.inv.Invoke(ctx, []string{"venv", path}, false)
	if err != nil {
		return Result{}, err
	}

	for _, pkg := range packages {
		if _, err := c.inv.Invoke(ctx, []string{"pip", "install", "--python", venvPython(path), pkg}, false); err != nil {
			return Result{}, err
		}
	}

	return res, nil
}

// PackagesFrom decodes a structured listing result into package records.
// A degraded (text-only) result is an error here: callers that need records
// cannot proceed on prose.
func PackagesFrom(res Result) ([]Package, error) {
	if _, ok := res.Structured(); !ok {
		return nil, fmt.Errorf("package listing was not structured: %s", summarize(res.Text()))
	}
	var pkgs []Package
	if err := json.Unmarshal([]byte(res.Text()), &pkgs); err != nil {
		return nil, fmt.Errorf("decoding package listing: %w", err)
	}
	return pkgs, nil
}

// summarize truncates output for inclusion in error messages.
func summarize(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 120 {
		return s[:120] + "..."
	}
	return s
}
