// ABOUTME: Read-only MCP resources over package and requirements data.
// ABOUTME: Failures are rendered as descriptive text, never protocol errors.

package builtins

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/2389/uv-gateway/internal/uv"
)

// ResourceInfo describes a concrete resource with a fixed URI.
type ResourceInfo struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// ResourceTemplateInfo describes a parameterized resource family.
type ResourceTemplateInfo struct {
	URITemplate string `json:"uriTemplate"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// ResourceContents is one readable item returned by Catalog.Read.
type ResourceContents struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text"`
}

// Catalog resolves resource URIs against the uv client.
type Catalog struct {
	client *uv.Client
	logger *slog.Logger
}

// NewCatalog creates a resource catalog over the given client.
func NewCatalog(client *uv.Client, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{client: client, logger: logger}
}

// List returns the fixed-URI resources.
func (c *Catalog) List() []*ResourceInfo {
	return []*ResourceInfo{
		{
			URI:         "packages://installed",
			Name:        "Installed Packages",
			Description: "Packages installed in the active environment",
			MimeType:    "application/json",
		},
		{
			URI:         "packages://outdated",
			Name:        "Outdated Packages",
			Description: "Installed packages with newer versions available",
			MimeType:    "application/json",
		},
	}
}

// Templates returns the parameterized resource families.
func (c *Catalog) Templates() []*ResourceTemplateInfo {
	return []*ResourceTemplateInfo{
		{
			URITemplate: "packages://{name}/info",
			Name:        "Package Info",
			Description: "Details for a single installed package",
			MimeType:    "text/plain",
		},
		{
			URITemplate: "requirements://{path}",
			Name:        "Requirements File",
			Description: "Resolved contents of a requirements file",
			MimeType:    "application/json",
		},
	}
}

// Read resolves a resource URI. Unknown URIs are the only error case;
// failures while fetching data come back as readable text.
func (c *Catalog) Read(ctx context.Context, uri string) (*ResourceContents, error) {
	switch {
	case uri == "packages://installed":
		res, err := c.client.ListInstalled(ctx)
		return c.render(uri, "application/json", res, err, "Error retrieving installed packages"), nil

	case uri == "packages://outdated":
		res, err := c.client.ListOutdated(ctx)
		return c.render(uri, "application/json", res, err, "Error retrieving outdated packages"), nil

	case strings.HasPrefix(uri, "packages://") && strings.HasSuffix(uri, "/info"):
		name := strings.TrimSuffix(strings.TrimPrefix(uri, "packages://"), "/info")
		if name == "" {
			return nil, fmt.Errorf("unknown resource URI: %s", uri)
		}
		res, err := c.client.ShowInfo(ctx, name)
		return c.render(uri, "text/plain", res, err, "Error retrieving info for "+name), nil

	case strings.HasPrefix(uri, "requirements://"):
		path := strings.TrimPrefix(uri, "requirements://")
		if path == "" {
			return nil, fmt.Errorf("unknown resource URI: %s", uri)
		}
		res, err := c.client.ParseRequirements(ctx, path)
		return c.render(uri, "application/json", res, err, "Error parsing requirements file "+path), nil
	}

	return nil, fmt.Errorf("unknown resource URI: %s", uri)
}

func (c *Catalog) render(uri, mimeType string, res uv.Result, err error, failurePrefix string) *ResourceContents {
	if err != nil {
		c.logger.Warn("resource read failed", "uri", uri, "error", err)
		return &ResourceContents{
			URI:      uri,
			MimeType: "text/plain",
			Text:     fmt.Sprintf("%s: %v", failurePrefix, err),
		}
	}
	return &ResourceContents{URI: uri, MimeType: mimeType, Text: res.Text()}
}
