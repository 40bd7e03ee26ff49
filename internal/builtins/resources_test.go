// ABOUTME: Tests for the resource catalog.
// ABOUTME: Verifies URI routing, failure-as-text rendering, and template listing.

package builtins

import (
	"context"
	"strings"
	"testing"

	"github.com/2389/uv-gateway/internal/uv"
)

func TestCatalogList(t *testing.T) {
	catalog := NewCatalog(uv.NewClient(&fakeInvoker{}, nil), nil)

	resources := catalog.List()
	if len(resources) != 2 {
		t.Fatalf("expected 2 resources, got %d", len(resources))
	}
	uris := map[string]bool{}
	for _, r := range resources {
		uris[r.URI] = true
	}
	if !uris["packages://installed"] || !uris["packages://outdated"] {
		t.Errorf("unexpected resource URIs: %v", uris)
	}

	templates := catalog.Templates()
	if len(templates) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(templates))
	}
}

func TestCatalogReadInstalled(t *testing.T) {
	inv := &fakeInvoker{stdout: `[{"name":"flask","version":"3.0.0"}]`}
	catalog := NewCatalog(uv.NewClient(inv, nil), nil)

	contents, err := catalog.Read(context.Background(), "packages://installed")
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if contents.MimeType != "application/json" {
		t.Errorf("unexpected mime type: %s", contents.MimeType)
	}
	if !strings.Contains(contents.Text, "flask") {
		t.Errorf("unexpected contents: %q", contents.Text)
	}
}

func TestCatalogReadPackageInfo(t *testing.T) {
	inv := &fakeInvoker{stdout: "Name: requests\nVersion: 2.31.0"}
	catalog := NewCatalog(uv.NewClient(inv, nil), nil)

	contents, err := catalog.Read(context.Background(), "packages://requests/info")
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if got := inv.lastArgs; len(got) != 3 || got[2] != "requests" {
		t.Errorf("unexpected args: %v", got)
	}
	if !strings.Contains(contents.Text, "requests") {
		t.Errorf("unexpected contents: %q", contents.Text)
	}
}

func TestCatalogReadFailureRendersText(t *testing.T) {
	cmdErr := &uv.CommandError{Command: "uv pip list", ExitCode: 2, Stderr: "boom"}
	inv := &fakeInvoker{err: cmdErr}
	catalog := NewCatalog(uv.NewClient(inv, nil), nil)

	contents, err := catalog.Read(context.Background(), "packages://installed")
	if err != nil {
		t.Fatalf("expected failure rendered as text, got error: %v", err)
	}
	if !strings.Contains(contents.Text, "Error retrieving installed packages") {
		t.Errorf("unexpected contents: %q", contents.Text)
	}
	if !strings.Contains(contents.Text, "exit code 2") {
		t.Errorf("diagnostics missing from contents: %q", contents.Text)
	}
}

func TestCatalogReadUnknownURI(t *testing.T) {
	catalog := NewCatalog(uv.NewClient(&fakeInvoker{}, nil), nil)

	for _, uri := range []string{"bogus://thing", "packages:///info", "requirements://", "packages://weird"} {
		if _, err := catalog.Read(context.Background(), uri); err == nil {
			t.Errorf("expected error for %q", uri)
		}
	}
}
