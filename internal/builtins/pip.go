// ABOUTME: The pip pack: package queries and mutations backed by the uv wrapper.
// ABOUTME: Read tools require "packages:read"; mutating tools require "packages:manage".

package builtins

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/2389/uv-gateway/internal/packs"
	"github.com/2389/uv-gateway/internal/uv"
)

// Capability names used across the packs.
const (
	CapPackagesRead   = "packages:read"
	CapPackagesManage = "packages:manage"
	CapProjectManage  = "project:manage"
	CapEnvsManage     = "envs:manage"
)

// PipPack creates the pip pack over the given uv client.
func PipPack(client *uv.Client) *packs.BuiltinPack {
	h := &pipHandlers{client: client}
	return &packs.BuiltinPack{
		ID: "builtin:pip",
		Tools: []*packs.BuiltinTool{
			{
				Definition: &packs.ToolDefinition{
					Name:                 "pip_list",
					Description:          "List all installed packages with their versions",
					InputSchemaJSON:      `{"type":"object","properties":{}}`,
					RequiredCapabilities: []string{CapPackagesRead},
				},
				Handler: h.List,
			},
			{
				Definition: &packs.ToolDefinition{
					Name:                 "pip_outdated",
					Description:          "List installed packages with a newer version available",
					InputSchemaJSON:      `{"type":"object","properties":{}}`,
					RequiredCapabilities: []string{CapPackagesRead},
				},
				Handler: h.Outdated,
			},
			{
				Definition: &packs.ToolDefinition{
					Name:                 "pip_show",
					Description:          "Show detailed information about an installed package",
					InputSchemaJSON:      `{"type":"object","properties":{"name":{"type":"string"}},"required":["name"]}`,
					RequiredCapabilities: []string{CapPackagesRead},
				},
				Handler: h.Show,
			},
			{
				Definition: &packs.ToolDefinition{
					Name:                 "pip_check_installed",
					Description:          "Check whether a package is installed (name compared case-insensitively)",
					InputSchemaJSON:      `{"type":"object","properties":{"name":{"type":"string"}},"required":["name"]}`,
					RequiredCapabilities: []string{CapPackagesRead},
				},
				Handler: h.CheckInstalled,
			},
			{
				Definition: &packs.ToolDefinition{
					Name:                 "parse_requirements",
					Description:          "Resolve a requirements file without installing anything",
					InputSchemaJSON:      `{"type":"object","properties":{"path":{"type":"string"}},"required":["path"]}`,
					RequiredCapabilities: []string{CapPackagesRead},
				},
				Handler: h.ParseRequirements,
			},
			{
				Definition: &packs.ToolDefinition{
					Name:                 "pip_install",
					Description:          "Install a package, optionally pinned to an exact version",
					InputSchemaJSON:      `{"type":"object","properties":{"name":{"type":"string"},"version":{"type":"string"}},"required":["name"]}`,
					RequiredCapabilities: []string{CapPackagesManage},
				},
				Handler: h.Install,
			},
			{
				Definition: &packs.ToolDefinition{
					Name:                 "pip_uninstall",
					Description:          "Uninstall a package without interactive confirmation",
					InputSchemaJSON:      `{"type":"object","properties":{"name":{"type":"string"}},"required":["name"]}`,
					RequiredCapabilities: []string{CapPackagesManage},
				},
				Handler: h.Uninstall,
			},
			{
				Definition: &packs.ToolDefinition{
					Name:                 "pip_upgrade",
					Description:          "Upgrade a package to the latest available version",
					InputSchemaJSON:      `{"type":"object","properties":{"name":{"type":"string"}},"required":["name"]}`,
					RequiredCapabilities: []string{CapPackagesManage},
				},
				Handler: h.Upgrade,
			},
			{
				Definition: &packs.ToolDefinition{
					Name:                 "pip",
					Description:          "Run an arbitrary pip subcommand through uv",
					InputSchemaJSON:      `{"type":"object","properties":{"args":{"type":"array","items":{"type":"string"}}},"required":["args"]}`,
					RequiredCapabilities: []string{CapPackagesManage},
				},
				Handler: h.Passthrough,
			},
		},
	}
}

type pipHandlers struct {
	client *uv.Client
}

func (h *pipHandlers) List(ctx context.Context, _ json.RawMessage) (json.RawMessage, error) {
	res, err := h.client.ListInstalled(ctx)
	if err != nil {
		return nil, err
	}
	return resultJSON(res)
}

func (h *pipHandlers) Outdated(ctx context.Context, _ json.RawMessage) (json.RawMessage, error) {
	res, err := h.client.ListOutdated(ctx)
	if err != nil {
		return nil, err
	}
	return resultJSON(res)
}

type packageNameInput struct {
	Name string `json:"name"`
}

func (h *pipHandlers) Show(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	in, err := decodePackageName(input)
	if err != nil {
		return nil, err
	}
	res, err := h.client.ShowInfo(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	return resultJSON(res)
}

func (h *pipHandlers) CheckInstalled(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	in, err := decodePackageName(input)
	if err != nil {
		return nil, err
	}
	installed, err := h.client.IsInstalled(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	return json.Marshal(map[string]any{"name": in.Name, "installed": installed})
}

type parseRequirementsInput struct {
	Path string `json:"path"`
}

func (h *pipHandlers) ParseRequirements(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in parseRequirementsInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if in.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	res, err := h.client.ParseRequirements(ctx, in.Path)
	if err != nil {
		return nil, err
	}
	return resultJSON(res)
}

type installInput struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

func (h *pipHandlers) Install(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in installInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if in.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	res, err := h.client.Install(ctx, in.Name, in.Version)
	if err != nil {
		return nil, err
	}
	return resultJSON(res)
}

func (h *pipHandlers) Uninstall(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	in, err := decodePackageName(input)
	if err != nil {
		return nil, err
	}
	res, err := h.client.Uninstall(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	return resultJSON(res)
}

func (h *pipHandlers) Upgrade(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	in, err := decodePackageName(input)
	if err != nil {
		return nil, err
	}
	res, err := h.client.Upgrade(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	return resultJSON(res)
}

type argsInput struct {
	Args []string `json:"args"`
}

func (h *pipHandlers) Passthrough(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in argsInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if len(in.Args) == 0 {
		return nil, fmt.Errorf("args is required")
	}
	res, err := h.client.Pip(ctx, in.Args)
	if err != nil {
		return nil, err
	}
	return resultJSON(res)
}

func decodePackageName(input json.RawMessage) (packageNameInput, error) {
	var in packageNameInput
	if err := json.Unmarshal(input, &in); err != nil {
		return in, fmt.Errorf("invalid input: %w", err)
	}
	if in.Name == "" {
		return in, fmt.Errorf("name is required")
	}
	return in, nil
}

// resultJSON renders an invocation result as a tool output payload.
// Structured results pass uv's JSON through verbatim; text results are
// wrapped so the output stays valid JSON.
func resultJSON(res uv.Result) (json.RawMessage, error) {
	if _, ok := res.Structured(); ok {
		return json.RawMessage(res.Text()), nil
	}
	return json.Marshal(map[string]string{"output": res.Text()})
}
