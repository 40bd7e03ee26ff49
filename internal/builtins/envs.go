// ABOUTME: The envs pack: virtualenv creation and environment comparison.
// ABOUTME: venv_create requires "envs:manage"; compare_environments only reads.

package builtins

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/2389/uv-gateway/internal/packs"
	"github.com/2389/uv-gateway/internal/uv"
)

// EnvsPack creates the envs pack over the given uv client.
func EnvsPack(client *uv.Client) *packs.BuiltinPack {
	h := &envsHandlers{client: client}
	return &packs.BuiltinPack{
		ID: "builtin:envs",
		Tools: []*packs.BuiltinTool{
			{
				Definition: &packs.ToolDefinition{
					Name:                 "venv_create",
					Description:          "Create a virtual environment and optionally install packages into it",
					InputSchemaJSON:      `{"type":"object","properties":{"path":{"type":"string"},"packages":{"type":"array","items":{"type":"string"}}},"required":["path"]}`,
					RequiredCapabilities: []string{CapEnvsManage},
				},
				Handler: h.Create,
			},
			{
				Definition: &packs.ToolDefinition{
					Name:                 "compare_environments",
					Description:          "Diff the installed packages of two virtual environments",
					InputSchemaJSON:      `{"type":"object","properties":{"left_path":{"type":"string"},"right_path":{"type":"string"}},"required":["left_path","right_path"]}`,
					RequiredCapabilities: []string{CapPackagesRead},
				},
				Handler: h.Compare,
			},
		},
	}
}

type envsHandlers struct {
	client *uv.Client
}

type venvCreateInput struct {
	Path     string   `json:"path"`
	Packages []string `json:"packages"`
}

func (h *envsHandlers) Create(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in venvCreateInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if in.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	res, err := h.client.CreateVirtualenv(ctx, in.Path, in.Packages)
	if err != nil {
		return nil, err
	}
	return json.Marshal(map[string]any{
		"path":               in.Path,
		"packages_installed": len(in.Packages),
		"output":             res.Text(),
	})
}

type compareInput struct {
	LeftPath  string `json:"left_path"`
	RightPath string `json:"right_path"`
}

func (h *envsHandlers) Compare(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in compareInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if in.LeftPath == "" || in.RightPath == "" {
		return nil, fmt.Errorf("left_path and right_path are required")
	}

	diff, err := h.client.CompareEnvironments(ctx, in.LeftPath, in.RightPath)
	if err != nil {
		return nil, err
	}
	return json.Marshal(diff)
}
