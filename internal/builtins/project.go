// ABOUTME: The project pack: uv project lifecycle tools (run, init, add, remove, sync, lock).
// ABOUTME: All tools mutate project state and require the "project:manage" capability.

package builtins

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/2389/uv-gateway/internal/packs"
	"github.com/2389/uv-gateway/internal/uv"
)

// ProjectPack creates the project pack over the given uv client.
func ProjectPack(client *uv.Client) *packs.BuiltinPack {
	h := &projectHandlers{client: client}
	return &packs.BuiltinPack{
		ID: "builtin:project",
		Tools: []*packs.BuiltinTool{
			{
				Definition: &packs.ToolDefinition{
					Name:                 "run",
					Description:          "Run a command or script inside the managed environment",
					InputSchemaJSON:      `{"type":"object","properties":{"args":{"type":"array","items":{"type":"string"}}},"required":["args"]}`,
					RequiredCapabilities: []string{CapProjectManage},
				},
				Handler: h.Run,
			},
			{
				Definition: &packs.ToolDefinition{
					Name:                 "init",
					Description:          "Scaffold a new project at the current location",
					InputSchemaJSON:      `{"type":"object","properties":{}}`,
					RequiredCapabilities: []string{CapProjectManage},
				},
				Handler: h.Init,
			},
			{
				Definition: &packs.ToolDefinition{
					Name:                 "add",
					Description:          "Declare a dependency in the project metadata",
					InputSchemaJSON:      `{"type":"object","properties":{"name":{"type":"string"},"version":{"type":"string"}},"required":["name"]}`,
					RequiredCapabilities: []string{CapProjectManage},
				},
				Handler: h.Add,
			},
			{
				Definition: &packs.ToolDefinition{
					Name:                 "remove",
					Description:          "Remove a declared dependency from the project metadata",
					InputSchemaJSON:      `{"type":"object","properties":{"name":{"type":"string"}},"required":["name"]}`,
					RequiredCapabilities: []string{CapProjectManage},
				},
				Handler: h.Remove,
			},
			{
				Definition: &packs.ToolDefinition{
					Name:                 "sync",
					Description:          "Reconcile installed packages to the declared set; dry_run reports without mutating",
					InputSchemaJSON:      `{"type":"object","properties":{"dry_run":{"type":"boolean"}}}`,
					RequiredCapabilities: []string{CapProjectManage},
				},
				Handler: h.Sync,
			},
			{
				Definition: &packs.ToolDefinition{
					Name:                 "lock",
					Description:          "Regenerate the project lockfile",
					InputSchemaJSON:      `{"type":"object","properties":{}}`,
					RequiredCapabilities: []string{CapProjectManage},
				},
				Handler: h.Lock,
			},
		},
	}
}

type projectHandlers struct {
	client *uv.Client
}

func (h *projectHandlers) Run(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in argsInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if len(in.Args) == 0 {
		return nil, fmt.Errorf("args is required")
	}
	res, err := h.client.Run(ctx, in.Args)
	if err != nil {
		return nil, err
	}
	return resultJSON(res)
}

func (h *projectHandlers) Init(ctx context.Context, _ json.RawMessage) (json.RawMessage, error) {
	res, err := h.client.Init(ctx)
	if err != nil {
		return nil, err
	}
	return resultJSON(res)
}

func (h *projectHandlers) Add(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in installInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if in.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	res, err := h.client.AddDependency(ctx, in.Name, in.Version)
	if err != nil {
		return nil, err
	}
	return resultJSON(res)
}

func (h *projectHandlers) Remove(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	in, err := decodePackageName(input)
	if err != nil {
		return nil, err
	}
	res, err := h.client.RemoveDependency(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	return resultJSON(res)
}

type syncInput struct {
	DryRun bool `json:"dry_run"`
}

func (h *projectHandlers) Sync(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in syncInput
	if len(input) > 0 {
		if err := json.Unmarshal(input, &in); err != nil {
			return nil, fmt.Errorf("invalid input: %w", err)
		}
	}
	res, err := h.client.Sync(ctx, in.DryRun)
	if err != nil {
		return nil, err
	}
	return resultJSON(res)
}

func (h *projectHandlers) Lock(ctx context.Context, _ json.RawMessage) (json.RawMessage, error) {
	res, err := h.client.Lock(ctx)
	if err != nil {
		return nil, err
	}
	return resultJSON(res)
}
