// ABOUTME: Thread-safe registry for built-in tool packs in the gateway.
// ABOUTME: Manages pack registration, tool lookup, and capability-based filtering.

package packs

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// ErrToolCollision indicates a tool name already exists from another pack.
var ErrToolCollision = errors.New("tool name collision")

// registryEntry stores a tool with its pack ID for lookup.
type registryEntry struct {
	Tool   *BuiltinTool
	PackID string
}

// Registry maintains the registered packs and their tools.
type Registry struct {
	mu     sync.RWMutex
	tools  map[string]*registryEntry // tool name -> entry
	packs  map[string][]string       // pack ID -> tool names
	logger *slog.Logger
}

// NewRegistry creates a new Registry instance.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		tools:  make(map[string]*registryEntry),
		packs:  make(map[string][]string),
		logger: logger,
	}
}

// RegisterPack validates and stores a pack and its tools.
// Returns ErrToolCollision if any tool name is already registered.
func (r *Registry) RegisterPack(pack *BuiltinPack) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, tool := range pack.Tools {
		if existing, exists := r.tools[tool.Definition.Name]; exists {
			return fmt.Errorf("%w: tool '%s' already registered by pack '%s'",
				ErrToolCollision, tool.Definition.Name, existing.PackID)
		}
	}

	names := make([]string, 0, len(pack.Tools))
	for _, tool := range pack.Tools {
		r.tools[tool.Definition.Name] = &registryEntry{Tool: tool, PackID: pack.ID}
		names = append(names, tool.Definition.Name)
	}
	sort.Strings(names)
	r.packs[pack.ID] = names

	r.logger.Info("=== PACK REGISTERED ===",
		"pack_id", pack.ID,
		"tool_count", len(pack.Tools),
		"total_tools", len(r.tools),
	)

	return nil
}

// GetTool returns a registered tool by name, or nil if not found.
func (r *Registry) GetTool(name string) *BuiltinTool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if entry, ok := r.tools[name]; ok {
		return entry.Tool
	}
	return nil
}

// GetAllTools returns every registered tool definition, sorted by name.
func (r *Registry) GetAllTools() []*ToolDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*ToolDefinition, 0, len(r.tools))
	for _, entry := range r.tools {
		result = append(result, entry.Tool.Definition)
	}
	sortDefinitions(result)
	return result
}

// GetToolsForCapabilities returns tools where the caller holds ALL required
// capabilities. A tool with no required capabilities is always included.
func (r *Registry) GetToolsForCapabilities(caps []string) []*ToolDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	capSet := make(map[string]struct{}, len(caps))
	for _, c := range caps {
		capSet[c] = struct{}{}
	}

	var result []*ToolDefinition
	for _, entry := range r.tools {
		if hasAllCapabilities(entry.Tool.Definition.RequiredCapabilities, capSet) {
			result = append(result, entry.Tool.Definition)
		}
	}
	sortDefinitions(result)
	return result
}

// PackInfo contains public information about a registered pack.
type PackInfo struct {
	ID        string
	ToolNames []string
}

// ListPacks returns information about all registered packs, sorted by ID.
func (r *Registry) ListPacks() []PackInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]PackInfo, 0, len(r.packs))
	for id, names := range r.packs {
		result = append(result, PackInfo{ID: id, ToolNames: names})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// hasAllCapabilities checks if the capability set contains all required capabilities.
func hasAllCapabilities(required []string, capSet map[string]struct{}) bool {
	for _, req := range required {
		if _, has := capSet[req]; !has {
			return false
		}
	}
	return true
}

func sortDefinitions(defs []*ToolDefinition) {
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
}
