// Package builtins defines the uv-backed tool packs and resources served
// over MCP.
//
// # Packs
//
// Three packs cover the domain-operation catalog:
//
//	builtin:pip      - pip_list, pip_outdated, pip_show, pip_check_installed,
//	                   parse_requirements, pip_install, pip_uninstall,
//	                   pip_upgrade, pip
//	builtin:project  - run, init, add, remove, sync, lock
//	builtin:envs     - venv_create, compare_environments
//
// Read-style tools require the "packages:read" capability; mutating tools
// require "packages:manage", "project:manage", or "envs:manage".
//
// # Result shape
//
// Tools backed by structured uv output return uv's JSON verbatim. Tools
// backed by text output return {"output": "<stdout>"}. Handler failures
// propagate as errors; the router converts them to tool errors with the
// full command/exit-code/stderr diagnostics preserved.
//
// # Resources
//
// The Catalog type additionally exposes read-only resources:
//
//	packages://installed      - installed package listing
//	packages://outdated       - packages with newer versions available
//	packages://{name}/info    - per-package details
//	requirements://{path}     - resolved requirements-file content
//
// Resources have no structured error channel, so read failures are
// rendered as descriptive text instead of protocol errors.
package builtins
