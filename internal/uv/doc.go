// Package uv wraps the uv Python package manager as a child process.
//
// # Overview
//
// Everything this gateway does ultimately becomes one uv invocation. The
// package is organized around three small layers:
//
//   - Invoker: resolves the uv binary, builds the argument vector, runs the
//     process synchronously with captured output, and classifies failures.
//   - Result: a tagged union of raw stdout text and (when the whole stdout
//     decoded as JSON) a structured value. A result is never partially
//     structured.
//   - Client: the fixed catalog of domain operations (pip list/show/install,
//     project add/remove/sync/lock, virtualenv creation, environment diff),
//     each a single argument-vector mapping over the Invoker.
//
// # Error classification
//
// Three failure kinds, all surfaced unmodified to callers:
//
//   - ErrUVNotFound: the binary could not be located or started.
//   - *CommandError: the process ran and exited non-zero. Carries the full
//     command line, the real exit code, and stderr verbatim.
//   - ErrFileNotFound: a local file precondition failed before any process
//     was spawned (requirements parsing).
//
// A failed JSON decode of structured output is not an error: the result
// degrades to raw text, because uv's JSON support varies by subcommand and
// version.
//
// # Concurrency
//
// Invocations are synchronous and independent. There is no locking around
// the package environment; concurrent mutations are governed by uv itself.
// Every invocation runs under a bounded context so a hung uv process is
// killed rather than stalling the calling request forever.
package uv
