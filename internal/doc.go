// Package internal documents the placement platform server internals.
//
// The internal tree is organized by responsibility:
// - api: HTTP handlers, middleware, problem responses, and routing
// - domain: business logic, the approval workflow, and domain models
// - storage: repository interfaces and their Postgres implementation
// - jobs: River background workers and queues
// - auth, audit, notify, email, config, metrics, sanitize: shared infrastructure
//
// Code in internal/ is not meant for external import.
package internal
