// Package diag defines the diagnostic model shared by every pipeline phase.
//
// # Purpose
//
//   - Provide deterministic, serialisable records for findings produced by
//     the lexer, parser, HIR lowering, inference, codegen, and the contract
//     verifier.
//   - Offer light-weight plumbing (Reporter, Bag) so producers can emit
//     diagnostics without coupling to storage or formatting.
//
// # Scope
//
// Package diag performs no formatting and no IO. Rendering lives in
// internal/diagfmt; orchestration lives in the driver.
//
// # Data model
//
// Diagnostic is the central record: Severity, a stable numeric Code, a
// short Message, the Primary span, and optional Notes and Fixes. A Bag
// accumulates diagnostics for one compilation; it is never thrown across
// a stage boundary. Fatal pipeline states (malformed HIR, a codegen bug)
// travel as Go errors instead and abort the enclosing module.
package diag
