// Package domain defines the core business entities for the newsroom.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawTransaction: A loosely-typed transaction record from the league provider
//   - Bundle: Everything fetched for one run
//   - Identity / PlayerRef: Display identities resolved from opaque ids
//   - Event: The canonical trade or signing produced by normalisation
//   - Copy: Headline, body and tags for one event
//   - Article: A rendered content file
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
