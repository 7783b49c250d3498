// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - LeagueProvider: Reads league metadata, members and transactions
//   - CopyGenerator: Produces headline/body/tags for an event
//   - ArticleWriter: Persists a rendered article
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Text generation. Without it, copy is produced from templates.
//   - PlayerCache: Player dictionary cache. Without it, the dictionary is fetched every run.
//   - ArticleArchive: Object-storage mirror of written articles.
//   - ContentCommitter / DeployTrigger: Publishing. Without them, publish reports ErrNotConfigured.
//   - Metrics: Run and publish counters.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or copywriter package
package driven
