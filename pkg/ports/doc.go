/*
Package ports defines the driven ports (interfaces) for the storypath engine.

These interfaces decouple the core search from external implementations, allowing
the engine to work with various story sources and report storage backends.

# Key Interfaces

  - StoryLoader: Produces a validated Story (e.g., from a JSON/YAML file or memory).
  - ReportStore: Persists finished search reports (file, Redis or memory).
*/
package ports
