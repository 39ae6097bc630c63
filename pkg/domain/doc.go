/*
Package domain contains the core domain models for the storypath search engine.

It defines the immutable description of a branching story and the values the
search produces. This package is kept pure and free of external dependencies
like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Node: A scene in the story. Grants reward markers and offers Choices; terminal nodes carry an ending category.
  - Choice: A labeled edge from one Node to another, unique by ID within its owning Node.
  - Story: The graph itself (nodes, marker descriptions, start node).
  - Path: An immutable accumulator of visited nodes, taken choices and collected markers.
  - SearchResult: The ranked outcome of one search run, with its run statistics.
  - Report: A persisted, finished summary of a SearchResult.
*/
package domain
