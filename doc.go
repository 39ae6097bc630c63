/*
Package storypath finds the optimal route through a branching story.

A story is a graph of scenes (nodes) connected by numbered choices. Scenes grant
reward markers, and terminal scenes close the story with an ending category.
storypath enumerates every simple path from the start scene to an ending and
ranks them by score: 10 points per distinct marker collected, plus a bonus for
the ending category (best 50, secret 30, good 20, anything else 10).

# Concept

The search is exhaustive and deterministic. Every branch keeps its own history,
so cycles in the story never cause infinite recursion, and ties between equal
scores are always broken in favor of the path discovered first in declared
choice order. The engine consumes an already validated story and produces
ranked results; loading, rendering, playback and persistence live in adapters.

# Key Features

  - Exhaustive search: every simple path is enumerated, no heuristics.
  - Ending preference: restrict selection to an ending category, with graceful fallback.
  - Target search: find the best path to one specific ending.
  - Cancellation: searches honor context cancellation at every step.
  - Hexagonal Architecture: loaders, report stores, HTTP and MCP are adapters.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/storypath"
	)

	func main() {
		eng, err := storypath.New("./story.json")
		if err != nil {
			log.Fatal(err)
		}

		res, err := eng.FindOptimalPath(context.Background(), "best")
		if err != nil {
			log.Fatal(err)
		}

		if best, ok := res.Best(); ok {
			fmt.Println(best)
		}
	}

For custom sources, pass WithLoader with any ports.StoryLoader, for example the
fluent builder in package dsl.
*/
package storypath
