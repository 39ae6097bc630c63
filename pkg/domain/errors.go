package domain

import "errors"

// ErrNodeNotFound is returned when a node ID cannot be resolved in the story.
var ErrNodeNotFound = errors.New("node not found")

// ErrStartNodeNotFound is returned when the designated start node is missing.
var ErrStartNodeNotFound = errors.New("start node not found")

// ErrNoEndingNodes is returned when a story declares no terminal node.
var ErrNoEndingNodes = errors.New("story has no ending nodes")

// ErrDanglingChoice is returned when a choice points to a node that does not exist.
var ErrDanglingChoice = errors.New("choice destination does not exist")

// ErrEndingCategoryMismatch is returned when a terminal node has no ending
// category, or a non-terminal node declares one.
var ErrEndingCategoryMismatch = errors.New("ending category must be set exactly on terminal nodes")

// ErrIncompletePath is returned when an operation requires a completed path.
var ErrIncompletePath = errors.New("path is not complete")

// ErrInvalidPath is returned when a node sequence cannot be walked in the story.
var ErrInvalidPath = errors.New("invalid path")

// ErrReportNotFound is returned when a report ID cannot be found in the store.
var ErrReportNotFound = errors.New("report not found")

// ErrInvalidDocument is returned when a story document is malformed.
var ErrInvalidDocument = errors.New("invalid story document")
