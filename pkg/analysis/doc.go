// Package analysis derives statistics and reports from finished search results.
// Everything here is a pure function of a domain.SearchResult; the search engine
// itself only exposes raw paths and counters.
package analysis
