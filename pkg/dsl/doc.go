/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing stories.

It allows developers to define branching stories using a type-safe, fluent builder pattern
instead of relying on external YAML or JSON files. This is particularly useful for
unit testing, generated stories, and leveraging IDE autocompletion/type-checking.

Example usage:

	b := dsl.New("Route").Marker("cg_1", "First meeting")

	b.Add("start").
		Title("Opening").
		Text("A message arrives.").
		Go("Answer", "answer").
		Go("Ignore", "bad_end")

	b.Add("answer").Grants("cg_1").Go("Continue", "good_end")
	b.Add("good_end").Ending("good")
	b.Add("bad_end").Ending("bad")

	// The resulting loader can be passed to storypath.New(...)
	loader, err := b.Build()
*/
package dsl
