package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/aretw0/storypath"
	"github.com/aretw0/storypath/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintResult_PreferredCategoryTop(t *testing.T) {
	b := dsl.New("Routes")
	b.Add("start").Go("Zen", "zen").Go("Seven", "seven")
	b.Add("zen").Grants("cg_a").Go("Visit", "zen_good_ending").Go("Call", "zen_other_ending")
	b.Add("seven").Grants("cg_a", "cg_b").Go("Door", "seven_best_ending")
	b.Add("zen_good_ending").Ending("good")
	b.Add("zen_other_ending").Ending("good")
	b.Add("seven_best_ending").Ending("best")
	loader, err := b.Build()
	require.NoError(t, err)
	engine, err := storypath.New("", storypath.WithLoader(loader))
	require.NoError(t, err)

	res, err := search(context.Background(), engine, "good", "")
	require.NoError(t, err)
	best, ok := res.Best()
	require.True(t, ok)

	var buf bytes.Buffer
	printResult(&buf, res, 5)
	out := buf.String()

	require.Contains(t, out, "Top paths:")
	top := out[strings.Index(out, "Top paths:"):]
	assert.Contains(t, top, "1. "+best.String())
	assert.NotContains(t, top, "seven_best_ending")
	assert.Contains(t, out, "3 complete")
}
