package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurobon/gitviz/internal/state"
)

func TestRunPlay(t *testing.T) {
	in := strings.NewReader(strings.Join([]string{
		"git commit -m 'first'",
		"git branch feature",
		"git branch feature",
		"git status",
		"exit",
		"git commit -m 'never'",
	}, "\n"))
	var out bytes.Buffer

	require.NoError(t, runPlay(context.Background(), in, &out, state.DefaultOptions()))
	text := out.String()

	assert.Contains(t, text, "[master c2] first")
	assert.Contains(t, text, "already exists")
	assert.Contains(t, text, "On branch master")
	assert.NotContains(t, text, "never")
	// Initial draw plus one per mutating command.
	assert.Equal(t, 3, strings.Count(text, "master (HEAD)"))
}

func TestRunPlay_EOF(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runPlay(context.Background(), strings.NewReader("select c1\n"), &out, state.DefaultOptions()))
	assert.Contains(t, out.String(), "Selected c1: initial commit")
	assert.Equal(t, 2, strings.Count(out.String(), "master (HEAD)"), "selection redraws")
}
