package util

import (
	"os/exec"
	"testing"

	"github.com/nakachan-ing/notes-cli/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditText_KeepsUnchangedText(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true(1) not available")
	}

	got, err := EditText("  draft text\n", model.Config{Editor: "true"})
	require.NoError(t, err)
	assert.Equal(t, "draft text", got)
}

func TestEditText_EditorFailure(t *testing.T) {
	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("false(1) not available")
	}

	_, err := EditText("draft", model.Config{Editor: "false"})
	assert.Error(t, err)
}
