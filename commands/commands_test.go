package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/giygas/medlabel-api/catalog/entities"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCatalogCommand(t *testing.T) {
	t.Run("lists every entry", func(t *testing.T) {
		out, _, err := run(t, "catalog")
		require.NoError(t, err)

		var entries []entities.CatalogEntry
		require.NoError(t, json.Unmarshal([]byte(out), &entries))
		assert.Len(t, entries, 8)
		assert.Equal(t, "Paracetamol", entries[0].Name)
	})

	t.Run("looks up by name ignoring case", func(t *testing.T) {
		out, _, err := run(t, "catalog", "amoxicillin clavulanate")
		require.NoError(t, err)

		var entry entities.CatalogEntry
		require.NoError(t, json.Unmarshal([]byte(out), &entry))
		assert.Equal(t, "Amoxicillin Clavulanate", entry.Name)
		assert.Equal(t, []string{"Amoxicillin Trihydrate", "Potassium Clavulanate"}, entry.RequiredIngredients)
	})

	t.Run("unknown medicine", func(t *testing.T) {
		_, _, err := run(t, "catalog", "Aspirin")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Aspirin")
	})

	t.Run("yaml output", func(t *testing.T) {
		out, _, err := run(t, "catalog", "Loratadine", "-o", "yaml")
		require.NoError(t, err)

		var entry entities.CatalogEntry
		require.NoError(t, yaml.Unmarshal([]byte(out), &entry))
		assert.Equal(t, "Loratadine", entry.Name)
		assert.Equal(t, []string{"10mg"}, entry.CommonDosages)
	})

	t.Run("custom catalog file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		content := "medicines:\n  - name: Aspirin\n    requiredIngredients: [Acetylsalicylic Acid]\n    commonDosages: [100mg]\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		out, _, err := run(t, "--catalog", path, "catalog", "aspirin")
		require.NoError(t, err)
		assert.Contains(t, out, "Acetylsalicylic Acid")
	})
}

func TestOutputFormatRejected(t *testing.T) {
	_, _, err := run(t, "catalog", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}

func TestValidateCommand(t *testing.T) {
	t.Run("valid record", func(t *testing.T) {
		out, _, err := run(t, "validate", "-n", "paracetamol", "-e", "2099-01-01", "-i", "ACETAMINOPHEN")
		require.NoError(t, err)

		var verdict entities.ValidationVerdict
		require.NoError(t, json.Unmarshal([]byte(out), &verdict))
		assert.True(t, verdict.IsValid)
		assert.Nil(t, verdict.Suggestions)
	})

	t.Run("expired record", func(t *testing.T) {
		out, _, err := run(t, "validate", "-n", "Paracetamol", "-e", "2000-01-01", "-i", "Acetaminophen")
		require.NoError(t, err)

		var verdict entities.ValidationVerdict
		require.NoError(t, json.Unmarshal([]byte(out), &verdict))
		assert.False(t, verdict.IsValid)
		require.NotNil(t, verdict.Suggestions)
		assert.NotEmpty(t, verdict.Suggestions.ExpiryDate)
	})

	t.Run("missing ingredient", func(t *testing.T) {
		out, _, err := run(t, "validate", "-n", "Amoxicillin Clavulanate", "-e", "2099-01-01", "-i", "Amoxicillin Trihydrate")
		require.NoError(t, err)

		var verdict entities.ValidationVerdict
		require.NoError(t, json.Unmarshal([]byte(out), &verdict))
		assert.False(t, verdict.IsValid)
		require.NotNil(t, verdict.Suggestions)
		assert.Equal(t, "Amoxicillin Clavulanate", verdict.Suggestions.MedicineName)
		assert.Equal(t, []string{"Amoxicillin Trihydrate", "Potassium Clavulanate"}, verdict.Suggestions.ActiveIngredients)
	})

	t.Run("name is required", func(t *testing.T) {
		_, _, err := run(t, "validate", "-e", "2099-01-01")
		require.Error(t, err)
	})
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func TestExtractCommand(t *testing.T) {
	dir := t.TempDir()

	t.Run("extracts and validates", func(t *testing.T) {
		path := filepath.Join(dir, "label.png")
		require.NoError(t, os.WriteFile(path, pngHeader, 0o600))

		out, _, err := run(t, "extract", path, "--latency", "0s", "--validate")
		require.NoError(t, err)

		var result struct {
			ScanID  string                      `json:"scanId"`
			Record  *entities.ExtractedRecord   `json:"record"`
			Verdict *entities.ValidationVerdict `json:"verdict"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		assert.NotEmpty(t, result.ScanID)
		require.NotNil(t, result.Record)
		assert.NotEmpty(t, result.Record.MedicineName)
		require.NotNil(t, result.Verdict)
		assert.True(t, result.Verdict.IsValid)
	})

	t.Run("rejects non-image files", func(t *testing.T) {
		path := filepath.Join(dir, "notes.txt")
		require.NoError(t, os.WriteFile(path, []byte("just some text"), 0o600))

		_, _, err := run(t, "extract", path, "--latency", "0s")
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := run(t, "extract", filepath.Join(dir, "nope.png"))
		require.Error(t, err)
	})
}
