package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListTestsCommandStructure(t *testing.T) {
	assert.NotNil(t, listTestsCmd)
	assert.Equal(t, "list-tests", listTestsCmd.Use)
	assert.NotEmpty(t, listTestsCmd.Short)
	assert.NotEmpty(t, listTestsCmd.Long)
	assert.NotNil(t, listTestsCmd.Run)
}

func TestRunListTests(t *testing.T) {
	var buf bytes.Buffer
	listTestsCmd.SetOut(&buf)

	runListTests(listTestsCmd, []string{})

	output := buf.String()

	// Header columns
	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "FAMILY")
	assert.Contains(t, output, "THRESHOLD")
	assert.Contains(t, output, "MIN SAMPLES")

	// Every built-in test appears
	for _, id := range []string{"ks", "mannwhitney", "ttest", "wasserstein", "kl", "chisquare", "psi"} {
		assert.Contains(t, output, id)
	}

	// Both families appear
	assert.Contains(t, output, "distance")
	assert.Contains(t, output, "frequency")

	assert.Contains(t, output, "Total: 7 test(s)")
}
