package logging

import (
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetup_WritesToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "kasjer.log")

	closer, err := Setup(file)
	require.NoError(t, err)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
	})

	log.Printf("ERROR: deposit insert failed")
	require.NoError(t, closer.Close())

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Contains(t, string(content), "ERROR: deposit insert failed")
}

func TestSetup_StdoutOnly(t *testing.T) {
	closer, err := Setup("")
	require.NoError(t, err)
	require.NoError(t, closer.Close())
}
