package cmd

import (
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
)

func TestWatchCommandStructure(t *testing.T) {
	assert.NotNil(t, watchCmd)
	assert.Equal(t, "watch", watchCmd.Use)
	assert.NotEmpty(t, watchCmd.Short)
	assert.NotEmpty(t, watchCmd.Long)
	assert.NotNil(t, watchCmd.RunE)

	debounce, err := watchCmd.Flags().GetDuration("debounce")
	assert.NoError(t, err)
	assert.Equal(t, 2*time.Second, debounce)
}

func TestRelevantEvent(t *testing.T) {
	target := "/data/current.csv"

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{
			name:  "write to target",
			event: fsnotify.Event{Name: "/data/current.csv", Op: fsnotify.Write},
			want:  true,
		},
		{
			name:  "create of target",
			event: fsnotify.Event{Name: "/data/current.csv", Op: fsnotify.Create},
			want:  true,
		},
		{
			name:  "unclean path still matches",
			event: fsnotify.Event{Name: "/data/./current.csv", Op: fsnotify.Write},
			want:  true,
		},
		{
			name:  "write to sibling file",
			event: fsnotify.Event{Name: "/data/other.csv", Op: fsnotify.Write},
			want:  false,
		},
		{
			name:  "removal of target",
			event: fsnotify.Event{Name: "/data/current.csv", Op: fsnotify.Remove},
			want:  false,
		},
		{
			name:  "rename of target away",
			event: fsnotify.Event{Name: "/data/current.csv", Op: fsnotify.Rename},
			want:  false,
		},
		{
			name:  "chmod of target",
			event: fsnotify.Event{Name: "/data/current.csv", Op: fsnotify.Chmod},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, relevantEvent(tt.event, target))
		})
	}
}

func TestRunWatchRejectsNonFileSource(t *testing.T) {
	// Save original value and restore after test
	originalCfgFile := cfgFile
	defer func() {
		cfgFile = originalCfgFile
	}()

	dir := t.TempDir()
	refPath := seedCSV(t, dir, "ref.csv", 20)

	content := `reference:
  type: csv
  path: ` + refPath + `
current:
  type: sql
  driver: mysql
  host: localhost
  port: 3306
  user: drift
  database: serving
  query: SELECT age, plan FROM users
logging:
  level: error
`
	cfgFile = writeFile(t, dir, "godrift.yaml", content)

	err := runWatch(watchCmd, []string{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "file-backed")
}
