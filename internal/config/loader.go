package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// rawFile mirrors the on-disk TOML shape; durations are expressed in
// milliseconds since TOML has no native duration type.
type rawFile struct {
	MaxHistoryLength      int  `toml:"max_history_length"`
	HistoryDebounceTimeMS int  `toml:"history_debounce_time_ms"`
	NewGroupDelayMS       int  `toml:"new_group_delay_ms"`
	GlobalUndoRedo        bool `toml:"global_undo_redo"`
}

// Loader reads Options from a TOML file, falling back to Default for
// any field the file omits.
type Loader struct {
	path string
}

// NewLoader returns a Loader reading from path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads and parses the config file. A missing file is not an
// error: it yields Default unmodified, since the engine is fully
// functional without any config file present.
func (l *Loader) Load() (Options, error) {
	opts := Default()

	data, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		return opts, nil
	}
	if err != nil {
		return opts, fmt.Errorf("config: read %s: %w", l.path, err)
	}

	var raw rawFile
	raw.MaxHistoryLength = opts.MaxHistoryLength
	raw.HistoryDebounceTimeMS = int(opts.HistoryDebounceTime / time.Millisecond)
	raw.NewGroupDelayMS = int(opts.NewGroupDelay / time.Millisecond)
	raw.GlobalUndoRedo = opts.GlobalUndoRedo

	if err := toml.Unmarshal(data, &raw); err != nil {
		return opts, fmt.Errorf("config: parse %s: %w", l.path, err)
	}

	opts.MaxHistoryLength = raw.MaxHistoryLength
	opts.HistoryDebounceTime = time.Duration(raw.HistoryDebounceTimeMS) * time.Millisecond
	opts.NewGroupDelay = time.Duration(raw.NewGroupDelayMS) * time.Millisecond
	opts.GlobalUndoRedo = raw.GlobalUndoRedo

	return opts, nil
}
