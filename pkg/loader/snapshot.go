package loader

import (
	"errors"
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/rankvote/pkg/debug"
	"github.com/vanderheijden86/rankvote/pkg/metrics"
	"github.com/vanderheijden86/rankvote/pkg/voting"
)

// DefaultSnapshotFile is where the session is persisted unless overridden.
const DefaultSnapshotFile = "save.json"

// SnapshotVersion is written into every snapshot.
const SnapshotVersion = 1

// ErrCorruptSnapshot is returned when a snapshot exists but cannot be used.
var ErrCorruptSnapshot = errors.New("corrupt snapshot")

type snapshotFile struct {
	Version int `json:"version"`
	voting.State
}

// EncodeSnapshot renders the full session state as indented JSON.
func EncodeSnapshot(v *voting.Voting) ([]byte, error) {
	data, err := json.MarshalIndent(snapshotFile{Version: SnapshotVersion, State: v.State()}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses and validates a snapshot.
func DecodeSnapshot(data []byte) (*voting.Voting, error) {
	var snap snapshotFile
	if err := json.Unmarshal(stripBOM(data), &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if snap.Version > SnapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptSnapshot, snap.Version)
	}
	v, err := voting.FromState(snap.State)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	return v, nil
}

// LoadSnapshot reads the snapshot at path. The returned session persists back
// to path.
func LoadSnapshot(path string) (*voting.Voting, error) {
	defer metrics.Timer(metrics.SnapshotLoad)()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	v, err := DecodeSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if v.Path() != path {
		debug.Log("snapshot %s records path %q; using the file it was read from", path, v.Path())
		v.SetPath(path)
	}
	return v, nil
}

// SaveSnapshot writes the full session to its own path.
func SaveSnapshot(v *voting.Voting) error {
	defer metrics.Timer(metrics.SnapshotSave)()

	if v.Path() == "" {
		return errors.New("snapshot path not set")
	}
	data, err := EncodeSnapshot(v)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(v.Path(), data); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

// FileStore persists sessions with SaveSnapshot.
type FileStore struct{}

// Save implements the controller's snapshot store.
func (FileStore) Save(v *voting.Voting) error {
	return SaveSnapshot(v)
}
