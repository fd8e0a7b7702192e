// Package checkpoint persists full training state as a single gob file.
// Writes go through a temp file and a rename, so a crash mid-write never
// corrupts the previous checkpoint.
package checkpoint

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"skipgram/internal/domain"
	"skipgram/internal/model"
	"skipgram/internal/vocab"
)

// Snapshot is the self-describing on-disk form: the embedding matrices,
// the output biases and the id-ordered token list. That is enough to
// rebuild the model and the vocabulary exactly; V and h are carried by
// the slice shapes.
type Snapshot struct {
	Dim   int
	Words []string
	WIn   [][]float64
	WOut  [][]float64
	BOut  []float64
}

// Save writes the model and vocabulary to path atomically. Any failure
// comes back as a CheckpointIOError and leaves whatever was at path
// untouched.
func Save(path string, m *model.Model, v *vocab.Vocabulary) error {
	if m.VocabSize() != v.Size() {
		return &domain.CheckpointIOError{
			Path: path,
			Err:  fmt.Errorf("model has %d rows, vocabulary has %d words", m.VocabSize(), v.Size()),
		}
	}
	st := m.State()
	snap := Snapshot{Dim: st.Dim, Words: v.Words(), WIn: st.WIn, WOut: st.WOut, BOut: st.BOut}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return &domain.CheckpointIOError{Path: path, Err: err}
	}
	defer os.Remove(tmp.Name())
	if err := gob.NewEncoder(tmp).Encode(snap); err != nil {
		tmp.Close()
		return &domain.CheckpointIOError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &domain.CheckpointIOError{Path: path, Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return &domain.CheckpointIOError{Path: path, Err: err}
	}
	return nil
}

// Load reads a snapshot and rebuilds the model and the vocabulary.
func Load(path string) (*model.Model, *vocab.Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &domain.CheckpointIOError{Path: path, Err: err}
	}
	defer f.Close()
	var snap Snapshot
	if err := gob.NewDecoder(f).Decode(&snap); err != nil {
		return nil, nil, &domain.CheckpointIOError{Path: path, Err: err}
	}
	if len(snap.Words) != len(snap.WIn) {
		return nil, nil, &domain.CheckpointIOError{
			Path: path,
			Err:  fmt.Errorf("snapshot has %d words but %d embedding rows", len(snap.Words), len(snap.WIn)),
		}
	}
	m, err := model.FromState(model.State{Dim: snap.Dim, WIn: snap.WIn, WOut: snap.WOut, BOut: snap.BOut})
	if err != nil {
		return nil, nil, &domain.CheckpointIOError{Path: path, Err: err}
	}
	return m, vocab.Restore(snap.Words), nil
}
