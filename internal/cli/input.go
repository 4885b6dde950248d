package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/okian/keel/internal/domain/model"
	"github.com/okian/keel/internal/domain/utility"
)

// Document is the snapshot file format accepted by the analyze command: the
// roster and assignments to score plus the records the strategies consume.
type Document struct {
	Participants []model.Participant                  `json:"participants"`
	Assignments  []model.Assignment                   `json:"assignments"`
	Profiles     map[string]utility.PreferenceProfile `json:"profiles"`
	History      []utility.SwapRecord                 `json:"history"`
}

// Snapshot extracts the schedule snapshot from the document.
func (d *Document) Snapshot() *model.Snapshot {
	return &model.Snapshot{
		Participants: d.Participants,
		Assignments:  d.Assignments,
	}
}

// Strategy builds the named utility strategy from the document's records.
func (d *Document) Strategy(name string) (utility.Strategy, error) {
	switch name {
	case "preference":
		return utility.NewPreferenceStrategy(d.Profiles), nil
	case "trail":
		return utility.NewTrailStrategy(d.History), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (want preference or trail)", name)
	}
}

// readDocument loads and decodes a snapshot document from path.
func readDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode snapshot file: %w", err)
	}
	return &doc, nil
}
