package domain

// AppVersion is the current snapshot schema version. Loaded snapshots with
// a different version pass through a migration step before use.
const AppVersion = "1.0.0"

// Event is one entry in the append-only engine event log.
type Event struct {
	ID        string         `json:"id"`
	Timestamp int64          `json:"timestamp"` // epoch-ms
	Type      EventType      `json:"type"`
	Data      map[string]any `json:"data"`
}

// Snapshot is the complete persisted form of the engine state. It is the
// unit of the save-blob/load-blob persistence contract and of the
// last-writer-wins sync protocol.
type Snapshot struct {
	AppVersion        string                   `json:"appVersion"`
	LastSavedAt       int64                    `json:"lastSavedAt"` // epoch-ms
	Tasks             map[string]*Task         `json:"tasks"`
	Nodes             []*Node                  `json:"nodes"`
	Edges             []*Edge                  `json:"edges"`
	NodeRelationships map[string]*Relationship `json:"nodeRelationships"`
	Achievements      Achievements             `json:"achievements"`
	GoalCounter       int                      `json:"goalCounter"`
	EventLog          []Event                  `json:"eventLog,omitempty"`
}

// NewSnapshot returns an empty snapshot stamped with the current schema
// version.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		AppVersion:        AppVersion,
		Tasks:             map[string]*Task{},
		NodeRelationships: map[string]*Relationship{},
	}
}
