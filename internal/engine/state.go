// Package engine implements the hierarchical time-tracking core: the tree
// store, the per-node timer state machine, the bottom-up time rollup, the
// visibility calculator and the achievement trigger. All state lives in a
// single owned State; every mutation goes through its methods, which is the
// sole concurrency-safety requirement in the single-threaded host.
package engine

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mindmirror/mindmirror/internal/domain"
	"github.com/mindmirror/mindmirror/internal/eventlog"
)

// Config carries engine policy. Zero values fall back to defaults in
// NewState.
type Config struct {
	// MaxChildren bounds a parent's fan-out.
	MaxChildren int
	// MaxLinkDepth caps how deep a link may place a child, counted as the
	// child's 1-based level (a root is level 1, its children level 2).
	// 0 means unbounded. Storage and rollup stay depth-generic either way;
	// this is edit-surface policy, not an engine limit.
	MaxLinkDepth int
	// CrownCooldown rate-limits perfect-alignment achievements.
	CrownCooldown time.Duration
	// CreationGrace suppresses negative feedback right after a node is
	// created, while the new goal is still unworked.
	CreationGrace time.Duration

	// Clock and NewID are injectable for deterministic tests.
	Clock  func() time.Time
	NewID  func() string
	Logger *slog.Logger
}

// DefaultConfig mirrors the policy of the interactive app: fan-out 10,
// child links restricted to one level below a root, 60s crown cooldown,
// 5s creation grace.
func DefaultConfig() Config {
	return Config{
		MaxChildren:   10,
		MaxLinkDepth:  2,
		CrownCooldown: 60 * time.Second,
		CreationGrace: 5 * time.Second,
	}
}

// State is the complete engine state. Operations mutate it in place under
// single-threaded discipline; a reader never observes a partially
// rolled-up tree.
type State struct {
	cfg    Config
	logger *slog.Logger
	now    func() time.Time
	newID  func() string

	nodes     []*domain.Node
	nodeIndex map[string]*domain.Node
	edges     []*domain.Edge
	tasks     map[string]*domain.Task
	rels      map[string]*domain.Relationship

	achievements domain.Achievements
	goalCounter  int
	collapsed    map[string]bool
	events       *eventlog.Log
	lastSavedAt  int64 // epoch-ms stamp of the loaded snapshot; drives LWW sync

	lastAlignment int   // last score seen by the trigger; -1 until first evaluation
	lastCreatedAt int64 // epoch-ms of the most recent node creation
}

func NewState(cfg Config) *State {
	def := DefaultConfig()
	if cfg.MaxChildren == 0 {
		cfg.MaxChildren = def.MaxChildren
	}
	if cfg.CrownCooldown == 0 {
		cfg.CrownCooldown = def.CrownCooldown
	}
	if cfg.CreationGrace == 0 {
		cfg.CreationGrace = def.CreationGrace
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = func() string { return uuid.New().String() }
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &State{
		cfg:           cfg,
		logger:        cfg.Logger,
		now:           cfg.Clock,
		newID:         cfg.NewID,
		nodeIndex:     map[string]*domain.Node{},
		tasks:         map[string]*domain.Task{},
		rels:          map[string]*domain.Relationship{},
		collapsed:     map[string]bool{},
		events:        eventlog.New(),
		lastAlignment: -1,
		achievements:  domain.Achievements{CrownColor: domain.CrownGold},
	}
}

func (s *State) nowMillis() int64 {
	return s.now().UnixMilli()
}

// Task returns the task for a node ID, or nil.
func (s *State) Task(id string) *domain.Task {
	return s.tasks[id]
}

// Node returns the node for an ID, or nil.
func (s *State) Node(id string) *domain.Node {
	return s.nodeIndex[id]
}

// Nodes returns all nodes in creation order.
func (s *State) Nodes() []*domain.Node {
	return s.nodes
}

// Tasks returns the task map keyed by node ID.
func (s *State) Tasks() map[string]*domain.Task {
	return s.tasks
}

// Edges returns the structural edge records.
func (s *State) Edges() []*domain.Edge {
	return s.edges
}

// Relationship returns the relationship entry for a node, or nil if the
// node has never been linked.
func (s *State) Relationship(id string) *domain.Relationship {
	return s.rels[id]
}

// Achievements returns the current crown state.
func (s *State) Achievements() domain.Achievements {
	return s.achievements
}

// Events exposes the engine event log.
func (s *State) Events() *eventlog.Log {
	return s.events
}

// rel returns the relationship entry for a node, creating it lazily.
func (s *State) rel(id string) *domain.Relationship {
	r, ok := s.rels[id]
	if !ok {
		r = &domain.Relationship{}
		s.rels[id] = r
	}
	return r
}
