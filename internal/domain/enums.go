package domain

type NoteType string

const (
	NotePlain             NoteType = "note"
	NoteStart             NoteType = "start_note"
	NoteStop              NoteType = "stop_note"
	NoteAdjustment        NoteType = "adjustment"
	NoteAllocation        NoteType = "allocation"
	NoteCreation          NoteType = "creation"
	NoteSimultaneousTimer NoteType = "simultaneous_timer_note"
)

type CrownColor string

const (
	CrownGold  CrownColor = "gold"
	CrownGreen CrownColor = "green"
	CrownBlue  CrownColor = "blue"
)

// EffectSeverity grades negative alignment feedback from mildest to
// harshest.
type EffectSeverity string

const (
	EffectFlash   EffectSeverity = "flash"
	EffectDouble  EffectSeverity = "double"
	EffectMulti   EffectSeverity = "multi"
	EffectBarrage EffectSeverity = "barrage"
)

type EventType string

const (
	EventNodeMove        EventType = "NODE_MOVE"
	EventNodeCreate      EventType = "NODE_CREATE"
	EventNodeLink        EventType = "NODE_LINK"
	EventTimerStart      EventType = "TIMER_START"
	EventTimerStop       EventType = "TIMER_STOP"
	EventAlignmentChange EventType = "ALIGNMENT_CHANGE"
)

// StopMode selects what happens to the elapsed time when a timer stops.
type StopMode string

const (
	// StopPlain commits the elapsed time to the stopped node itself.
	StopPlain StopMode = "plain"
	// StopAllocateExisting commits the elapsed time to a named existing
	// child instead of the stopped node.
	StopAllocateExisting StopMode = "allocate_existing"
	// StopCreateNew creates a brand-new child and commits the elapsed
	// time to it.
	StopCreateNew StopMode = "create_new"
	// StopNoteOnly appends a note to the running interval and leaves the
	// timer running.
	StopNoteOnly StopMode = "add_note_only"
)
