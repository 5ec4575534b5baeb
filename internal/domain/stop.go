package domain

// StopRequest is the tagged variant passed to the timer's stop operation.
// Mode decides which fields are read: SubnodeID for StopAllocateExisting,
// NewChildName for StopCreateNew. Note applies to every mode.
type StopRequest struct {
	Mode         StopMode
	Note         string
	SubnodeID    string
	NewChildName string
}

// PlainStop builds a plain-commit stop request.
func PlainStop(note string) StopRequest {
	return StopRequest{Mode: StopPlain, Note: note}
}

// AllocateExisting builds a stop request that credits the elapsed time to
// an existing child.
func AllocateExisting(subnodeID, note string) StopRequest {
	return StopRequest{Mode: StopAllocateExisting, SubnodeID: subnodeID, Note: note}
}

// CreateNew builds a stop request that creates a new child and credits the
// elapsed time to it.
func CreateNew(name, note string) StopRequest {
	return StopRequest{Mode: StopCreateNew, NewChildName: name, Note: note}
}

// AddNoteOnly builds a stop request that only appends a note, leaving the
// timer running.
func AddNoteOnly(note string) StopRequest {
	return StopRequest{Mode: StopNoteOnly, Note: note}
}
