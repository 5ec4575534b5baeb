package domain

import "strconv"

// Achievements is the process-wide crown state, persisted with the rest of
// the snapshot.
type Achievements struct {
	CrownCount            int        `json:"crownCount"`
	LastCrownTime         int64      `json:"lastCrownTime,omitempty"` // epoch-ms; 0 if never
	CrownColor            CrownColor `json:"crownColor"`
	IsPermanentBackground bool       `json:"isPermanentBackground"`
}

// StackLabel is the "^<n>" marker rendered next to a stacked crown.
// Empty until more than one crown has been earned.
func (a Achievements) StackLabel() string {
	if a.CrownCount <= 1 {
		return ""
	}
	return "^" + strconv.Itoa(a.CrownCount)
}
