package model

import "time"

// SessionCode is the human-visible identifier of a click session
type SessionCode string

const (
	// MaxMembers bounds the number of guests a session can hold
	MaxMembers = 5
	// MaxCodeLength bounds session codes; renames are truncated to this
	MaxCodeLength = 14
)

// Session is a named group whose clicks accumulate into one score.
// The creator is never listed in Members; the full roster is creator + members.
type Session struct {
	Code    SessionCode
	Creator PlayerID // immutable after creation
	Members []PlayerID
	Score   int64
	// ClickMultiplier scales every click recorded against this session
	ClickMultiplier float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasMember reports whether the player appears in the guest member list
func (s *Session) HasMember(id PlayerID) bool {
	for _, m := range s.Members {
		if m == id {
			return true
		}
	}
	return false
}

// Includes reports whether the player is the creator or a member
func (s *Session) Includes(id PlayerID) bool {
	return s.Creator == id || s.HasMember(id)
}

// IsFull reports whether the session has reached its member capacity
func (s *Session) IsFull() bool {
	return len(s.Members) >= MaxMembers
}

// RemoveMember deletes the player from the member list, reporting whether
// anything changed
func (s *Session) RemoveMember(id PlayerID) bool {
	for i, m := range s.Members {
		if m == id {
			s.Members = append(s.Members[:i], s.Members[i+1:]...)
			return true
		}
	}
	return false
}

// Roster returns the creator followed by the members, with no duplicates
func (s *Session) Roster() []PlayerID {
	roster := make([]PlayerID, 0, len(s.Members)+1)
	roster = append(roster, s.Creator)
	for _, m := range s.Members {
		if m != s.Creator {
			roster = append(roster, m)
		}
	}
	return roster
}

// Clone returns a deep copy of the session
func (s *Session) Clone() *Session {
	cp := *s
	cp.Members = make([]PlayerID, len(s.Members))
	copy(cp.Members, s.Members)
	return &cp
}
