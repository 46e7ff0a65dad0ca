// Package configfile checks a receiver family loaded with -config.
package configfile

type Session struct{ open bool }

func (s *Session) Begin()    { s.open = true }
func (s *Session) Commit()   { s.open = false }
func (s *Session) Rollback() { s.open = false }

type Manager struct {
	primary, replica *Session
}

func save() error { return nil }

// ===== SHOULD NOT REPORT =====

// [GOOD]: Commit after begin
func goodTx(s *Session) {
	s.Begin()
	s.Commit()
}

// [GOOD]: Rollback and commit are on the same side
func goodTxRollback(s *Session) error {
	s.Begin()
	if err := save(); err != nil {
		s.Rollback()
		return err
	}
	s.Commit()
	return nil
}

// [GOOD]: Either way the transaction ends
func goodTxEither(s *Session, ok bool) {
	s.Begin()
	if ok {
		s.Commit()
	} else {
		s.Rollback()
	}
}

// ===== SHOULD REPORT =====

// [BAD]: Commit on success only
func badTxLeak(s *Session, ok bool) {
	s.Begin()
	if ok {
		s.Commit()
	}
} // want `returning with unbalanced s`

// [BAD]: Primary begun twice
func badNestedBegin(m *Manager) {
	m.primary.Begin()
	m.replica.Begin()
	m.primary.Begin() // want `double call to 'configfile.Session.Begin'`
	m.primary.Commit()
	m.replica.Commit()
}
