package auth

import "github.com/dmitrijs2005/finkeeper/internal/models"

// Status names the phase of the session state machine:
// Anonymous → Authenticating → Authenticated → Anonymous.
type Status string

const (
	StatusAnonymous      Status = "anonymous"
	StatusAuthenticating Status = "authenticating"
	StatusAuthenticated  Status = "authenticated"
)

// State is the observable session state owned by the auth service. Session
// is non-nil exactly when Status is StatusAuthenticated.
type State struct {
	Status  Status
	Session *models.SessionRecord
}

// setState swaps the current state and notifies subscribers outside the
// lock, so a subscriber may call back into the service.
func (s *Service) setState(st State) {
	s.mu.Lock()
	s.state = st
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(st)
	}
}

// Subscribe registers fn to be called on every state change and returns an
// unsubscribe function. There is no ambient singleton: anyone interested in
// the current user observes it through here or CurrentSession.
func (s *Service) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// CurrentState returns the current session state.
func (s *Service) CurrentState() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentSession returns the active session, or nil when anonymous.
func (s *Service) CurrentSession() *models.SessionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Session
}
