package session

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/schooladmin/core"
	"github.com/trezcool/schooladmin/core/grade"
)

var (
	ErrNotAuthenticated = errors.New("not logged in")
	ErrForbidden        = errors.New("Admin permission required")
)

// Themes
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
	ThemePlain = "plain"
)

type (
	// State is what survives between two runs of the console.
	State struct {
		Token  string
		Theme  string
		ViewAs string
	}

	Store interface {
		Load() (State, error)
		Save(st State) error
	}

	Authenticator interface {
		// Login exchanges credentials for an access token.
		Login(ctx context.Context, username, password string) (string, error)
	}

	// GradeSelection reads the grade an admin chose to administer.
	GradeSelection interface {
		SelectedGrade(ctx context.Context) (grade.Grade, error)
	}
)

// Session holds the decoded identity of the operator, their role override and, for admins,
// the grade they administer.
type Session struct {
	store  Store
	auth   Authenticator
	grades GradeSelection
	bus    *core.Bus
	logger core.Logger
	now    func() time.Time

	// DefaultTheme is used until the operator picks a theme.
	DefaultTheme string

	mu         sync.Mutex
	state      State
	identity   *Identity
	adminGrade *grade.Grade

	unsubscribe func()
}

func New(store Store, auth Authenticator, grades GradeSelection, bus *core.Bus, logger core.Logger) *Session {
	s := &Session{
		store:  store,
		auth:   auth,
		grades: grades,
		bus:    bus,
		logger: logger,
		now:    time.Now,

		DefaultTheme: ThemeDark,
	}
	if bus != nil {
		s.unsubscribe = bus.OnExternalStateChanged(func(evt core.Event) {
			if evt == core.EventAdminGradeChanged {
				s.reloadAdminGrade(context.Background())
			}
		})
	}
	return s
}

// Close detaches the session from the bus.
func (s *Session) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

// Restore loads the persisted state. An expired or undecodable token is dropped.
func (s *Session) Restore(ctx context.Context) error {
	st, err := s.store.Load()
	if err != nil {
		return errors.Wrap(err, "loading state")
	}

	s.mu.Lock()
	s.state = st
	s.identity = nil
	var dropped bool
	if st.Token != "" {
		id, err := DecodeToken(st.Token, s.now())
		if err != nil {
			s.clearLocked()
			dropped = true
		} else {
			s.identity = &id
		}
	}
	s.mu.Unlock()

	if dropped {
		return s.persist()
	}
	s.reloadAdminGrade(ctx)
	return nil
}

// Login authenticates the operator and persists the access token.
func (s *Session) Login(ctx context.Context, username, password string) (Identity, error) {
	username = core.CleanString(username)
	if username == "" || password == "" {
		return Identity{}, core.NewValidationError(errors.New("Please enter username and password"))
	}
	token, err := s.auth.Login(ctx, username, password)
	if err != nil {
		return Identity{}, errors.Wrap(err, "logging in")
	}
	id, err := DecodeToken(token, s.now())
	if err != nil {
		return Identity{}, err
	}

	s.mu.Lock()
	s.state.Token = token
	s.state.ViewAs = ""
	s.identity = &id
	s.adminGrade = nil
	s.mu.Unlock()

	if err := s.persist(); err != nil {
		return Identity{}, err
	}
	s.reloadAdminGrade(ctx)
	s.notify()
	return id, nil
}

// Logout forgets the token and the role override.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.clearLocked()
	s.mu.Unlock()
	if err := s.persist(); err != nil {
		return err
	}
	s.notify()
	return nil
}

func (s *Session) notify() {
	if s.bus != nil {
		s.bus.Notify(core.EventSessionChanged)
	}
}

func (s *Session) clearLocked() {
	s.state.Token = ""
	s.state.ViewAs = ""
	s.identity = nil
	s.adminGrade = nil
}

func (s *Session) persist() error {
	s.mu.Lock()
	st := s.state
	s.mu.Unlock()
	return errors.Wrap(s.store.Save(st), "saving state")
}

// Token returns the bearer token, or "" once it expired (the session is then cleared).
func (s *Session) Token() string {
	s.mu.Lock()
	if s.identity == nil {
		s.mu.Unlock()
		return ""
	}
	if exp := s.identity.ExpiresAt; !exp.IsZero() && !s.now().Before(exp) {
		s.clearLocked()
		s.mu.Unlock()
		if err := s.persist(); err != nil && s.logger != nil {
			s.logger.Error("clearing expired session", err)
		}
		return ""
	}
	token := s.state.Token
	s.mu.Unlock()
	return token
}

// Identity returns who is logged in.
func (s *Session) Identity() (Identity, bool) {
	if s.Token() == "" {
		return Identity{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

// EffectiveRole is the role override when one is set, the token's role otherwise.
func (s *Session) EffectiveRole() (Role, error) {
	id, ok := s.Identity()
	if !ok {
		return "", ErrNotAuthenticated
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.ViewAs != "" {
		if role, err := ParseRole(s.state.ViewAs); err == nil {
			return role, nil
		}
	}
	return id.Role(), nil
}

// SetViewAs renders the console as role. Only admins may preview another role.
func (s *Session) SetViewAs(role Role) error {
	id, ok := s.Identity()
	if !ok {
		return ErrNotAuthenticated
	}
	if !id.IsAdmin && role != id.Role() {
		return ErrForbidden
	}
	s.mu.Lock()
	if role == id.Role() {
		s.state.ViewAs = ""
	} else {
		s.state.ViewAs = string(role)
	}
	s.mu.Unlock()
	if err := s.persist(); err != nil {
		return err
	}
	s.notify()
	return nil
}

func (s *Session) ClearViewAs() error {
	s.mu.Lock()
	s.state.ViewAs = ""
	s.mu.Unlock()
	if err := s.persist(); err != nil {
		return err
	}
	s.notify()
	return nil
}

// AdminGrade returns the grade the logged in admin administers, if any.
func (s *Session) AdminGrade() (grade.Grade, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.adminGrade == nil {
		return grade.Grade{}, false
	}
	return *s.adminGrade, true
}

func (s *Session) reloadAdminGrade(ctx context.Context) {
	id, ok := s.Identity()
	if !ok || !id.IsAdmin || s.grades == nil {
		return
	}
	g, err := s.grades.SelectedGrade(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.adminGrade = nil
		if !core.IsNotFound(err) && s.logger != nil {
			s.logger.Warn("loading selected grade", err)
		}
		return
	}
	s.adminGrade = &g
}

func (s *Session) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Theme == "" {
		return s.DefaultTheme
	}
	return s.state.Theme
}

func (s *Session) SetTheme(theme string) error {
	switch theme {
	case ThemeDark, ThemeLight, ThemePlain:
	default:
		return core.NewValidationError(errors.Errorf("unknown theme %q", theme))
	}
	s.mu.Lock()
	s.state.Theme = theme
	s.mu.Unlock()
	return s.persist()
}
