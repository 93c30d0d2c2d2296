package session

import (
	"context"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/schooladmin/core"
	"github.com/trezcool/schooladmin/core/grade"
)

type memStore struct {
	state State
	saves int
}

func (m *memStore) Load() (State, error) { return m.state, nil }

func (m *memStore) Save(st State) error {
	m.state = st
	m.saves++
	return nil
}

type fakeAuth struct {
	token string
	err   error
}

func (a fakeAuth) Login(context.Context, string, string) (string, error) { return a.token, a.err }

type fakeGrades struct {
	grade grade.Grade
	err   error
	calls int
}

func (g *fakeGrades) SelectedGrade(context.Context) (grade.Grade, error) {
	g.calls++
	return g.grade, g.err
}

func signToken(t *testing.T, username string, isAdmin bool, exp time.Time) string {
	claims := Claims{IsAdmin: isAdmin}
	claims.Subject = username
	if !exp.IsZero() {
		claims.ExpiresAt = exp.Unix()
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return token
}

func TestDecodeToken(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name    string
		token   string
		want    Identity
		wantErr error
	}{
		{
			name:  "admin",
			token: signToken(t, "admin", true, now.Add(time.Hour)),
			want:  Identity{Username: "admin", IsAdmin: true, ExpiresAt: time.Unix(now.Add(time.Hour).Unix(), 0)},
		},
		{name: "no expiry", token: signToken(t, "teacher", false, time.Time{}), want: Identity{Username: "teacher"}},
		{name: "expired", token: signToken(t, "admin", true, now.Add(-time.Minute)), wantErr: ErrTokenExpired},
		{name: "garbage", token: "not.a.token", wantErr: ErrInvalidToken},
		{name: "empty", token: "", wantErr: ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeToken(tt.token, now)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, errors.Cause(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSession_LoginAndRoles(t *testing.T) {
	store := new(memStore)
	grades := &fakeGrades{grade: grade.Grade{ID: 3, Code: "G11"}}
	sess := New(store, fakeAuth{token: signToken(t, "admin", true, time.Now().Add(time.Hour))}, grades, nil, nil)

	_, err := sess.EffectiveRole()
	assert.Equal(t, ErrNotAuthenticated, err)

	id, err := sess.Login(context.Background(), " admin ", "pwd")
	require.NoError(t, err)
	assert.Equal(t, "admin", id.Username)
	assert.NotEmpty(t, store.state.Token, "token persisted")

	role, err := sess.EffectiveRole()
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)

	g, ok := sess.AdminGrade()
	require.True(t, ok)
	assert.Equal(t, "G11", g.Code)

	require.NoError(t, sess.SetViewAs(RoleUser))
	role, _ = sess.EffectiveRole()
	assert.Equal(t, RoleUser, role, "override wins")
	assert.Equal(t, "user", store.state.ViewAs)

	require.NoError(t, sess.ClearViewAs())
	role, _ = sess.EffectiveRole()
	assert.Equal(t, RoleAdmin, role)

	require.NoError(t, sess.Logout())
	assert.Empty(t, store.state.Token)
	assert.Empty(t, sess.Token())
}

func TestSession_LoginValidation(t *testing.T) {
	sess := New(new(memStore), fakeAuth{}, nil, nil, nil)
	_, err := sess.Login(context.Background(), "  ", "pwd")
	assert.True(t, core.IsValidation(err))
}

func TestSession_UserCannotViewAsAdmin(t *testing.T) {
	sess := New(new(memStore), fakeAuth{token: signToken(t, "teacher", false, time.Time{})}, nil, nil, nil)
	_, err := sess.Login(context.Background(), "teacher", "pwd")
	require.NoError(t, err)

	assert.Equal(t, ErrForbidden, sess.SetViewAs(RoleAdmin))
	role, _ := sess.EffectiveRole()
	assert.Equal(t, RoleUser, role)
}

func TestSession_RestoreDropsExpiredToken(t *testing.T) {
	store := &memStore{state: State{Token: signToken(t, "admin", true, time.Now().Add(-time.Hour)), Theme: ThemeLight}}
	sess := New(store, fakeAuth{}, nil, nil, nil)

	require.NoError(t, sess.Restore(context.Background()))
	_, ok := sess.Identity()
	assert.False(t, ok)
	assert.Empty(t, store.state.Token)
	assert.Equal(t, ThemeLight, store.state.Theme, "theme survives")
}

func TestSession_TokenExpiresWhileRunning(t *testing.T) {
	store := &memStore{state: State{Token: signToken(t, "admin", true, time.Now().Add(time.Minute))}}
	sess := New(store, fakeAuth{}, nil, nil, nil)
	require.NoError(t, sess.Restore(context.Background()))
	assert.NotEmpty(t, sess.Token())

	sess.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	assert.Empty(t, sess.Token())
	assert.Empty(t, store.state.Token, "expired token cleared from the store")
}

func TestSession_ReloadsAdminGradeOnBusEvent(t *testing.T) {
	bus := core.NewBus()
	grades := &fakeGrades{err: &core.APIError{Status: 404, Detail: "Any Grade is not assigned to you"}}
	store := &memStore{state: State{Token: signToken(t, "admin", true, time.Time{})}}
	sess := New(store, fakeAuth{}, grades, bus, nil)
	defer sess.Close()

	require.NoError(t, sess.Restore(context.Background()))
	_, ok := sess.AdminGrade()
	assert.False(t, ok)

	grades.err = nil
	grades.grade = grade.Grade{ID: 5, Code: "G12"}
	bus.Notify(core.EventAdminGradeChanged)
	g, ok := sess.AdminGrade()
	require.True(t, ok)
	assert.Equal(t, 5, g.ID)
	assert.Equal(t, 2, grades.calls)

	sess.Close()
	bus.Notify(core.EventAdminGradeChanged)
	assert.Equal(t, 2, grades.calls, "unsubscribed")
}

func TestSession_Theme(t *testing.T) {
	store := new(memStore)
	sess := New(store, fakeAuth{}, nil, nil, nil)
	assert.Equal(t, ThemeDark, sess.Theme())
	assert.True(t, core.IsValidation(sess.SetTheme("neon")))
	require.NoError(t, sess.SetTheme(ThemePlain))
	assert.Equal(t, ThemePlain, sess.Theme())
	assert.Equal(t, ThemePlain, store.state.Theme)
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole(" Admin ")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)
	_, err = ParseRole("root")
	assert.Error(t, err)
}

func TestSession_NotifiesSessionChanges(t *testing.T) {
	bus := core.NewBus()
	var events []core.Event
	unsubscribe := bus.OnExternalStateChanged(func(evt core.Event) { events = append(events, evt) })
	defer unsubscribe()

	sess := New(new(memStore), fakeAuth{token: signToken(t, "admin", true, time.Time{})}, nil, bus, nil)
	defer sess.Close()

	_, err := sess.Login(context.Background(), "admin", "pwd")
	require.NoError(t, err)
	require.NoError(t, sess.SetViewAs(RoleUser))
	require.NoError(t, sess.ClearViewAs())
	require.NoError(t, sess.Logout())
	require.NoError(t, sess.SetTheme(ThemeLight))

	assert.Equal(t, []core.Event{
		core.EventSessionChanged, core.EventSessionChanged, core.EventSessionChanged, core.EventSessionChanged,
	}, events, "theme changes are local")
}
