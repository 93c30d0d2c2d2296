// Package statefile keeps the console state (access token, theme, role override) in a JSON file
// readable only by its owner.
package statefile

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/trezcool/schooladmin/core/session"
)

const (
	keyToken  = "token"
	keyTheme  = "theme"
	keyViewAs = "view_as"

	filePerm = 0o600
	dirPerm  = 0o700
)

type Store struct {
	path string
}

var _ session.Store = (*Store)(nil)

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load reads the state. A missing file is an empty state.
func (s *Store) Load() (session.State, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return session.State{}, nil
	}

	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return session.State{}, errors.Wrapf(err, "reading %s", s.path)
	}
	return session.State{
		Token:  v.GetString(keyToken),
		Theme:  v.GetString(keyTheme),
		ViewAs: v.GetString(keyViewAs),
	}, nil
}

// Save replaces the state file.
func (s *Store) Save(st session.State) error {
	if err := os.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		return errors.Wrapf(err, "creating %s", filepath.Dir(s.path))
	}

	v := viper.New()
	v.SetConfigType("json")
	v.Set(keyToken, st.Token)
	v.Set(keyTheme, st.Theme)
	v.Set(keyViewAs, st.ViewAs)
	if err := v.WriteConfigAs(s.path); err != nil {
		return errors.Wrapf(err, "writing %s", s.path)
	}
	return errors.Wrapf(os.Chmod(s.path, filePerm), "restricting %s", s.path)
}
