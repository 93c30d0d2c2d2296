package echoapi

import (
	"github.com/pkg/errors"

	"github.com/trezcool/schooladmin/core"
	"github.com/trezcool/schooladmin/core/user"
)

// SeedSuperAdmin creates the super admin from the configured credentials when the store has no user.
func SeedSuperAdmin(store Store, conf *core.Config) (user.User, error) {
	if users := store.Users(); len(users) > 0 {
		return store.UserByID(user.SuperAdminID)
	}

	usr := user.User{Username: conf.Server.AdminUsername, IsAdmin: true}
	if err := usr.SetPassword(conf.Server.AdminPassword); err != nil {
		return user.User{}, errors.Wrap(err, "hashing password")
	}
	usr, err := store.CreateUser(usr)
	if err != nil {
		return user.User{}, errors.Wrap(err, "creating super admin")
	}
	if !usr.IsSuperAdmin() {
		return user.User{}, errors.Errorf("super admin got ID %d", usr.ID)
	}
	return usr, nil
}
