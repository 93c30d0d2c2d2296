package user

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/schooladmin/core"
)

// SuperAdminID is the ID of the first admin. Only they may grant or manage admin rights.
const SuperAdminID = 1

type User struct {
	ID           int     `json:"id"`
	Username     string  `json:"username"`
	GradeCode    *string `json:"grade_code"`
	IsAdmin      bool    `json:"is_admin"`
	PasswordHash []byte  `json:"-"`
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u User) IsSuperAdmin() bool {
	return u.ID == SuperAdminID
}

// Grade returns the grade code the user administers, or "".
func (u User) Grade() string {
	if u.GradeCode == nil {
		return ""
	}
	return *u.GradeCode
}

// NewUser contains information needed to register a new User.
type NewUser struct {
	Username  string  `json:"username" validate:"required,notblank"`
	Password  string  `json:"password" validate:"required"`
	GradeCode *string `json:"grade_code"`
	IsAdmin   bool    `json:"is_admin"`
}

func (nu *NewUser) Validate(v *core.Validator) error {
	nu.Username = core.CleanString(nu.Username)
	if nu.GradeCode != nil {
		nu.GradeCode = core.StringPtr(*nu.GradeCode)
	}
	return v.Struct(nu)
}

// UpdateUser defines what information may be provided to modify an existing User.
type UpdateUser struct {
	Username  *string `json:"username,omitempty" validate:"omitempty,notblank"`
	GradeCode *string `json:"grade_code,omitempty"`
	IsAdmin   *bool   `json:"is_admin,omitempty"`
}

func (uu *UpdateUser) Validate(v *core.Validator) error {
	if uu.Username != nil {
		uname := core.CleanString(*uu.Username)
		uu.Username = &uname
	}
	if uu.GradeCode != nil {
		code := core.CleanString(*uu.GradeCode)
		uu.GradeCode = &code
	}
	return v.Struct(uu)
}

// ResetPassword is an admin setting a new password for another user.
type ResetPassword struct {
	UserID      int    `json:"user_id" validate:"gt=0"`
	NewPassword string `json:"new_password" validate:"required,notblank"`
}

func (rp ResetPassword) Validate(v *core.Validator) error { return v.Struct(rp) }

// Message is the acknowledgement the backend answers mutations with.
type Message struct {
	Message string `json:"message"`
}
