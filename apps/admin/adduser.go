package main

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/shulelabs/shule/core"
	"github.com/shulelabs/shule/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(uname, email, pwd string, super bool) error {
	uname = core.CleanString(uname, true /* lower */)
	email = core.CleanString(email, true /* lower */)
	now := time.Now().UTC()

	usr, err := cli.usrRepo.GetUserByUsernameOrEmail(uname)
	if err != nil {
		if errors.Cause(err) != user.ErrNotFound {
			return err
		}
		usr = user.User{
			ID:        uuid.New().String(),
			Name:      uname,
			Username:  uname,
			Email:     email,
			Role:      user.RoleTeacher,
			CreatedAt: now,
		}
	}
	if super {
		usr.Role = user.RoleSuper
	}
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	usr.UpdatedAt = now

	isActive := true
	if usr.CreatedAt.Equal(now) {
		usr.IsActive = true
		_, err = cli.usrRepo.CreateUser(usr)
		return err
	}
	_, err = cli.usrRepo.UpdateUser(usr, &isActive)
	return err
}
