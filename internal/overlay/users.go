package overlay

import (
	"fmt"

	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/changestore"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/kv"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/models"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/remote"
)

// Users is the overlay over remote /users
type Users = Service[remote.User, models.User]

// userRoles is indexed by listing position modulo 3
var userRoles = [...]models.Role{models.RoleAdmin, models.RoleUser, models.RoleEditor}

// ProjectUser derives a panel user from a remote user at position index
func ProjectUser(u remote.User, index int) models.User {
	status := models.UserActive
	if index%5 == 0 {
		status = models.UserInactive
	}
	return models.User{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     userRoles[mod(index, len(userRoles))],
		Status:   status,
		JoinDate: calendarDate(2024, index%12, (index*3)%28+1),
	}
}

// UserSchema describes users for a Service
func UserSchema(src remote.Source) Schema[remote.User, models.User] {
	return Schema[remote.User, models.User]{
		Kind:    models.KindUsers,
		List:    src.Users,
		Fetch:   src.User,
		BaseID:  func(u remote.User) int { return u.ID },
		Project: ProjectUser,
		Search: func(u models.User) []string {
			return []string{u.Name, u.Email}
		},
		Field: userField,
		Date:  func(u models.User) string { return u.JoinDate },
		Prepare: func(u models.User, id int) models.User {
			u.ID = id
			if u.Role == "" {
				u.Role = models.RoleUser
			}
			if u.Status == "" {
				u.Status = models.UserActive
			}
			return u
		},
		Stub:  func(id int) models.User { return models.User{ID: id} },
		Label: func(u models.User) string { return fmt.Sprintf("%s <%s>", u.Name, u.Email) },
	}
}

// UserFilterFields lists the fields usable in a users Filter
var UserFilterFields = []string{"role", "status"}

func userField(u models.User, name string) (string, bool) {
	switch name {
	case "role":
		return string(u.Role), true
	case "status":
		return string(u.Status), true
	}
	return "", false
}

// NewUsers builds the users overlay over src with state in store
func NewUsers(src remote.Source, store kv.Store, opts ...Option) *Users {
	return New(UserSchema(src), changestore.New[models.User](store, models.KindUsers), opts...)
}
