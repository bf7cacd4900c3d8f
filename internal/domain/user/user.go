// Package user manages dashboard administrators.
package user

import (
	"context"
	"log/slog"

	"github.com/rpggio/caredesk/internal/cache"
	"github.com/rpggio/caredesk/internal/docstore"
	"github.com/rpggio/caredesk/internal/domain/collection"
	"github.com/rpggio/caredesk/internal/domain/credential"
	"github.com/rpggio/caredesk/internal/domain/status"
	"github.com/rpggio/caredesk/internal/listview"
	"github.com/rpggio/caredesk/internal/validation"
)

// Roles a user can hold.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

// AvatarPlaceholder is stored when an edit leaves the avatar empty.
const AvatarPlaceholder = "test"

// User is one document of the users collection.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name" validate:"required,notblank"`
	Email     string `json:"email" validate:"required,email"`
	AvatarURL string `json:"avatarUrl"`
	Role      string `json:"role" validate:"required,oneof=admin superadmin"`
	Password  string `json:"password,omitempty" validate:"omitempty,max=72"`
	Status    string `json:"status,omitempty"`
}

// Definition configures the users collection.
func Definition() collection.Definition[User] {
	return collection.Definition[User]{
		Collection: docstore.Users,
		List: listview.Config[User]{
			Fields: map[string]listview.Accessor[User]{
				"name":   func(u User) any { return u.Name },
				"email":  func(u User) any { return u.Email },
				"role":   func(u User) any { return u.Role },
				"status": func(u User) any { return u.Status },
			},
			FilterField: func(u User) string { return u.Name },
			Status:      func(u User) string { return u.Status },
			DefaultSort: listview.SortKey{Field: "name", Direction: listview.Asc},
			DefaultSize: 5,
		},
		DeleteStatus: status.Banned,
		TracksStatus: true,
		Validate: func(act collection.Action, in User, errs validation.Errors) {
			if act == collection.Add && in.Password == "" {
				errs.Add(credential.Field, validation.MsgRequired)
			}
		},
		Prepare: func(_ context.Context, w *collection.Write[User]) error {
			if w.Action == collection.Edit && w.Input.AvatarURL == "" {
				w.Fields["avatarUrl"] = AvatarPlaceholder
			}
			return credential.Apply(w.Fields, w.Stored)
		},
		Present: func(u User) User {
			u.Password = ""
			return u
		},
	}
}

// Service manages users.
type Service struct {
	*collection.Service[User]
}

// NewService creates a user Service.
func NewService(store collection.Store, caches *cache.Manager, recorder collection.Recorder, logger *slog.Logger) *Service {
	return &Service{Service: collection.NewService(Definition(), store, caches, recorder, logger)}
}
