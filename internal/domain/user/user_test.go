package user

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/caredesk/internal/docstore"
	"github.com/rpggio/caredesk/internal/domain/collection"
	"github.com/rpggio/caredesk/internal/domain/credential"
	"github.com/rpggio/caredesk/internal/domain/status"
	"github.com/rpggio/caredesk/internal/listview"
	"github.com/rpggio/caredesk/internal/validation"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	credential.Cost = bcrypt.MinCost
}

func TestAddValidation(t *testing.T) {
	svc := NewService(docstore.New(docstore.NewMemory(), nil), nil, nil, nil)

	_, err := svc.Submit(context.Background(), collection.Add, "", User{Name: "Ann", Email: "ann@", Role: "owner"})
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	require.Equal(t, map[string]string{
		"email":    validation.MsgEmail,
		"role":     validation.MsgInvalid,
		"password": validation.MsgRequired,
	}, verr.Fields)
}

func TestAddStoresActiveUserWithHash(t *testing.T) {
	store := docstore.New(docstore.NewMemory(), nil)
	svc := NewService(store, nil, nil, nil)
	ctx := context.Background()

	id, err := svc.Submit(ctx, collection.Add, "", User{Name: "Ann", Email: "ann@example.com", Role: RoleAdmin, Password: "pw"})
	require.NoError(t, err)

	snap, err := store.Snapshot(ctx, docstore.Users)
	require.NoError(t, err)
	doc, _ := snap.Find(id)
	require.Equal(t, "active", doc.Fields["status"])
	require.Equal(t, "", doc.Fields["avatarUrl"])
	hashed, _ := doc.Fields["password"].(string)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hashed), []byte("pw")))
}

func TestEditDefaultsAvatarAndKeepsPassword(t *testing.T) {
	store := docstore.New(docstore.NewMemory(), nil)
	svc := NewService(store, nil, nil, nil)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, docstore.Users, "u1", map[string]any{
		"name": "Ann", "email": "ann@example.com", "role": "admin", "password": "$2a$hash", "status": "active",
	}))

	_, err := svc.Submit(ctx, collection.Edit, "u1", User{Name: "Ann", Email: "ann@example.com", Role: RoleSuperAdmin})
	require.NoError(t, err)

	snap, err := store.Snapshot(ctx, docstore.Users)
	require.NoError(t, err)
	doc, _ := snap.Find("u1")
	require.Equal(t, AvatarPlaceholder, doc.Fields["avatarUrl"])
	require.Equal(t, "$2a$hash", doc.Fields["password"])
	require.Equal(t, "superadmin", doc.Fields["role"])
}

func TestSoftDeleteBansUser(t *testing.T) {
	store := docstore.New(docstore.NewMemory(), nil)
	svc := NewService(store, nil, nil, nil)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, docstore.Users, "u1", map[string]any{"name": "Ann", "status": "active"}))
	require.NoError(t, store.Set(ctx, docstore.Users, "u2", map[string]any{"name": "Bo", "status": "active"}))

	m, err := svc.SoftDelete(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, status.Banned, m.To)

	res, err := svc.List(ctx, listview.QueryParams{})
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	require.Equal(t, "Bo", res.Rows[0].Name)
	require.Equal(t, 5, res.Query.Page.Size)

	// A banned user cannot be banned again or restored through delete.
	_, err = svc.SoftDelete(ctx, "u1")
	require.ErrorIs(t, err, status.ErrInvalidTransition)
}
