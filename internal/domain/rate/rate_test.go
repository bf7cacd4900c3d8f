package rate

import (
	"context"
	"testing"

	"github.com/rpggio/caredesk/internal/docstore"
	"github.com/rpggio/caredesk/internal/validation"
	"github.com/stretchr/testify/require"
)

func TestDriverPay(t *testing.T) {
	cases := []struct {
		name     string
		rates    Rates
		hours    float64
		distance float64
		want     float64
	}{
		{"hours and kilometres", Rates{EmpRate: 2, DriverKmsM: 1.5}, 3, 10, 21},
		{"fractional rates", Rates{EmpRate: 1, DriverKmsM: 0.5}, 4, 20, 14},
		{"no decimal drift", Rates{EmpRate: 0.1, DriverKmsM: 0.2}, 3, 1, 0.5},
		{"zero trip", Rates{EmpRate: 30, DriverKmsM: 0.8}, 0, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, DriverPay(tc.rates, tc.hours, tc.distance))
		})
	}
}

func TestServiceCurrentNotConfigured(t *testing.T) {
	svc := NewService(docstore.New(docstore.NewMemory(), nil), nil, nil)

	_, err := svc.Current(context.Background())
	require.ErrorIs(t, err, ErrNotConfigured)

	_, err = svc.Quote(context.Background(), 1, 1)
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestServiceFirstDocumentIsAuthoritative(t *testing.T) {
	store := docstore.New(docstore.NewMemory(), nil)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, docstore.Variable, "v1", map[string]any{"emp_rate": 2, "driver_kms_m": 1.5}))
	require.NoError(t, store.Set(ctx, docstore.Variable, "v2", map[string]any{"emp_rate": 99, "driver_kms_m": 99}))

	svc := NewService(store, nil, nil)
	r, err := svc.Current(ctx)
	require.NoError(t, err)
	require.Equal(t, Rates{ID: "v1", EmpRate: 2, DriverKmsM: 1.5}, r)

	pay, err := svc.Quote(ctx, 3, 10)
	require.NoError(t, err)
	require.Equal(t, 21.0, pay)
}

func TestServiceSetCreatesThenOverwrites(t *testing.T) {
	store := docstore.New(docstore.NewMemory(), nil)
	svc := NewService(store, nil, nil)
	ctx := context.Background()

	created, err := svc.Set(ctx, Rates{EmpRate: 25, DriverKmsM: 0.9})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	updated, err := svc.Set(ctx, Rates{EmpRate: 27, DriverKmsM: 0.95})
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)

	snap, err := store.Snapshot(ctx, docstore.Variable)
	require.NoError(t, err)
	require.Len(t, snap.Documents, 1)

	r, err := svc.Current(ctx)
	require.NoError(t, err)
	require.Equal(t, 27.0, r.EmpRate)
}

func TestServiceSetRejectsNegativeRates(t *testing.T) {
	svc := NewService(docstore.New(docstore.NewMemory(), nil), nil, nil)
	_, err := svc.Set(context.Background(), Rates{EmpRate: -1})
	require.ErrorIs(t, err, validation.ErrInvalid)
}
