package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pafreitas79/Salescommissiontracker/rappel"
	"github.com/pafreitas79/Salescommissiontracker/store/memory"
)

func TestNew_SeedsDefaults(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	tiers, err := store.LoadTiers(ctx)
	require.NoError(t, err)
	assert.Len(t, tiers, 3)

	method, err := store.LoadMethod(ctx)
	require.NoError(t, err)
	assert.Equal(t, rappel.DefaultMethod, method)
}

func TestLoad_ReturnsSnapshots(t *testing.T) {
	// Mutating a loaded slice must not leak back into the store.

	store := memory.New()
	ctx := context.Background()

	require.NoError(t, store.ReplaceSalespeople(ctx, []rappel.Salesperson{
		{ID: "sp-1", Name: "Ana", Email: "ana@example.com", BaseRate: rappel.MustDecimal("30")},
	}))

	loaded, err := store.LoadSalespeople(ctx)
	require.NoError(t, err)
	loaded[0].Name = "Mutated"

	again, err := store.LoadSalespeople(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ana", again[0].Name)
}

func TestReplaceCommissions_Snapshot(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	in := []rappel.Commission{{
		ID: "c-1", SalespersonID: "sp-1",
		Revenue: rappel.MustDecimal("100"), DealID: "D-1",
		Rate: rappel.MustDecimal("30"), Status: rappel.StatusUnpaid,
		EntryDate: rappel.NewDate(2024, time.January, 5),
	}}
	require.NoError(t, store.ReplaceCommissions(ctx, in))

	in[0].DealID = "mutated"

	out, err := store.LoadCommissions(ctx)
	require.NoError(t, err)
	assert.Equal(t, "D-1", out[0].DealID)
}

func TestReset_RestoresDefaults(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	require.NoError(t, store.ReplaceTiers(ctx, nil))
	require.NoError(t, store.SaveMethod(ctx, rappel.MethodYTD))
	require.NoError(t, store.Reset(ctx))

	tiers, err := store.LoadTiers(ctx)
	require.NoError(t, err)
	assert.Len(t, tiers, 3)

	method, err := store.LoadMethod(ctx)
	require.NoError(t, err)
	assert.Equal(t, rappel.DefaultMethod, method)
}
