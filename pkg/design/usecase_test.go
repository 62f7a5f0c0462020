package design

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListBuildings_ReturnsCopy(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	got, err := svc.ListBuildings(ctx)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, "Tower A", got[0].Name)
	assert.Equal(t, "pitched", got[2].RoofType)

	got[0].Name = "changed"
	again, err := svc.ListBuildings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Tower A", again[0].Name)
}

func TestListProjects(t *testing.T) {
	got, err := NewService().ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 12, got[1].BuildingCount)
}

func TestCreateBuilding(t *testing.T) {
	svc := NewService()
	in := map[string]any{"name": "Annex", "floors": float64(2), "user_id": "spoofed@x.com"}

	out, err := svc.CreateBuilding(context.Background(), "alice@x.com", in)
	require.NoError(t, err)
	assert.Equal(t, "Annex", out["name"])
	assert.Equal(t, "alice@x.com", out["user_id"])
	assert.Equal(t, "spoofed@x.com", in["user_id"], "input must not be mutated")
}

func TestCreateBuilding_Validation(t *testing.T) {
	svc := NewService()
	var verr ErrValidation

	_, err := svc.CreateBuilding(context.Background(), "alice@x.com", nil)
	assert.True(t, errors.As(err, &verr))

	_, err = svc.CreateBuilding(context.Background(), "", map[string]any{})
	assert.True(t, errors.As(err, &verr))
}
