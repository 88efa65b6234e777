//go:build integration

package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dealcraft/dealcraft-server/internal/database"
	"github.com/dealcraft/dealcraft-server/internal/models"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func setupMongo(ctx context.Context, t *testing.T) string {
	t.Helper()
	req := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp"),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017")
	require.NoError(t, err)
	return fmt.Sprintf("mongodb://%s:%s", host, port.Port())
}

func TestMongoStoreIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	ctx := context.Background()
	uri := setupMongo(ctx, t)

	client, err := database.ConnectMongo(ctx, uri, 20*time.Second)
	require.NoError(t, err)
	defer func() { _ = client.Disconnect(ctx) }()

	cols := database.Open(client, "deal_craft_test")
	s := NewMongo(cols.Bids)

	for _, p := range []float64{10, 40, 25} {
		_, err := s.Insert(ctx, models.Document{"product": "p1", "bid_price": p, "buyer_email": "a@x.com"})
		require.NoError(t, err)
	}
	res, err := s.Insert(ctx, models.Document{"product": "p2", "bid_price": 5.0, "meta": map[string]interface{}{"k": "v"}})
	require.NoError(t, err)
	oid := res.InsertedID.(primitive.ObjectID)

	out, err := s.Find(ctx, Query{Filter: map[string]interface{}{"product": "p1"}, SortDesc: "bid_price"})
	require.NoError(t, err)
	require.Len(t, out, 3)
	require.Equal(t, 40.0, out[0]["bid_price"])
	require.Equal(t, 10.0, out[2]["bid_price"])

	got, err := s.FindByID(ctx, oid.Hex())
	require.NoError(t, err)
	// nested documents decode as maps
	_, isMap := got["meta"].(primitive.M)
	require.True(t, isMap, "nested document type %T", got["meta"])

	upd, err := s.SetByID(ctx, oid.Hex(), map[string]interface{}{"name": "x", "price": 10.0})
	require.NoError(t, err)
	require.EqualValues(t, 1, upd.MatchedCount)

	del, err := s.DeleteByID(ctx, oid.Hex())
	require.NoError(t, err)
	require.EqualValues(t, 1, del.DeletedCount)
	del, err = s.DeleteByID(ctx, oid.Hex())
	require.NoError(t, err)
	require.EqualValues(t, 0, del.DeletedCount)
}
