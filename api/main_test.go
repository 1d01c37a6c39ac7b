package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/katatrina/vehicle-auction/internal/auction"
	db "github.com/katatrina/vehicle-auction/internal/db/sqlc"
	"github.com/katatrina/vehicle-auction/internal/event"
	"github.com/katatrina/vehicle-auction/internal/notification"
	"github.com/katatrina/vehicle-auction/internal/token"
	"github.com/katatrina/vehicle-auction/internal/util"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

var (
	testAdmin = token.Identity{UserID: 1, Username: "root", IsAdmin: true}
	testAlice = token.Identity{UserID: 10, Username: "alice"}
	testBob   = token.Identity{UserID: 11, Username: "bob"}
)

type fakeInbox struct {
	items map[int64][]notification.Notification
}

func (f *fakeInbox) List(ctx context.Context, userID int64, limit int64) ([]notification.Notification, error) {
	items := f.items[userID]
	if limit > 0 && int64(len(items)) > limit {
		items = items[:limit]
	}
	return items, nil
}

type testServer struct {
	server   *Server
	store    *db.MemoryStore
	registry *auction.Registry
	hub      *event.Hub
	inbox    *fakeInbox
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	config := &util.Config{
		AllowedOrigins: []string{"http://localhost:3000"},
		TokenSecretKey: "test-secret-key-with-at-least-32-chars",
	}

	store := db.NewMemoryStore()
	for _, u := range []token.Identity{testAdmin, testAlice, testBob} {
		store.AddUser(db.User{ID: u.UserID, Username: u.Username, Email: u.Username + "@example.com", IsAdmin: u.IsAdmin})
	}

	hub := event.NewHub(event.DefaultQueueSize)
	registry := auction.NewRegistry(store, hub)
	require.NoError(t, registry.Load(context.Background()))

	inbox := &fakeInbox{items: map[int64][]notification.Notification{}}
	server, err := NewServer(config, store, registry, hub, inbox)
	require.NoError(t, err)

	return &testServer{server: server, store: store, registry: registry, hub: hub, inbox: inbox}
}

func (ts *testServer) accessToken(t *testing.T, user token.Identity) string {
	t.Helper()

	accessToken, _, err := ts.server.tokenMaker.CreateToken(user, time.Minute)
	require.NoError(t, err)
	return accessToken
}

// do sends a request through the router. user may be nil for anonymous calls.
func (ts *testServer) do(t *testing.T, method, path string, user *token.Identity, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	request, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	request.Header.Set("Content-Type", "application/json")
	if user != nil {
		request.Header.Set(authorizationHeaderKey, fmt.Sprintf("%s %s", authorizationTypeBearer, ts.accessToken(t, *user)))
	}

	recorder := httptest.NewRecorder()
	ts.server.router.ServeHTTP(recorder, request)
	return recorder
}

func (ts *testServer) openAuction(t *testing.T, price int64, duration time.Duration) db.Vehicle {
	t.Helper()

	vehicle, err := ts.registry.Open(context.Background(), db.CreateVehicleParams{
		Title:         "Toyota Corolla 2012",
		Slug:          util.GenerateRandomSlug("Toyota Corolla 2012"),
		StartingPrice: decimal.NewFromInt(price),
		AuctionEnd:    time.Now().Add(duration),
	})
	require.NoError(t, err)
	return vehicle
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
