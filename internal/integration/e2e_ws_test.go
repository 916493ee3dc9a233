package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"rewards_wheel/internal/config"
	"rewards_wheel/internal/domain"
	"rewards_wheel/internal/game"
	httpserver "rewards_wheel/internal/http"
	"rewards_wheel/internal/repository"
	"rewards_wheel/internal/service"
	"rewards_wheel/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

func newServer(t *testing.T, store service.CatalogStore) *httptest.Server {
	t.Helper()

	cfg := config.Default()
	cfg.SpinDuration = 200 * time.Millisecond
	cfg.FrameInterval = 5 * time.Millisecond
	cfg.WSUpgradeBurst = 100

	wheels := service.NewWheelService(store, game.NewFactory(game.Settings{
		SpinDuration:    cfg.SpinDuration,
		ExtraTurns:      cfg.ExtraTurns,
		TickIntervalDeg: cfg.TickIntervalDeg,
	}))
	hub := ws.NewHub(wheels, ws.HubConfig{FrameInterval: cfg.FrameInterval, SpinsPerSecond: 10})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	httpserver.RegisterRoutes(ctx, r, httpserver.Deps{Wheels: wheels, Hub: hub, Config: cfg, Version: "test"})

	ts := httptest.NewServer(r)
	t.Cleanup(func() {
		hub.Shutdown()
		ts.Close()
	})
	return ts
}

// startReader runs a single reader goroutine per connection to avoid concurrent ReadMessage calls
func startReader(conn *websocket.Conn) chan map[string]any {
	out := make(chan map[string]any, 256)
	go func() {
		defer close(out)
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var obj map[string]any
			if json.Unmarshal(msg, &obj) == nil {
				out <- obj
			}
		}
	}()
	return out
}

func spinOnce(t *testing.T, ts *httptest.Server, wheelID string) map[string]any {
	t.Helper()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws?wheel=" + wheelID
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	ch := startReader(conn)
	deadline := time.After(5 * time.Second)
	var seen []string
	for {
		select {
		case m, ok := <-ch:
			if !ok {
				t.Fatalf("connection closed, saw %v", seen)
			}
			typ, _ := m["type"].(string)
			seen = append(seen, typ)
			switch typ {
			case "ready":
				if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"spin"}`)); err != nil {
					t.Fatalf("write: %v", err)
				}
			case "spin_settled":
				if seen[1] != "spin_started" {
					t.Fatalf("unexpected event order %v", seen)
				}
				payload, _ := m["payload"].(map[string]any)
				return payload
			case "error":
				t.Fatalf("server error: %v", m["payload"])
			}
		case <-deadline:
			t.Fatalf("timeout, saw %v", seen)
		}
	}
}

func TestE2E_WS_Spin_BuiltIn(t *testing.T) {
	ts := newServer(t, nil)

	payload := spinOnce(t, ts, game.WheelPremios)
	if label, _ := payload["label"].(string); label == "" {
		t.Fatalf("settled without a prize label: %v", payload)
	}

	res, err := http.Get(ts.URL + "/api/v1/sessions")
	if err != nil {
		t.Fatalf("sessions: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("sessions status %d", res.StatusCode)
	}
}

func TestE2E_WS_Spin_StoredCatalog(t *testing.T) {
	db := connect(t)
	repo := repository.NewCatalogRepository(db)

	id := "it-" + uuid.NewString()
	t.Cleanup(func() { _ = repo.Delete(context.Background(), id) })
	if err := repo.Upsert(context.Background(), &domain.Catalog{
		ID:     id,
		Brand:  domain.BrandGreenGarden,
		Name:   "Single prize",
		Prizes: []domain.Prize{{Label: "Only"}},
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	ts := newServer(t, repo)
	payload := spinOnce(t, ts, id)
	if payload["label"] != "Only" {
		t.Fatalf("unexpected prize %v", payload)
	}
}
