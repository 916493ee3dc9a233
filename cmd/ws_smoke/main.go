package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/url"
	"os"
	"time"

	"rewards_wheel/internal/logger"

	"github.com/gorilla/websocket"
)

func main() {
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	wheelID := flag.String("wheel", "premios", "wheel to spin")
	host := flag.String("host", "127.0.0.1:"+port, "server host:port")
	timeout := flag.Duration("timeout", 15*time.Second, "give up after")
	flag.Parse()

	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	u := url.URL{Scheme: "ws", Host: *host, Path: "/ws", RawQuery: "wheel=" + url.QueryEscape(*wheelID)}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		logger.Fatal("dial", "url", u.String(), "error", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(*timeout)
	spun := false
	ticks := 0

	for {
		_ = conn.SetReadDeadline(deadline)
		_, msg, err := conn.ReadMessage()
		if err != nil {
			logger.Fatal("read", "error", err)
		}

		var env struct {
			Type    string          `json:"type"`
			Payload json.RawMessage `json:"payload"`
		}
		if err := json.Unmarshal(msg, &env); err != nil {
			logger.Fatal("decode", "error", err)
		}

		switch env.Type {
		case "ready":
			fmt.Printf("ready: %s\n", env.Payload)
			if !spun {
				spun = true
				if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"spin"}`)); err != nil {
					logger.Fatal("write", "error", err)
				}
			}
		case "spin_started":
			fmt.Printf("spin_started: %s\n", env.Payload)
		case "tick":
			ticks++
		case "spin_settled":
			fmt.Printf("spin_settled after %d ticks: %s\n", ticks, env.Payload)
			fmt.Println("smoke test finished")
			return
		case "error":
			logger.Fatal("server error", "payload", string(env.Payload))
		}
	}
}
