package main

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mtoman/dodger/internal/config"
	"github.com/mtoman/dodger/internal/difficulty"
	"github.com/mtoman/dodger/internal/store"
)

const (
	defaultHost   = "0.0.0.0"
	defaultPort   = "8080"
	defaultDBPath = "/app/data/dodger.db"

	boardLimit   = 10
	pollInterval = 3 * time.Second
)

//go:embed index.html
var htmlPage string

var upgrader = websocket.Upgrader{
	// The page is served from this same host; boards are public data.
	CheckOrigin: func(r *http.Request) bool { return true },
}

func main() {
	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	dbPath := config.GetEnv("DODGER_DB", defaultDBPath)

	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer db.Close()

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		page := strings.Replace(htmlPage, "{{.SSHHost}}", sshHost, -1)
		fmt.Fprint(w, page)
	})
	http.HandleFunc("/api/scores", scoresHandler(db))
	http.HandleFunc("/ws", liveHandler(db))

	addr := fmt.Sprintf("%s:%s", host, port)
	log.Printf("Starting web server on http://%s", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// validMode accepts an empty mode (all boards) or a known difficulty.
func validMode(mode string) bool {
	if mode == "" {
		return true
	}
	_, err := difficulty.Resolve(mode)
	return err == nil
}

// scoresHandler serves one board as JSON. ?mode= filters to a difficulty;
// ?all=1 returns raw rows instead of each user's best.
func scoresHandler(db *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode := r.URL.Query().Get("mode")
		if !validMode(mode) {
			http.Error(w, "unknown mode", http.StatusBadRequest)
			return
		}
		distinct := r.URL.Query().Get("all") != "1"

		rows, err := db.TopScores(boardLimit, mode, distinct)
		if err != nil {
			log.Printf("scores query failed: %v", err)
			http.Error(w, "scores unavailable", http.StatusInternalServerError)
			return
		}
		if rows == nil {
			rows = []store.ScoreRow{}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(rows); err != nil {
			log.Printf("scores encode failed: %v", err)
		}
	}
}

// liveHandler streams board updates over a websocket. The store has no
// change notification, so the connection polls and pushes only when the
// board actually changed.
func liveHandler(db *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode := r.URL.Query().Get("mode")
		if !validMode(mode) {
			http.Error(w, "unknown mode", http.StatusBadRequest)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("websocket upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		// Reads only serve to detect the peer going away.
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					conn.Close()
					return
				}
			}
		}()

		var last []byte
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()
		for {
			rows, err := db.TopScores(boardLimit, mode, true)
			if err != nil {
				log.Printf("live board query failed: %v", err)
				return
			}
			payload, err := json.Marshal(rows)
			if err != nil {
				return
			}
			if !bytes.Equal(payload, last) {
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					return
				}
				last = payload
			}
			<-ticker.C
		}
	}
}
