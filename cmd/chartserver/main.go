package main

import (
	"context"
	"flag"
	"log"
	"net/http"

	"github.com/luhouxiang/chartcore/internal/chartengine"
	"github.com/luhouxiang/chartcore/internal/logger"
	"github.com/luhouxiang/chartcore/internal/renderframe"
	"github.com/luhouxiang/chartcore/internal/snapshotstore"
	"github.com/luhouxiang/chartcore/internal/tracereplay"
)

// nullBackend satisfies chartengine.Backend without drawing anywhere; this
// demo host only cares about the frame's shape (for the websocket summary
// pushed to viewers), not about putting pixels on a screen.
type nullBackend struct{}

func (nullBackend) Render(*renderframe.LayeredRenderFrame) error { return nil }

func main() {
	addr := flag.String("addr", ":8085", "HTTP listen address")
	dbPath := flag.String("db", "", "optional sqlite path for snapshot persistence")
	scope := flag.String("scope", "default", "snapshot scope key")
	tracePath := flag.String("trace", "", "optional tracereplay command log to replay at startup")
	flag.Parse()

	engine, err := chartengine.New(chartengine.DefaultConfig())
	if err != nil {
		log.Fatalf("chartengine.New: %v", err)
	}

	var store *snapshotstore.Store
	if *dbPath != "" {
		store, err = snapshotstore.Open(*dbPath)
		if err != nil {
			log.Fatalf("snapshotstore.Open: %v", err)
		}
		defer store.Close()
	}

	srv := NewServer(engine, store, *scope)

	if *tracePath != "" {
		commands, err := tracereplay.LoadCommands(*tracePath)
		if err != nil {
			log.Fatalf("tracereplay.LoadCommands: %v", err)
		}
		player := tracereplay.NewPlayer()
		tracereplay.RegisterEngineHandlers(player, engine)
		if err := player.Play(context.Background(), commands, "fast", 0); err != nil {
			log.Fatalf("tracereplay.Play: %v", err)
		}
		logger.Info("replayed trace at startup", "path", *tracePath, "commands", len(commands))
	}

	if err := engine.Render(nullBackend{}); err != nil {
		log.Fatalf("initial render: %v", err)
	}

	logger.Info("chartserver listening", "addr", *addr)
	if err := http.ListenAndServe(*addr, srv.Handler()); err != nil {
		log.Fatalf("http.ListenAndServe: %v", err)
	}
}
