package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/TomShaw333/RustCalculatorSuite/api"
	"github.com/TomShaw333/RustCalculatorSuite/store"
)

var (
	dbPath        = flag.String("db", "calc.db", "path to the history database")
	addr          = flag.String("addr", "localhost:8080", "TCP address to listen on")
	ttl           = flag.Duration("ttl", 30*24*time.Hour, "retention period for history entries")
	sweepInterval = flag.Duration("sweep", 5*time.Minute, "how often to purge expired history")
)

func main() {
	log.SetFlags(0)
	flag.Parse()
	st, err := store.Open(*dbPath)
	if err != nil {
		log.Fatalf("open %s: %v", *dbPath, err)
	}
	sch, err := st.StartRetention(*sweepInterval)
	if err != nil {
		log.Fatalf("start retention: %v", err)
	}
	srv := api.New(st, *ttl)
	go func() {
		log.Printf("Starting HTTP server on %q", *addr)
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("error in ListenAndServe: %v", err)
		}
	}()
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt)
	<-sigch
	fmt.Println("interrupted, shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if err := sch.Shutdown(); err != nil {
		log.Printf("scheduler shutdown: %v", err)
	}
	if err := st.Close(); err != nil {
		log.Printf("close db: %v", err)
	}
}
