package main

import (
	"fmt"
	"log"

	"github.com/hrd-survey/internal/config"
	"github.com/hrd-survey/internal/store"
	"github.com/hrd-survey/internal/web"
)

func main() {
	config.LoadEnv()

	fmt.Println("=== HRD Survey Review Server ===")

	cfg := web.DefaultConfig()
	cfg.Host = config.GetEnv("WEB_HOST", cfg.Host)
	cfg.Port = config.GetEnvInt("WEB_PORT", cfg.Port)
	cfg.OutputDir = config.GetEnv("SURVEY_OUTPUT_DIR", cfg.OutputDir)

	fmt.Printf("Server: http://%s:%d\n", cfg.Host, cfg.Port)
	fmt.Printf("Reports: %s\n", cfg.OutputDir)

	// The run-history endpoints need Postgres; the file-based report
	// endpoints work without it.
	var st *store.Store
	if config.GetEnvBool("SURVEY_STORE_ENABLED", false) {
		var err error
		st, err = store.Open()
		if err != nil {
			log.Fatalf("Failed to connect to audit store: %v", err)
		}
		if err := st.EnsureSchema(); err != nil {
			log.Fatalf("Failed to ensure audit schema: %v", err)
		}
		fmt.Println("Audit store: connected")
	} else {
		fmt.Println("Audit store: disabled")
	}

	server := web.NewServer(cfg, st)
	if err := server.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
