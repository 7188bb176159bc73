package main

import (
	"log"
	"os"

	"github.com/enochian/lighthouse/internal/api"
	"github.com/enochian/lighthouse/internal/entropy"
	"github.com/enochian/lighthouse/internal/oracle"
	"github.com/enochian/lighthouse/internal/pipeline"
	"github.com/enochian/lighthouse/internal/questgen"
	"github.com/enochian/lighthouse/internal/store"
)

func main() {
	log.Println("Starting Enochian Lighthouse engine...")
	log.Println("Building Knowledge Index and Aethyr/Governor map...")

	// ─── Required Environment Variables ─────────────────────────────────
	// All credentials MUST come from environment variables. No fallback
	// defaults for security-sensitive values.
	// ────────────────────────────────────────────────────────────────────

	lighthousePath := getEnvOrDefault("LIGHTHOUSE_DATA_PATH", "./data/lighthouse")
	ki, err := pipeline.BuildLighthouse(lighthousePath)
	if err != nil {
		log.Fatalf("FATAL: failed to build lighthouse knowledge index: %v", err)
	}
	log.Printf("Knowledge index loaded: %d entries across %d traditions", ki.Len(), len(ki.Traditions()))

	sourcesFile := getEnvOrDefault("SOURCES_FILE", "./data/sources.json")
	governorsDir := os.Getenv("GOVERNORS_DIR")
	sr, am, err := pipeline.LoadRegistries(pipeline.RegistryPaths{
		SourcesFile:  sourcesFile,
		GovernorsDir: governorsDir,
	})
	if err != nil {
		log.Fatalf("FATAL: failed to load source registry / aethyr map: %v", err)
	}
	log.Printf("Aethyr map validated: %d governors across 30 aethyrs, %d sources registered", len(am.AllGovernors()), sr.Len())

	dbUrl := os.Getenv("DATABASE_URL")
	var dbStore *store.PostgresStore
	if dbUrl != "" {
		dbStore, err = store.Connect(dbUrl)
		if err != nil {
			log.Printf("Warning: failed to connect to PostgreSQL, continuing without persisting run reports. Error: %v", err)
		} else {
			defer dbStore.Close()
			if err := dbStore.InitSchema(); err != nil {
				log.Printf("Warning: DB schema init failed: %v", err)
			}
		}
	} else {
		log.Println("DATABASE_URL not set — running without persistence")
	}

	var provider entropy.BlockMetadataProvider
	btcHost := os.Getenv("BTC_RPC_HOST")
	if btcHost != "" {
		btcUser := requireEnv("BTC_RPC_USER")
		btcPass := requireEnv("BTC_RPC_PASS")
		rpcProvider, err := entropy.NewRPCBlockMetadataProvider(entropy.RPCConfig{Host: btcHost, User: btcUser, Pass: btcPass})
		if err != nil {
			log.Fatalf("FATAL: failed to connect to Bitcoin RPC: %v", err)
		}
		defer rpcProvider.Shutdown()
		provider = rpcProvider
		log.Println("Entropy source: live Bitcoin Core RPC")
	} else {
		log.Println("WARNING: BTC_RPC_HOST unset — engine running with an empty fixture block provider; runs will fail until fixtures are supplied")
		provider = entropy.NewFixtureBlockMetadataProvider(nil)
	}

	core := pipeline.NewCoreContext(ki, sr, am, pipeline.Params{
		QuestgenConfig: questgen.DefaultConfig(),
		PoolConfig:     questgen.PoolConfig{Concurrency: questgen.DefaultConcurrency},
		Oracle:         oracle.NewDeterministicMock(),
	})

	// Setup WebSocket Hub
	wsHub := api.NewHub()
	go wsHub.Run()

	r := api.SetupRouter(core, provider, dbStore, wsHub)

	port := getEnvOrDefault("PORT", "5339")

	log.Printf("Engine running on :%s\n", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// requireEnv reads a required environment variable and exits if it is not set.
// This prevents the binary from starting with missing critical configuration.
func requireEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		log.Fatalf("FATAL: Required environment variable %s is not set.", key)
	}
	return val
}

// getEnvOrDefault returns the env var value or a safe default for non-secret settings.
func getEnvOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
