package main

import (
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"

	"url-trust-poc/ai"
	"url-trust-poc/trust"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	policyPath := os.Getenv("SCORING_POLICY_FILE")
	if policyPath == "" {
		policyPath = "scoring.yaml"
	}
	policy, err := trust.LoadPolicy(policyPath)
	if err != nil {
		log.Fatalf("load scoring policy %s: %v", policyPath, err)
	}

	analyzer, err := ai.NewClientFromEnv()
	if err != nil {
		// The AI assessment gates every check, refuse to start without it.
		log.Fatal(err)
	}

	reputation := trust.NewSimulatedReputation(rand.NewSource(time.Now().UnixNano()))
	checker := trust.NewChecker(policy, analyzer, reputation)

	http.HandleFunc("/check", checker.CheckHandler)

	log.Printf("✅ url-trust service listening on :%s\n", port)
	log.Println("📍 Endpoints:")
	log.Println("   POST /check        - URL trust assessment")

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatal(err)
	}
}
