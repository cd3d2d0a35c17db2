// Container healthcheck for the game server. Exits 0 when the server
// answers on its configured address, 1 otherwise.
package main

import (
	"net/http"
	"os"
	"time"
)

func main() {
	// Match the address the server was started with; the config default
	// is :8080.
	addr := os.Getenv("SOW_HEALTHCHECK_ADDR")
	if addr == "" {
		addr = "127.0.0.1:8080"
	}
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + addr + "/api/version")
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		os.Exit(1)
	}
	os.Exit(0)
}
