package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/osse101/SlotGuard_Go/internal/signing"
)

const slowResponse = time.Second

type HealthCheckCommand struct{}

func (c *HealthCheckCommand) Name() string {
	return "health-check"
}

func (c *HealthCheckCommand) Description() string {
	return "Check a running server's health, readiness and version [url]"
}

func (c *HealthCheckCommand) Run(ctx context.Context, con *Console, args []string) error {
	base := getEnv("SLOTGUARD_URL", "http://localhost:8080")
	if len(args) > 0 {
		base = args[0]
	}
	base = strings.TrimRight(base, "/")

	con.Header(fmt.Sprintf("Health Check (%s)", base))
	client := &http.Client{Timeout: 10 * time.Second}

	for _, path := range []string{"/healthz", "/readyz"} {
		start := time.Now()
		resp, err := get(ctx, client, base+path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		resp.Body.Close()
		duration := time.Since(start)

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("%s returned %d", path, resp.StatusCode)
		}
		if duration > slowResponse {
			con.Warning("%s slow response time (%v)", path, duration)
		} else {
			con.Success("%s ok (%v)", path, duration)
		}
	}

	resp, err := get(ctx, client, base+"/version")
	if err != nil {
		return fmt.Errorf("/version: %w", err)
	}
	defer resp.Body.Close()

	var info struct {
		Version       string `json:"version"`
		SignatureMode string `json:"signature_mode"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return fmt.Errorf("/version: %w", err)
	}
	con.Info("Version %s, signatures %s", info.Version, info.SignatureMode)
	if info.SignatureMode != signing.ModeEnforced.String() {
		con.Warning("Request signatures are not enforced")
	}
	return nil
}

func get(ctx context.Context, client *http.Client, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return client.Do(req)
}
