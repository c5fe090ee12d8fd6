// Command token issues a player bearer token signed with AUTH_TOKEN_SECRET.
// With -store the token is saved in the OS keyring for the client.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/osse101/SlotGuard_Go/internal/auth"
	"github.com/osse101/SlotGuard_Go/internal/client"
	"github.com/osse101/SlotGuard_Go/internal/config"
)

func main() {
	uid := flag.String("uid", "", "player id to embed in the token")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	store := flag.Bool("store", false, "save the token in the OS keyring (needs KEYRING_USER)")
	flag.Parse()

	_ = godotenv.Load()

	if *uid == "" {
		flag.Usage()
		os.Exit(2)
	}
	secret := os.Getenv("AUTH_TOKEN_SECRET")
	if secret == "" {
		log.Fatal("AUTH_TOKEN_SECRET must be set")
	}

	token, err := auth.IssueToken(secret, *uid, *ttl)
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}

	if *store {
		if err := client.StoreSecret(config.LoadClient(), client.SecretToken, token); err != nil {
			log.Fatalf("Failed to store token: %v", err)
		}
		fmt.Fprintln(os.Stderr, "Token saved to keyring")
		return
	}
	fmt.Println(token)
}
