//go:build ignore

// This script prints fresh secrets for a translation-service .env file.
// Run with: go run scripts/generate_keys.go [-api-keys 2]
package main

import (
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"os"
	"strings"
)

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// secret returns n random bytes, base64 encoded. API keys travel in a header, so they use
// the URL-safe alphabet without padding.
func secret(n int, urlSafe bool) string {
	b, err := randomBytes(n)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading random bytes: %v\n", err)
		os.Exit(1)
	}
	if urlSafe {
		return base64.RawURLEncoding.EncodeToString(b)
	}
	return base64.StdEncoding.EncodeToString(b)
}

func main() {
	apiKeys := flag.Int("api-keys", 1, "number of API keys to generate (0 disables API key auth)")
	flag.Parse()

	fmt.Println("# translation-service secrets")
	fmt.Println("# JWT signing keys, 256 bits each")
	fmt.Printf("JWT_SECRET_KEY=%s\n", secret(32, false))
	fmt.Printf("JWT_REFRESH_SECRET_KEY=%s\n", secret(32, false))

	if *apiKeys > 0 {
		keys := make([]string, *apiKeys)
		for i := range keys {
			keys[i] = secret(24, true)
		}
		fmt.Println()
		fmt.Println("# Accepted in the X-API-Key header")
		fmt.Printf("API_KEYS=%s\n", strings.Join(keys, ","))
	}

	fmt.Println()
	fmt.Println("# Password of the account created by `translation-service seed`")
	fmt.Printf("SEED_ADMIN_PASSWORD=%s\n", secret(12, true))
}
