// issue-token mints a device bearer token for deployments running with
// SYNC_AUTH_REQUIRED=true. The signing secret comes from API_SECRET, the
// lifespan from TOKEN_HOUR_LIFESPAN.
//
// Usage:
//   API_SECRET=... go run ./cmd/issue-token <device-id>
package main

import (
	"fmt"
	"os"

	"github.com/mmdatafocus/pos_sync_backend/utils"
)

func main() {
	if len(os.Args) != 2 || os.Args[1] == "" {
		fmt.Fprintln(os.Stderr, "usage: issue-token <device-id>")
		os.Exit(2)
	}

	token, err := utils.JwtGenerate(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "issue token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
