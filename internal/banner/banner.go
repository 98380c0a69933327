// Package banner prints the startup banner for chainsocksd.
package banner

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
)

const art = `
 ____ _           _       ____             _
/ ___| |__   __ _(_)_ __ / ___|  ___   ___| | _____
| |   | '_ \ / _  | | '_ \\___ \ / _ \ / __| |/ / __|
| |___| | | | (_| | | | | |___) | (_) | (__|   <\__ \
\____|_| |_|\__,_|_|_| |_|____/ \___/ \___|_|\_\___/
`

// Print writes the ASCII banner and the current time to stdout.
func Print() {
	color.New(color.FgCyan, color.Bold).Println(art)
	fmt.Printf("  SOCKS4/5 proxy-chain multiplexer\n")
	fmt.Printf("  Start time: %s\n", time.Now().Format(time.RFC1123))
	fmt.Println(strings.Repeat("-", 50))
}

// PrintListening announces that the server is accepting connections on addr.
func PrintListening(addr string) {
	color.Green("✓ chainsocksd listening")
	fmt.Printf("  Address: %s\n", addr)
	fmt.Println(strings.Repeat("-", 50))
}
