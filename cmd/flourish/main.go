// Command flourish is an AI-assisted shell gateway: commands proposed by the
// model pass through an allowlist/blacklist policy gate before anything runs
// on the machine, and everything that happens is written to session logs.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
