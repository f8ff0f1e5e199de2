// Command rlvhost is a minimal standalone host for the RLV engine: it wires
// a demo in-memory world against the facade and lets you type @commands at
// a prompt to see how restrictions, get-requests, and forced actions play
// out. It is not a real viewer integration — see internal/hostapi for the
// capability boundary a real one would implement.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"

	"rlv/internal/audit"
	"rlv/internal/behavior"
	"rlv/internal/facade"
	"rlv/internal/restriction"
	"rlv/internal/rlvconfig"
	"rlv/internal/rlvlog"
)

var (
	configPath string
	senderID   string
	senderName string
)

func init() {
	flag.StringVar(&configPath, "config", "", "Path to a rlv.toml configuration file")
	flag.StringVar(&senderID, "sender-id", "00000000-0000-0000-0000-000000000001", "uuid of the simulated issuing object")
	flag.StringVar(&senderName, "sender-name", "Demo Object", "name of the simulated issuing object")
}

func main() {
	flag.Parse()

	cfg := rlvconfig.Load(configPath)
	rlvlog.Init(cfg.LogLevel, cfg.LogFile)
	defer rlvlog.Close()

	var trail *audit.Trail
	if cfg.AuditEnabled {
		var err error
		trail, err = audit.Open(cfg.AuditDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "rlvhost: audit disabled, failed to open %s: %v\n", cfg.AuditDBPath, err)
		} else {
			defer trail.Close()
		}
	}

	store := restriction.New()
	blacklist := behavior.NewBlacklist(cfg.BlacklistSeed)
	host := newDemoHost()

	engine := facade.New(store, blacklist, host, host, trail)
	if err := engine.RefreshInventory(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "rlvhost: initial inventory refresh failed: %v\n", err)
	}

	fmt.Println("rlv demo host. Type @commands (e.g. @fly=n,sittp:2.5=n) or 'quit'.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "quit" || line == "exit" {
			break
		}
		if line == "" {
			continue
		}
		ok, err := engine.ProcessMessage(context.Background(), line, senderID, senderName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		if !ok {
			fmt.Println("(some segments were rejected)")
		}
	}
}
