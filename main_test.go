package main

import (
	"testing"

	"github.com/atomicstack/tmux-session-tree/internal/config"
)

func TestStartupTracePayload(t *testing.T) {
	cfg, err := config.LoadArgs([]string{"-no-logo"}, nil)
	if err != nil {
		t.Fatalf("LoadArgs failed: %v", err)
	}

	payload := startupTracePayload(cfg)
	flags, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload, got %#v", payload["flags"])
	}
	if flags["noLogo"] != "true" {
		t.Fatalf("expected noLogo flag recorded, got %#v", flags)
	}
	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload, got %#v", payload["tty"])
	}
}

func TestCollectTTYDetailsProbesAllDescriptors(t *testing.T) {
	details := collectTTYDetails()
	if len(details.Probes) != 3 {
		t.Fatalf("expected stdin/stdout/stderr probes, got %#v", details.Probes)
	}
	names := map[string]bool{}
	for _, probe := range details.Probes {
		names[probe.Name] = true
	}
	for _, want := range []string{"stdin", "stdout", "stderr"} {
		if !names[want] {
			t.Fatalf("missing probe %q in %#v", want, details.Probes)
		}
	}
}
