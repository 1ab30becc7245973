package cmd

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"
)

// useTempFund points the global fund file at a fresh temp location.
func useTempFund(t *testing.T) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "fund.json")
	old := fundFile
	fundFile = &file
	t.Cleanup(func() { fundFile = old })
	return file
}

func TestInitCreatesLoadableFund(t *testing.T) {
	file := useTempFund(t)

	cmd := &initCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)

	if status := cmd.Execute(context.Background(), f); status != subcommands.ExitSuccess {
		t.Fatalf("init failed with status %v", status)
	}

	// the generated file must decode, validate and project
	cfg, err := DecodeFund()
	if err != nil {
		t.Fatalf("generated %q does not decode: %v", file, err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("generated configuration does not validate: %v", err)
	}
	if len(cfg.Assets) != 3 {
		t.Errorf("starter fund has %d assets, want 3", len(cfg.Assets))
	}
	if _, err := runProjection(); err != nil {
		t.Fatalf("generated configuration does not project: %v", err)
	}
}

func TestInitRefusesOverwrite(t *testing.T) {
	file := useTempFund(t)
	if err := os.WriteFile(file, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := &initCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)

	if status := cmd.Execute(context.Background(), f); status != subcommands.ExitFailure {
		t.Errorf("init overwrote an existing file, status %v", status)
	}

	cmd.force = true
	if status := cmd.Execute(context.Background(), f); status != subcommands.ExitSuccess {
		t.Errorf("init -force failed with status %v", status)
	}
}

func TestCompareNeedsArguments(t *testing.T) {
	cmd := &compareCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	if err := f.Parse(nil); err != nil {
		t.Fatal(err)
	}

	if status := cmd.Execute(context.Background(), f); status != subcommands.ExitUsageError {
		t.Errorf("compare without arguments returned %v, want usage error", status)
	}
}

func TestTopicUnknown(t *testing.T) {
	cmd := &topicCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	if err := f.Parse([]string{"nonexistent"}); err != nil {
		t.Fatal(err)
	}

	if status := cmd.Execute(context.Background(), f); status != subcommands.ExitFailure {
		t.Errorf("unknown topic returned %v, want failure", status)
	}
}
