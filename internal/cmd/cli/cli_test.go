package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/rzbill/sift/pkg/batch"
)

func TestReconcileCommandEndToEnd(t *testing.T) {
	dir := t.TempDir()
	common := []string{"--data-dir", dir, "--checkpoint", "job-a"}

	topicArgs := func(args ...string) []string { return append(args, common...) }

	topic := NewTopicCommand(zap.NewNop())
	topic.SetArgs(topicArgs("create", "src", "--partitions", "1"))
	if err := topic.Execute(); err != nil {
		t.Fatalf("create src: %v", err)
	}
	topic = NewTopicCommand(zap.NewNop())
	topic.SetArgs(topicArgs("create", "dst", "--partitions", "2"))
	if err := topic.Execute(); err != nil {
		t.Fatalf("create dst: %v", err)
	}
	topic = NewTopicCommand(zap.NewNop())
	topic.SetArgs(topicArgs("append", "src",
		"--value", `{"id":"a"}`, "--value", `{"id":"b"}`, "--value", `{"id":"c"}`))
	if err := topic.Execute(); err != nil {
		t.Fatalf("append src: %v", err)
	}
	topic = NewTopicCommand(zap.NewNop())
	topic.SetArgs(topicArgs("append", "dst", "--value", `{"id":"b"}`))
	if err := topic.Execute(); err != nil {
		t.Fatalf("append dst: %v", err)
	}

	// cycle 1 recorded offsets past "a" but never committed
	cp := NewCheckpointCommand(zap.NewNop())
	cp.SetArgs(topicArgs("offsets", "1", "--entry", `[{"source":"src","offsets":{"0":1}}]`))
	if err := cp.Execute(); err != nil {
		t.Fatalf("write offsets: %v", err)
	}

	input := filepath.Join(dir, "in.json")
	output := filepath.Join(dir, "out.json")
	if err := os.WriteFile(input, []byte(`[{"id":"b"},{"id":"d"}]`), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	rec := NewReconcileCommand(zap.NewNop())
	rec.SetArgs(topicArgs(
		"--source-topic", "src",
		"--sink-topic", "dst",
		"--poll-timeout-ms", "20",
		"--input", input,
		"--output", output,
	))
	if err := rec.Execute(); err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	raw, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var got batch.Batch
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(got) != 1 || got[0]["id"] != "d" {
		t.Fatalf("want [d], got %v", got)
	}
}

func TestStatusCommandCleanLocation(t *testing.T) {
	dir := t.TempDir()
	status := NewStatusCommand(zap.NewNop())
	status.SetArgs([]string{"--data-dir", dir, "--checkpoint", "job-a"})
	if err := status.Execute(); err != nil {
		t.Fatalf("status: %v", err)
	}
}

func TestStatusCommandRequiresCheckpoint(t *testing.T) {
	dir := t.TempDir()
	status := NewStatusCommand(zap.NewNop())
	status.SetArgs([]string{"--data-dir", dir})
	if err := status.Execute(); err == nil {
		t.Fatalf("expected error without checkpoint location")
	}
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sift.yaml")
	if err := os.WriteFile(cfgPath, []byte("checkpoint: from-file\nsourceTopic: in\nsinkTopic: out\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cmd := NewStatusCommand(zap.NewNop())
	if err := cmd.Flags().Set("config", cfgPath); err != nil {
		t.Fatalf("set config flag: %v", err)
	}
	if err := cmd.Flags().Set("checkpoint", "from-flag"); err != nil {
		t.Fatalf("set checkpoint flag: %v", err)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Checkpoint != "from-flag" || cfg.SourceTopic != "in" {
		t.Fatalf("flag must override file: %+v", cfg)
	}
}
