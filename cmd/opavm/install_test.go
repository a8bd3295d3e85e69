package main

import (
	"testing"

	"opavm/internal/fault"
)

func TestResolveInstallTarget(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		toolFlag    string
		wantTool    string
		wantVersion string
		wantKind    fault.Kind
		wantErr     bool
	}{
		{name: "bare version defaults to opa", args: []string{"0.55.0"}, wantTool: "opa", wantVersion: "0.55.0"},
		{name: "tool then version", args: []string{"regal", "0.38.1"}, wantTool: "regal", wantVersion: "0.38.1"},
		{name: "version with tool flag", args: []string{"0.38.1"}, toolFlag: "regal", wantTool: "regal", wantVersion: "0.38.1"},
		{name: "tool flag case-insensitive", args: []string{"0.55.0"}, toolFlag: "OPA", wantTool: "opa", wantVersion: "0.55.0"},
		{name: "tool flag with two args", args: []string{"regal", "0.38.1"}, toolFlag: "regal", wantErr: true, wantKind: fault.KindUsage},
		{name: "bare tool name means latest", args: []string{"regal"}, wantTool: "regal", wantVersion: "latest"},
		{name: "tool flag with tool name subject means latest", args: []string{"regal"}, toolFlag: "regal", wantTool: "regal", wantVersion: "latest"},
		{name: "unknown positional tool", args: []string{"conftest", "0.1.0"}, wantErr: true, wantKind: fault.KindUnknownTool},
		{name: "unknown tool flag", args: []string{"0.1.0"}, toolFlag: "conftest", wantErr: true, wantKind: fault.KindUnknownTool},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, version, err := resolveInstallTarget(tt.args, tt.toolFlag)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got tool=%s version=%s", spec.Name, version)
				}
				if !fault.IsKind(err, tt.wantKind) {
					t.Fatalf("wrong error kind: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if spec.Name != tt.wantTool {
				t.Errorf("tool = %s, want %s", spec.Name, tt.wantTool)
			}
			if version != tt.wantVersion {
				t.Errorf("version = %s, want %s", version, tt.wantVersion)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
