package platform

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		osName  string
		arch    string
		want    Info
		wantErr bool
	}{
		{name: "linux_amd64", osName: "linux", arch: "amd64", want: Info{OS: "linux", Arch: "amd64"}},
		{name: "linux_x86_64", osName: "linux", arch: "x86_64", want: Info{OS: "linux", Arch: "amd64"}},
		{name: "linux_aarch64", osName: "linux", arch: "aarch64", want: Info{OS: "linux", Arch: "arm64"}},
		{name: "darwin_arm64", osName: "darwin", arch: "arm64", want: Info{OS: "darwin", Arch: "arm64"}},
		{name: "darwin_uppercase", osName: "Darwin", arch: "ARM64", want: Info{OS: "darwin", Arch: "arm64"}},
		{name: "windows_amd64", osName: "windows", arch: "amd64", want: Info{OS: "windows", Arch: "amd64"}},
		{name: "windows_arm64_rejected", osName: "windows", arch: "arm64", wantErr: true},
		{name: "windows_aarch64_rejected", osName: "windows", arch: "aarch64", wantErr: true},
		{name: "unknown_os", osName: "plan9", arch: "amd64", wantErr: true},
		{name: "unknown_arch", osName: "linux", arch: "riscv64", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.osName, tt.arch)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s/%s", tt.osName, tt.arch)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%s, %s) = %+v, want %+v", tt.osName, tt.arch, got, tt.want)
			}
		})
	}
}

func TestAssetNameCandidates(t *testing.T) {
	tests := []struct {
		name       string
		info       Info
		binaryBase string
		want       []string
	}{
		{
			name:       "opa_linux_amd64",
			info:       Info{OS: "linux", Arch: "amd64"},
			binaryBase: "opa",
			want:       []string{"opa_linux_amd64"},
		},
		{
			name:       "opa_linux_arm64_static_fallback",
			info:       Info{OS: "linux", Arch: "arm64"},
			binaryBase: "opa",
			want:       []string{"opa_linux_arm64", "opa_linux_arm64_static"},
		},
		{
			name:       "opa_darwin_arm64_static_fallback",
			info:       Info{OS: "darwin", Arch: "arm64"},
			binaryBase: "opa",
			want:       []string{"opa_darwin_arm64", "opa_darwin_arm64_static"},
		},
		{
			name:       "opa_windows_exe",
			info:       Info{OS: "windows", Arch: "amd64"},
			binaryBase: "opa",
			want:       []string{"opa_windows_amd64.exe"},
		},
		{
			name:       "non_opa_arm64_no_fallback",
			info:       Info{OS: "linux", Arch: "arm64"},
			binaryBase: "tool",
			want:       []string{"tool_linux_arm64"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssetNameCandidates(tt.info, tt.binaryBase)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("candidates = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBinaryFilename(t *testing.T) {
	if got := BinaryFilename("linux", "opa"); got != "opa" {
		t.Errorf("linux filename = %q, want opa", got)
	}
	if got := BinaryFilename("windows", "opa"); got != "opa.exe" {
		t.Errorf("windows filename = %q, want opa.exe", got)
	}
}

func TestDetect(t *testing.T) {
	// Detect reads the live runtime; on any platform the test suite runs,
	// the result must be one of the supported pairs.
	info, err := Detect()
	if err != nil {
		t.Skipf("unsupported test platform: %v", err)
	}
	switch info.OS {
	case "darwin", "linux", "windows":
	default:
		t.Errorf("unexpected OS %q", info.OS)
	}
	if info.Arch != "amd64" && info.Arch != "arm64" {
		t.Errorf("unexpected arch %q", info.Arch)
	}
}
