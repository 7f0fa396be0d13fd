package vault

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"study-go/internal/config"
	"study-go/internal/study"
)

// vaults returns a fresh instance of every backend.
func vaults(t *testing.T) map[string]study.Vault {
	t.Helper()
	fsv, err := NewFileSystemVault("test", filepath.Join(t.TempDir(), "vault"))
	if err != nil {
		t.Fatalf("NewFileSystemVault() error = %v", err)
	}
	return map[string]study.Vault{
		"memory":     NewMemoryVault("test"),
		"filesystem": fsv,
	}
}

func TestVault_PutGetSnapshot(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		size    int64
		wantErr bool
	}{
		{name: "store snapshot", data: "encrypted bytes", size: 15},
		{name: "size mismatch", data: "short", size: 100, wantErr: true},
		{name: "empty snapshot", data: "", size: 0},
	}

	for backend, v := range vaults(t) {
		for _, tt := range tests {
			t.Run(backend+"/"+tt.name, func(t *testing.T) {
				err := v.PutSnapshot(tt.name, strings.NewReader(tt.data), tt.size, 3)
				if (err != nil) != tt.wantErr {
					t.Fatalf("PutSnapshot() error = %v, wantErr %v", err, tt.wantErr)
				}
				if tt.wantErr {
					version, err := v.SnapshotVersion(tt.name)
					if err != nil || version != 0 {
						t.Errorf("SnapshotVersion() after failed put = %d, %v; want 0", version, err)
					}
					return
				}

				var buf bytes.Buffer
				if err := v.GetSnapshot(tt.name, &buf); err != nil {
					t.Fatalf("GetSnapshot() error = %v", err)
				}
				if buf.String() != tt.data {
					t.Errorf("GetSnapshot() = %q, want %q", buf.String(), tt.data)
				}

				version, err := v.SnapshotVersion(tt.name)
				if err != nil {
					t.Fatalf("SnapshotVersion() error = %v", err)
				}
				if version != 3 {
					t.Errorf("SnapshotVersion() = %d, want 3", version)
				}
			})
		}
	}
}

func TestVault_Overwrite(t *testing.T) {
	for backend, v := range vaults(t) {
		t.Run(backend, func(t *testing.T) {
			v.PutSnapshot("db", strings.NewReader("first"), 5, 1)
			if err := v.PutSnapshot("db", strings.NewReader("second"), 6, 2); err != nil {
				t.Fatalf("PutSnapshot() error = %v", err)
			}

			var buf bytes.Buffer
			if err := v.GetSnapshot("db", &buf); err != nil {
				t.Fatalf("GetSnapshot() error = %v", err)
			}
			if buf.String() != "second" {
				t.Errorf("GetSnapshot() = %q, want %q", buf.String(), "second")
			}
			if version, _ := v.SnapshotVersion("db"); version != 2 {
				t.Errorf("SnapshotVersion() = %d, want 2", version)
			}
		})
	}
}

func TestVault_Missing(t *testing.T) {
	for backend, v := range vaults(t) {
		t.Run(backend, func(t *testing.T) {
			var buf bytes.Buffer
			if err := v.GetSnapshot("db", &buf); err == nil {
				t.Error("GetSnapshot() expected error for missing snapshot")
			}
			version, err := v.SnapshotVersion("db")
			if err != nil || version != 0 {
				t.Errorf("SnapshotVersion() = %d, %v; want 0, nil", version, err)
			}
			if err := v.ValidateSetup(); err != nil {
				t.Errorf("ValidateSetup() error = %v", err)
			}
		})
	}
}

func TestFileSystemVault_Layout(t *testing.T) {
	root := filepath.Join(t.TempDir(), "vault")
	v, err := NewFileSystemVault("test", root)
	if err != nil {
		t.Fatalf("NewFileSystemVault() error = %v", err)
	}

	if err := v.PutSnapshot("db", strings.NewReader("abc"), 3, 42); err != nil {
		t.Fatalf("PutSnapshot() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "snapshots", "db.version"))
	if err != nil {
		t.Fatalf("version file missing: %v", err)
	}
	if string(data) != "42" {
		t.Errorf("version file = %q, want 42", data)
	}

	entries, err := os.ReadDir(filepath.Join(root, "snapshots"))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestFileSystemVault_ValidateSetup(t *testing.T) {
	root := filepath.Join(t.TempDir(), "vault")
	v, err := NewFileSystemVault("test", root)
	if err != nil {
		t.Fatalf("NewFileSystemVault() error = %v", err)
	}

	if err := os.RemoveAll(root); err != nil {
		t.Fatal(err)
	}
	if err := v.ValidateSetup(); err == nil {
		t.Error("ValidateSetup() expected error after root was removed")
	}
}

func TestNewVaultFromConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.VaultConfig
		wantNil bool
		wantErr bool
	}{
		{name: "none", cfg: config.VaultConfig{Type: "none"}, wantNil: true},
		{name: "empty type", cfg: config.VaultConfig{}, wantNil: true},
		{name: "memory", cfg: config.VaultConfig{Type: "memory"}},
		{name: "filesystem", cfg: config.VaultConfig{Type: "filesystem", Root: t.TempDir()}},
		{name: "filesystem without root", cfg: config.VaultConfig{Type: "filesystem"}, wantErr: true},
		{name: "unknown", cfg: config.VaultConfig{Type: "s3"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewVaultFromConfig(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewVaultFromConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if (got == nil) != tt.wantNil {
				t.Errorf("NewVaultFromConfig() = %v, wantNil %v", got, tt.wantNil)
			}
		})
	}
}
