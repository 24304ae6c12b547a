package workspace

import (
	"errors"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func strPtr(v string) *string { return &v }

func TestResolveProjectDir(t *testing.T) {
	cases := []struct {
		name   string
		ctx    ExecutorContext
		want   string
		wantOK bool
	}{
		{
			name: "no project",
			ctx:  ExecutorContext{Root: "/r", NxJSONConfiguration: &NxJSONConfiguration{}},
		},
		{
			name:   "default libs folder",
			ctx:    ExecutorContext{ProjectName: strPtr("foo"), Root: "/r", NxJSONConfiguration: &NxJSONConfiguration{}},
			want:   "/r/libs/foo",
			wantOK: true,
		},
		{
			name: "scoped name with custom libs folder",
			ctx: ExecutorContext{
				ProjectName: strPtr("@scope/foo"),
				Root:        "/r",
				NxJSONConfiguration: &NxJSONConfiguration{
					WorkspaceLayout: &WorkspaceLayout{LibsDir: strPtr("packages")},
				},
			},
			want:   "/r/packages/foo",
			wantOK: true,
		},
		{
			name:   "missing configuration",
			ctx:    ExecutorContext{ProjectName: strPtr("bar"), Root: "/work"},
			want:   "/work/libs/bar",
			wantOK: true,
		},
		{
			name: "layout without libsDir",
			ctx: ExecutorContext{
				ProjectName:         strPtr("bar"),
				Root:                "/work",
				NxJSONConfiguration: &NxJSONConfiguration{WorkspaceLayout: &WorkspaceLayout{AppsDir: strPtr("apps")}},
			},
			want:   "/work/libs/bar",
			wantOK: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ResolveProjectDir(tc.ctx)
			if ok != tc.wantOK {
				t.Fatalf("expected ok=%v, got %v", tc.wantOK, ok)
			}
			if got != filepath.FromSlash(tc.want) {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestDefaultLibsDirIsOverridable(t *testing.T) {
	original := DefaultLibsDir
	t.Cleanup(func() { DefaultLibsDir = original })

	DefaultLibsDir = "packages"
	got, ok := ResolveProjectDir(ExecutorContext{ProjectName: strPtr("foo"), Root: "/r"})
	if !ok || got != filepath.FromSlash("/r/packages/foo") {
		t.Fatalf("expected override to apply, got %q", got)
	}
}

func TestReadLibsFolder(t *testing.T) {
	fsys := fstest.MapFS{
		"nx.json": {Data: []byte(`{"workspaceLayout":{"libsDir":"packages","appsDir":"apps"}}`)},
	}
	folder, err := ReadLibsFolder(fsys)
	if err != nil {
		t.Fatalf("read libs folder: %v", err)
	}
	if folder != "packages" {
		t.Fatalf("expected packages, got %q", folder)
	}
}

func TestReadLibsFolderMissingFile(t *testing.T) {
	folder, err := ReadLibsFolder(fstest.MapFS{})
	if err != nil {
		t.Fatalf("read libs folder: %v", err)
	}
	if folder != DefaultLibsDir {
		t.Fatalf("expected default folder, got %q", folder)
	}
}

func TestReadLibsFolderRejectsWrongTypes(t *testing.T) {
	fsys := fstest.MapFS{
		"nx.json": {Data: []byte(`{"workspaceLayout":{"libsDir":7}}`)},
	}
	if _, err := ReadLibsFolder(fsys); !errors.Is(err, ErrInvalidNxJSON) {
		t.Fatalf("expected ErrInvalidNxJSON, got %v", err)
	}
}
