package staticcmd

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-folio/internal/generator"
)

type fakeGeneratorService struct {
	buildFunc func(ctx context.Context, opts generator.BuildOptions) (*generator.BuildResult, error)
	cleanFunc func(ctx context.Context) error
}

func (f *fakeGeneratorService) Build(ctx context.Context, opts generator.BuildOptions) (*generator.BuildResult, error) {
	if f.buildFunc == nil {
		return &generator.BuildResult{}, nil
	}
	return f.buildFunc(ctx, opts)
}

func (f *fakeGeneratorService) Clean(ctx context.Context) error {
	if f.cleanFunc == nil {
		return nil
	}
	return f.cleanFunc(ctx)
}

func TestBuildSiteHandler_Execute_DryRun(t *testing.T) {
	cmd := loadBuildFixture(t, "build_dry_run.json")

	var captured generator.BuildOptions
	svc := &fakeGeneratorService{
		buildFunc: func(ctx context.Context, opts generator.BuildOptions) (*generator.BuildResult, error) {
			captured = opts
			return &generator.BuildResult{Pages: 3, DryRun: opts.DryRun}, nil
		},
	}

	callbackInvoked := false
	cmd.ResultCallback = func(env ResultEnvelope) {
		callbackInvoked = true
		if env.Result == nil || env.Result.Pages != 3 {
			t.Fatalf("expected build result with 3 pages, got %#v", env.Result)
		}
		if env.Metadata["operation"] != "dry_run" {
			t.Fatalf("expected operation dry_run, got %v", env.Metadata["operation"])
		}
	}

	if err := NewBuildSiteHandler(svc, nil).Execute(context.Background(), cmd); err != nil {
		t.Fatalf("execute build: %v", err)
	}
	if !captured.DryRun || captured.ContentDir != "src/content" {
		t.Fatalf("unexpected build options %+v", captured)
	}
	if !callbackInvoked {
		t.Fatal("expected callback to be invoked")
	}
}

func TestBuildSiteHandler_Execute_PropagatesErrors(t *testing.T) {
	buildErr := errors.New("render failed")
	svc := &fakeGeneratorService{
		buildFunc: func(context.Context, generator.BuildOptions) (*generator.BuildResult, error) {
			return &generator.BuildResult{Errors: []error{buildErr}}, buildErr
		},
	}

	var envelope ResultEnvelope
	err := NewBuildSiteHandler(svc, nil).Execute(context.Background(), BuildSiteCommand{
		ResultCallback: func(env ResultEnvelope) { envelope = env },
	})
	if !errors.Is(err, buildErr) {
		t.Fatalf("expected build error, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if envelope.Result == nil || len(envelope.Result.Errors) != 1 {
		t.Fatalf("expected partial result in callback, got %#v", envelope)
	}
}

func TestBuildSiteHandler_RequiresService(t *testing.T) {
	err := NewBuildSiteHandler(nil, nil).Execute(context.Background(), BuildSiteCommand{})
	if !errors.Is(err, ErrGeneratorRequired) {
		t.Fatalf("expected ErrGeneratorRequired, got %v", err)
	}
}

func TestCleanSiteHandler_Execute(t *testing.T) {
	cleaned := false
	svc := &fakeGeneratorService{cleanFunc: func(context.Context) error {
		cleaned = true
		return nil
	}}
	if err := NewCleanSiteHandler(svc, nil).Execute(context.Background(), CleanSiteCommand{}); err != nil {
		t.Fatalf("execute clean: %v", err)
	}
	if !cleaned {
		t.Fatal("expected clean to run")
	}
}

func loadBuildFixture(t *testing.T, name string) BuildSiteCommand {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	var cmd BuildSiteCommand
	if err := json.Unmarshal(data, &cmd); err != nil {
		t.Fatalf("decode fixture %s: %v", name, err)
	}
	return cmd
}
