package generator

import (
	"context"
	"fmt"
	"io/fs"
	"mime"
	"path"
	"sort"
	"strings"
)

// collectAssets reads every regular file of the public directory. Files
// keep their relative path in the output.
func collectAssets(ctx context.Context, public fs.FS) ([]artifact, error) {
	if public == nil {
		return nil, nil
	}
	var assets []artifact
	err := fs.WalkDir(public, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if name != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		data, err := fs.ReadFile(public, name)
		if err != nil {
			return fmt.Errorf("generator: read asset %s: %w", name, err)
		}
		assets = append(assets, artifact{
			Path:        name,
			Data:        data,
			Category:    CategoryAsset,
			ContentType: detectAssetContentType(name),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].Path < assets[j].Path })
	return assets, nil
}

func detectAssetContentType(name string) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
