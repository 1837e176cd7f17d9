package walker

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xgillard/thumbnails/internal/entities"
)

// Walk descends the source tree and calls fn once for every regular file
// whose extension matches ext (case-insensitive, leading dot ignored; an
// empty ext matches everything). The destination name is the file stem
// plus ".jpg", and the mirrored destination directory is created before
// the item is handed out, so a consumer may write the thumbnail right
// away.
//
// Any traversal error, and any error returned by fn, stops the walk and
// is returned as-is; the caller decides between failing fast and
// collecting errors.
func Walk(src, dst, ext string, fn func(item entities.WorkItem) error) error {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if !matches(d.Name(), ext) {
			return nil
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		stem := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
		dstPath := filepath.Join(dst, filepath.Dir(rel), stem+".jpg")

		// Only directories that actually contain a matching file get
		// mirrored; MkdirAll takes care of their ancestors.
		if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
			return err
		}

		return fn(entities.WorkItem{SrcPath: path, DstPath: dstPath})
	})
}

// Enumerate builds the ordered work list for one run. The order reflects
// directory-enumeration order and is not guaranteed stable across
// platforms. The first traversal error aborts the whole enumeration.
func Enumerate(src, dst, ext string) ([]entities.WorkItem, error) {
	items := make([]entities.WorkItem, 0, 128)
	err := Walk(src, dst, ext, func(item entities.WorkItem) error {
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func matches(name, ext string) bool {
	if ext == "" {
		return true
	}
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".") == ext
}
