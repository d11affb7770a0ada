package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-arcade/menuroute/pkg/menuroute"
	"github.com/pkg/errors"
)

// FileSource reads <dir>/<key>.json.
type FileSource struct {
	dir       string
	listField string
}

func NewFileSource(dir, listField string) *FileSource {
	return &FileSource{dir: dir, listField: listField}
}

func (s *FileSource) Load(ctx context.Context, key string) ([]menuroute.MenuItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return nil, errors.Errorf("invalid menu key %q", key)
	}

	path := filepath.Join(s.dir, key+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrItemsNotFound, "file %s", path)
		}
		return nil, errors.Wrapf(err, "read %s", path)
	}

	items, err := decodePayload(data, s.listField, true)
	if err != nil {
		return nil, errors.Wrapf(err, "file %s", path)
	}
	return items, nil
}
