package screenshot

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/TfGMEnterprise/departure-board/repository"
	"github.com/pkg/errors"
)

// DefaultPath is where the image is written when no other store is set.
const DefaultPath = "static/image.png"

// FileImageStore keeps the image at Path. Writes go to a temporary file that
// is renamed into place, so readers never see a partial image.
type FileImageStore struct {
	Path string
}

func (fs *FileImageStore) Put(ctx context.Context, png []byte) error {
	dir := filepath.Dir(fs.Path)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "cannot create `%s`", dir)
	}

	tmp, err := ioutil.TempFile(dir, ".image-*.png")
	if err != nil {
		return errors.Wrapf(err, "cannot create temporary file in `%s`", dir)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(png); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "cannot write `%s`", tmp.Name())
	}

	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "cannot close `%s`", tmp.Name())
	}

	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return errors.Wrapf(err, "cannot set permissions on `%s`", tmp.Name())
	}

	if err := os.Rename(tmp.Name(), fs.Path); err != nil {
		return errors.Wrapf(err, "cannot move image to `%s`", fs.Path)
	}

	return nil
}

func (fs *FileImageStore) Get(ctx context.Context) ([]byte, error) {
	png, err := ioutil.ReadFile(fs.Path)
	if os.IsNotExist(err) {
		return nil, repository.ErrImageNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read `%s`", fs.Path)
	}
	return png, nil
}
