package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bnema/framer/internal/domain"
	"github.com/bnema/framer/internal/port"
	"github.com/klauspost/compress/zip"
)

// Zip packs files flat, by base name, into a single archive. PNG frames are
// already compressed so entries are stored without deflate.
type Zip struct{}

func NewZip() *Zip {
	return &Zip{}
}

func (z *Zip) Archive(ctx context.Context, files []string, destPath string) (err error) {
	if len(files) == 0 {
		return fmt.Errorf("%w: nothing to archive", domain.ErrPackagingFailed)
	}

	tmpPath := destPath + ".tmp"
	out, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPackagingFailed, err)
	}
	defer func() {
		if err != nil {
			_ = out.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	zw := zip.NewWriter(out)
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := addFile(zw, path); err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrPackagingFailed, filepath.Base(path), err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPackagingFailed, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPackagingFailed, err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPackagingFailed, err)
	}
	return nil
}

func addFile(zw *zip.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = filepath.Base(path)
	header.Method = zip.Store

	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, f)
	return err
}

var _ port.Archiver = (*Zip)(nil)
