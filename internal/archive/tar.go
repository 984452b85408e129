package archive

import (
	"archive/tar"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
)

func writeTarGz(out io.Writer, source, skip string) error {
	gw := gzip.NewWriter(out)
	tw := tar.NewWriter(gw)

	err := walkSource(source, skip, func(e sourceEntry) error {
		var link string
		if e.info.Mode()&os.ModeSymlink != 0 {
			target, err := os.Readlink(e.path)
			if err != nil {
				return err
			}
			link = target
		}

		header, err := tar.FileInfoHeader(e.info, link)
		if err != nil {
			// Sockets and devices have no tar representation worth keeping.
			return nil
		}
		header.Name = e.name
		if e.info.IsDir() {
			header.Name += "/"
		}
		if err := tw.WriteHeader(header); err != nil {
			return err
		}
		if !e.info.Mode().IsRegular() {
			return nil
		}

		f, err := os.Open(e.path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(tw, f)
		return err
	})
	if err != nil {
		tw.Close()
		gw.Close()
		return err
	}
	if err := tw.Close(); err != nil {
		gw.Close()
		return err
	}
	return gw.Close()
}

func extractTarGz(archivePath, dest string, lim *limiter) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	gr, err := gzip.NewReader(f)
	if err != nil {
		return err
	}
	defer gr.Close()

	tr := tar.NewReader(gr)
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		target, err := entryTarget(dest, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			resolved, err := resolveWithin(dest, target, header.Name)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(resolved, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			resolved, err := resolveWithin(dest, target, header.Name)
			if err != nil {
				return err
			}
			if err := lim.admit(header.Size); err != nil {
				return err
			}
			if err := writeFile(resolved, tr, fs.FileMode(header.Mode), lim.cfg.MaxFileSize); err != nil {
				return err
			}
		case tar.TypeSymlink:
			parent, err := resolveWithin(dest, filepath.Dir(target), header.Name)
			if err != nil {
				return err
			}
			link := filepath.Join(parent, filepath.Base(target))
			if err := linkTarget(dest, link, header.Linkname); err != nil {
				return err
			}
			if err := lim.admit(0); err != nil {
				return err
			}
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return err
			}
			_ = os.Remove(link)
			if err := os.Symlink(header.Linkname, link); err != nil {
				return err
			}
		}
	}
}
