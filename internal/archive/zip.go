package archive

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zip"
)

func writeZip(out io.Writer, source, skip string) error {
	zw := zip.NewWriter(out)

	err := walkSource(source, skip, func(e sourceEntry) error {
		info := e.info
		if info.Mode()&os.ModeSymlink != 0 {
			// Links are archived as the file they point at; linked directories are skipped.
			target, err := os.Stat(e.path)
			if err != nil || target.IsDir() {
				return nil
			}
			info = target
		}

		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		header.Name = e.name
		if info.IsDir() {
			header.Name += "/"
			header.Method = zip.Store
			_, err := zw.CreateHeader(header)
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		header.Method = zip.Deflate

		w, err := zw.CreateHeader(header)
		if err != nil {
			return err
		}
		f, err := os.Open(e.path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(w, f)
		return err
	})
	if err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

func extractZip(archivePath, dest string, lim *limiter) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return err
	}
	defer zr.Close()

	for _, f := range zr.File {
		target, err := entryTarget(dest, f.Name)
		if err != nil {
			return err
		}
		if target, err = resolveWithin(dest, target, f.Name); err != nil {
			return err
		}
		if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := lim.admit(int64(f.UncompressedSize64)); err != nil {
			return err
		}
		if err := extractZipFile(f, target, lim.cfg.MaxFileSize); err != nil {
			return err
		}
	}
	return nil
}

func extractZipFile(f *zip.File, target string, maxSize int64) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	return writeFile(target, rc, f.Mode(), maxSize)
}
