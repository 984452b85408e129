package shell

import (
	"github.com/Cyclone1070/msh/internal/archive"
)

// Zip archives source as a zip file. The default name is basename(source)+".zip".
func (e *Executor) Zip(source, name string) *Result {
	return e.createArchive("zip", source, name, archive.FormatZip, "Archive created: ")
}

// Tar archives source as a gzip-compressed tar file.
func (e *Executor) Tar(source, name string) *Result {
	return e.createArchive("tar", source, name, archive.FormatTarGz, "TAR.GZ archive created: ")
}

// Unzip extracts a zip archive, defaulting to the virtual cwd.
func (e *Executor) Unzip(archiveName, dest string) *Result {
	return e.extractArchive("unzip", archiveName, dest, archive.FormatZip)
}

// Untar extracts a gzip-compressed tar archive, defaulting to the virtual cwd.
func (e *Executor) Untar(archiveName, dest string) *Result {
	return e.extractArchive("untar", archiveName, dest, archive.FormatTarGz)
}

func (e *Executor) createArchive(verb, source, name string, format archive.Format, message string) *Result {
	src := e.resolve(source)
	if name == "" {
		name = archive.DefaultName(src, format)
	}
	text := commandText(verb, source, name)

	if err := e.archives.Create(src, e.resolve(name), format); err != nil {
		return e.fail(text, err)
	}
	return e.succeed(text, verb, map[string]any{"source": source, "archive": name}, message+name)
}

func (e *Executor) extractArchive(verb, archiveName, dest string, format archive.Format) *Result {
	target := e.session.Cwd
	if dest != "" {
		target = e.resolve(dest)
	}
	text := commandText(verb, archiveName, target)

	if err := e.archives.Extract(e.resolve(archiveName), target, format); err != nil {
		return e.fail(text, err)
	}
	return e.succeed(text, verb, map[string]any{"archive": archiveName, "path": target}, "Extracted to: "+target)
}
