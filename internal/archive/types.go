package archive

// Format selects the archive codec. It is chosen by the command verb, never sniffed from content.
type Format int

const (
	FormatZip Format = iota
	FormatTarGz
)

// Extension returns the default file suffix for the format.
func (f Format) Extension() string {
	switch f {
	case FormatTarGz:
		return ".tar.gz"
	default:
		return ".zip"
	}
}

func (f Format) String() string {
	switch f {
	case FormatTarGz:
		return "tar.gz"
	default:
		return "zip"
	}
}
