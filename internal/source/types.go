package source

type (
	// FileID identifies a source file within a FileSet.
	FileID uint32
	// FileFlags records how a file entered the FileSet.
	FileFlags uint8
)

const (
	// FileVirtual marks a file added from memory (tests, stdin).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM marks a file whose UTF-8 byte order mark was stripped.
	FileHadBOM
	// FileNormalizedCRLF marks a file whose CRLF line endings were rewritten.
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	// LineIdx holds the byte offset of every '\n'.
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
