package driver

import (
	"gul/internal/diag"
	"gul/internal/lexer"
	"gul/internal/source"
	"gul/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes the file at path, including layout tokens.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	reporterAdapter := &lexer.ReporterAdapter{Bag: bag}

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  lexer.Tokenize(file, lexer.Options{Reporter: reporterAdapter.Reporter()}),
		Bag:     bag,
	}, nil
}
