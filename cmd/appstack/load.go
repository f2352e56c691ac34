// load.go resolves CLI arguments (files or directory roots) into raw stack documents.
package main

import (
	"fmt"
	"os"

	"github.com/example/appstack/internal/stackfile"
)

type stackDoc struct {
	Path string
	Raw  map[string]any
}

// loadStackDocs loads every argument: plain files directly, directories via
// stack.yaml discovery. Order follows the arguments, with discovered files
// in sorted path order.
func loadStackDocs(args []string) ([]stackDoc, error) {
	var docs []stackDoc
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		paths := []string{arg}
		if info.IsDir() {
			paths, err = stackfile.Discover(arg)
			if err != nil {
				return nil, err
			}
		}
		for _, path := range paths {
			raw, err := stackfile.Load(path)
			if err != nil {
				return nil, err
			}
			docs = append(docs, stackDoc{Path: path, Raw: raw})
		}
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no stack files given")
	}
	return docs, nil
}
