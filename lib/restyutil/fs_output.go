package restyutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// FilesystemOutput dumps each instrumented http exchange to its own
// numbered file under a directory. The directory is recreated from
// scratch on startup so old dumps never mix with the current run.
type FilesystemOutput struct {
	directory string
}

func NewFilesystemOutput(dir string) FilesystemOutput {
	os.RemoveAll(dir)
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		panic(err)
	}
	return FilesystemOutput{directory: dir}
}

func (o FilesystemOutput) Write(id string, contents string) {
	name := filepath.Join(o.directory, fmt.Sprintf("%s.http", id))
	err := os.WriteFile(name, []byte(contents), 0600)
	if err != nil {
		slog.Warn("failed to write http dump", "file", name, "err", err)
	}
}
