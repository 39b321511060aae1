package configutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

func splitExt(f string) (string, string) {
	for i := len(f) - 1; i >= 0; i-- {
		if f[i] == '.' {
			return f[0:i], f[i+1:]
		}
	}
	return f, ""
}

// ReadConfig reads a json5 configuration file, `name` should come with a
// file extension. The following files are merged, where higher number is
// more prioritized:
// 1. <name>.<ext>
// 2. <name>.local.<ext>
func ReadConfig[T any](name string) (T, error) {
	var out T
	allNotFound := true

	dirname := filepath.Dir(name)
	basename := filepath.Base(name)
	prefixname, ext := splitExt(basename)

	defaultFile, err := os.ReadFile(name)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(defaultFile) > 0 {
		err = json5.Unmarshal(defaultFile, &out)
		if err != nil {
			return out, err
		}
		allNotFound = false
	}

	localFilepath := filepath.Join(
		dirname,
		fmt.Sprintf("%s.local.%s", prefixname, ext),
	)
	localFile, err := os.ReadFile(localFilepath)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(localFile) > 0 {
		var override T
		err = json5.Unmarshal(localFile, &override)
		if err != nil {
			return out, err
		}
		err = mergo.Merge(&out, override, mergo.WithOverride)
		if err != nil {
			return out, err
		}
		slog.Info("merging config with local overrides", "local", localFilepath)
		allNotFound = false
	}

	if allNotFound {
		return out, os.ErrNotExist
	}

	return out, nil
}

// ReadRecursively behaves like ReadConfig but walks up the filesystem from
// the working directory until it finds a configuration file matching the
// name.
func ReadRecursively[T any](name string) (T, error) {
	var defaultOut T

	dir, err := os.Getwd()
	if err != nil {
		return defaultOut, err
	}

	for {
		out, err := ReadConfig[T](filepath.Join(dir, name))
		if err == nil {
			return out, nil
		}
		if !os.IsNotExist(err) {
			return defaultOut, err
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return defaultOut, os.ErrNotExist
		}
		dir = parent
	}
}
