// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureAbsolute - ensure the path is absolute
// if not, prepend the directory to make absolute path
func EnsureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}

// DataDirectory - resolve the data directory setting
//
// "." means the directory containing the configuration file; the
// result must be an existing directory
func DataDirectory(configurationFileName string, setting string) (string, error) {
	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return "", err
	}

	var directory string
	switch setting {
	case "", "~":
		return "", fmt.Errorf("Path: %q is not a valid directory", setting)
	case ".":
		directory, _ = filepath.Split(configurationFileName)
	default:
		directory = setting
	}
	directory = filepath.Clean(directory)

	fileInfo, err := os.Stat(directory)
	if nil != err {
		return "", err
	}
	if !fileInfo.IsDir() {
		return "", fmt.Errorf("Path: %q is not a directory", directory)
	}
	return directory, nil
}

// PlainName - fail if name contains a directory part, otherwise place
// it in directory
func PlainName(directory string, name string) (string, error) {
	switch filepath.Dir(name) {
	case "", ".":
		return EnsureAbsolute(directory, name), nil
	default:
		return "", fmt.Errorf("Files: %q is not plain name", name)
	}
}
