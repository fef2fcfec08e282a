// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package sysfs reads and writes the single-line toggle files that kernel
// drivers expose under /sys and /proc.
package sysfs

import (
	"bufio"
	"errors"
	"os"
	"strings"

	"golang.org/x/sys/unix"
	"golang.org/x/xerrors"
)

var ErrEmptyPath = errors.New("empty node path")

// ReadOneLine returns the first line of path without the trailing newline.
func ReadOneLine(path string) (string, error) {
	if path == "" {
		return "", ErrEmptyPath
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	reader := bufio.NewReader(f)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", xerrors.Errorf("read %s: %w", path, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// WriteLine writes value followed by a newline. Nodes are never created.
func WriteLine(path, value string) error {
	if path == "" {
		return ErrEmptyPath
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return err
	}
	_, err = f.WriteString(value + "\n")
	if err1 := f.Close(); err == nil {
		err = err1
	}
	if err != nil {
		return xerrors.Errorf("write %s: %w", path, err)
	}
	return nil
}

func IsFileReadable(path string) bool {
	return path != "" && unix.Access(path, unix.R_OK) == nil
}

func IsFileWritable(path string) bool {
	return path != "" && unix.Access(path, unix.W_OK) == nil
}

// Store is the node access used by the gesture and device controllers.
type Store interface {
	ReadOneLine(path string) (string, error)
	WriteLine(path, value string) error
	IsFileReadable(path string) bool
	IsFileWritable(path string) bool
}

type fileStore struct{}

// NewStore returns a Store backed by the real file system.
func NewStore() Store {
	return fileStore{}
}

func (fileStore) ReadOneLine(path string) (string, error) { return ReadOneLine(path) }
func (fileStore) WriteLine(path, value string) error      { return WriteLine(path, value) }
func (fileStore) IsFileReadable(path string) bool         { return IsFileReadable(path) }
func (fileStore) IsFileWritable(path string) bool         { return IsFileWritable(path) }
