// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysfs

import (
	"os"
	"path/filepath"
	"testing"

	C "gopkg.in/check.v1"
)

type sysfsSuite struct {
	dir string
}

func init() {
	C.Suite(&sysfsSuite{})
}

func Test(t *testing.T) {
	C.TestingT(t)
}

func (s *sysfsSuite) SetUpTest(c *C.C) {
	s.dir = c.MkDir()
}

func (s *sysfsSuite) node(c *C.C, name, content string, mode os.FileMode) string {
	path := filepath.Join(s.dir, name)
	err := os.WriteFile(path, []byte(content), mode)
	c.Assert(err, C.IsNil)
	return path
}

func (s *sysfsSuite) TestReadOneLine(c *C.C) {
	path := s.node(c, "camera_enable", "1\nignored\n", 0644)
	line, err := ReadOneLine(path)
	c.Assert(err, C.IsNil)
	c.Check(line, C.Equals, "1")

	path = s.node(c, "no_newline", "0", 0644)
	line, err = ReadOneLine(path)
	c.Assert(err, C.IsNil)
	c.Check(line, C.Equals, "0")
}

func (s *sysfsSuite) TestReadErrors(c *C.C) {
	_, err := ReadOneLine("")
	c.Check(err, C.Equals, ErrEmptyPath)

	_, err = ReadOneLine(filepath.Join(s.dir, "missing"))
	c.Check(err, C.NotNil)

	path := s.node(c, "empty", "", 0644)
	_, err = ReadOneLine(path)
	c.Check(err, C.NotNil)
}

func (s *sysfsSuite) TestWriteLine(c *C.C) {
	path := s.node(c, "music_enable", "0\n", 0644)
	c.Assert(WriteLine(path, "1"), C.IsNil)
	content, err := os.ReadFile(path)
	c.Assert(err, C.IsNil)
	c.Check(string(content), C.Equals, "1\n")
}

func (s *sysfsSuite) TestWriteDoesNotCreate(c *C.C) {
	path := filepath.Join(s.dir, "absent")
	c.Check(WriteLine(path, "1"), C.NotNil)
	_, err := os.Stat(path)
	c.Check(os.IsNotExist(err), C.Equals, true)
}

func (s *sysfsSuite) TestAccess(c *C.C) {
	path := s.node(c, "flashlight_enable", "0\n", 0644)
	c.Check(IsFileReadable(path), C.Equals, true)
	c.Check(IsFileWritable(path), C.Equals, true)
	c.Check(IsFileReadable(""), C.Equals, false)
	c.Check(IsFileWritable(filepath.Join(s.dir, "missing")), C.Equals, false)
}
