package catalog

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"quiz-exam/internal/domain"
	"quiz-exam/internal/logger"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ExamFileExt is the extension of question bank files inside a course folder.
const ExamFileExt = ".md"

// FSCatalog implements domain.CourseCatalog over a folder laid out as
// <root>/<course>/<exam>.md.
type FSCatalog struct {
	fs   afero.Fs
	root string
}

// NewFSCatalog creates a catalog rooted at root on the given filesystem.
func NewFSCatalog(fsys afero.Fs, root string) *FSCatalog {
	return &FSCatalog{fs: fsys, root: root}
}

// NewOSCatalog is NewFSCatalog on the real filesystem.
func NewOSCatalog(root string) *FSCatalog {
	return NewFSCatalog(afero.NewOsFs(), root)
}

// ListCourses returns the sub-directories of the exams folder.
func (c *FSCatalog) ListCourses(ctx context.Context) []string {
	entries, err := afero.ReadDir(c.fs, c.root)
	if err != nil {
		logListError("courses", c.root, err)
		return []string{}
	}
	courses := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			courses = append(courses, e.Name())
		}
	}
	sort.Strings(courses)
	return courses
}

// ListExamFiles returns the bank files of course.
func (c *FSCatalog) ListExamFiles(ctx context.Context, course string) []string {
	dir, ok := c.coursePath(course)
	if !ok {
		return []string{}
	}
	entries, err := afero.ReadDir(c.fs, dir)
	if err != nil {
		logListError("exam files", dir, err)
		return []string{}
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ExamFileExt) {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files
}

// ReadExamFile returns the raw content of one bank file.
func (c *FSCatalog) ReadExamFile(ctx context.Context, course, name string) ([]byte, error) {
	dir, ok := c.coursePath(course)
	if !ok || !isPlainName(name) || !strings.HasSuffix(name, ExamFileExt) {
		return nil, domain.NewInvalidInputError("invalid exam file " + name)
	}
	data, err := afero.ReadFile(c.fs, filepath.Join(dir, name))
	if err != nil {
		return nil, domain.NewParseError(filepath.Join(course, name), err)
	}
	return data, nil
}

func (c *FSCatalog) coursePath(course string) (string, bool) {
	if !isPlainName(course) {
		return "", false
	}
	return filepath.Join(c.root, course), true
}

// isPlainName rejects anything that could escape the exams folder.
func isPlainName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

func logListError(what, path string, err error) {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Get().Warn("Catalog folder does not exist", zap.String("list", what), zap.String("path", path))
	case errors.Is(err, fs.ErrPermission):
		logger.Get().Warn("No permission to read catalog folder", zap.String("list", what), zap.String("path", path))
	default:
		logger.Get().Error("Failed to list catalog folder", zap.String("list", what), zap.String("path", path), zap.Error(err))
	}
}

// FileHeaderLoader reads the header/theme text from a file. An empty path
// yields an empty header.
type FileHeaderLoader struct {
	fs   afero.Fs
	path string
}

func NewFileHeaderLoader(fsys afero.Fs, path string) *FileHeaderLoader {
	return &FileHeaderLoader{fs: fsys, path: path}
}

// Load implements domain.HeaderLoader.
func (l *FileHeaderLoader) Load(ctx context.Context) (string, error) {
	if l.path == "" {
		return "", nil
	}
	data, err := afero.ReadFile(l.fs, l.path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
