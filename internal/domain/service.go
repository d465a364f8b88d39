package domain

import "context"

// CourseCatalog discovers courses and their exam files. Listing methods
// return an empty slice, not an error, when the folder is missing or
// unreadable.
type CourseCatalog interface {
	ListCourses(ctx context.Context) []string
	ListExamFiles(ctx context.Context, course string) []string
	ReadExamFile(ctx context.Context, course, name string) ([]byte, error)
}

// HeaderLoader returns the raw header/theme text shown above course lists.
type HeaderLoader interface {
	Load(ctx context.Context) (string, error)
}
