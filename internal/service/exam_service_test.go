package service_test

import (
	"context"
	"errors"
	"testing"

	"quiz-exam/internal/catalog"
	"quiz-exam/internal/domain"
	"quiz-exam/internal/service"
	"quiz-exam/internal/util"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func q(text string, answers ...string) domain.Question {
	return domain.Question{Text: text, Answers: answers, Correct: answers[:1]}
}

func TestAssemble_DeduplicatesFirstWins(t *testing.T) {
	fileA := domain.ExamSet{q("shared ", "a", "b"), q("only a ", "x")}
	fileB := domain.ExamSet{
		{Text: "shared ", Answers: []string{"b", "a"}, Correct: []string{"b"}},
		q("only b ", "y"),
	}

	got, err := service.Assemble([]domain.ExamSet{fileA, fileB}, 0, util.NewSeededRand(1))
	require.NoError(t, err)
	assert.Len(t, got, 3, "one fewer than the raw per-file sum")

	for _, question := range got {
		if question.Text == "shared " {
			assert.Equal(t, []string{"a"}, question.Correct, "first occurrence is kept")
		}
	}
}

func TestAssemble_TruncatesAndShuffles(t *testing.T) {
	var set domain.ExamSet
	for _, text := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		set = append(set, q(text, "x"))
	}

	got, err := service.Assemble([]domain.ExamSet{set}, 5, util.NewSeededRand(2))
	require.NoError(t, err)
	assert.Len(t, got, 5)

	seen := map[string]bool{}
	for _, question := range got {
		assert.False(t, seen[question.Text])
		seen[question.Text] = true
	}

	orders := map[string]bool{}
	for seed := uint64(0); seed < 20; seed++ {
		all, err := service.Assemble([]domain.ExamSet{set}, 0, util.NewSeededRand(seed))
		require.NoError(t, err)
		require.Len(t, all, len(set))
		key := ""
		for _, question := range all {
			key += question.Text
		}
		orders[key] = true
	}
	assert.Greater(t, len(orders), 1)
}

func TestAssemble_Empty(t *testing.T) {
	_, err := service.Assemble(nil, 10, util.NewSeededRand(1))
	assert.True(t, domain.HasCode(err, domain.ErrEmptyExam))

	_, err = service.Assemble([]domain.ExamSet{{}, nil}, 10, util.NewSeededRand(1))
	assert.True(t, domain.HasCode(err, domain.ErrEmptyExam))
}

func newExamFs(t *testing.T) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/exams/go/a.md", []byte("#### shared\n+ **1**\n+ 2\n#### only a\n+ **x**\n"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/exams/go/b.md", []byte("#### shared\n+ 2\n+ **1**\n#### only b\n+ **y**\n#### dropped\n"), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/exams/go/empty.md", []byte("nothing here\n"), 0o644))
	require.NoError(t, fsys.MkdirAll("/exams/empty", 0o755))
	return fsys
}

func TestExamService_BuildExam(t *testing.T) {
	svc := service.NewExamService(catalog.NewFSCatalog(newExamFs(t), "/exams"), 20)
	ctx := context.Background()

	got, err := svc.BuildExam(ctx, "go", []string{"a.md", "b.md"})
	require.NoError(t, err)
	assert.Len(t, got, 3)

	all, err := svc.BuildExam(ctx, "go", []string{service.AllFiles})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	single, err := svc.BuildExam(ctx, "go", []string{"a.md", "a.md"})
	require.NoError(t, err)
	assert.Len(t, single, 2)
}

func TestExamService_BuildExamErrors(t *testing.T) {
	svc := service.NewExamService(catalog.NewFSCatalog(newExamFs(t), "/exams"), 20)
	ctx := context.Background()

	_, err := svc.BuildExam(ctx, "go", nil)
	assert.True(t, domain.HasCode(err, domain.ErrInvalidInput))

	_, err = svc.BuildExam(ctx, "go", []string{"empty.md"})
	assert.True(t, domain.HasCode(err, domain.ErrEmptyExam))

	_, err = svc.BuildExam(ctx, "empty", []string{service.AllFiles})
	assert.True(t, domain.HasCode(err, domain.ErrInvalidInput))

	_, err = svc.BuildExam(ctx, "go", []string{"../secret.md"})
	assert.True(t, domain.HasCode(err, domain.ErrInvalidInput))
}

func TestExamService_SkipsUnreadableFiles(t *testing.T) {
	mockCatalog := new(MockCourseCatalog)
	mockCatalog.On("ReadExamFile", mock.Anything, "go", "good.md").Return([]byte("#### q\n+ **a**\n"), nil)
	mockCatalog.On("ReadExamFile", mock.Anything, "go", "bad.md").
		Return(nil, domain.NewParseError("go/bad.md", errors.New("permission denied")))

	svc := service.NewExamService(mockCatalog, 20)
	got, err := svc.BuildExam(context.Background(), "go", []string{"good.md", "bad.md"})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	mockCatalog.AssertExpectations(t)
}

func TestExamService_Listing(t *testing.T) {
	mockCatalog := new(MockCourseCatalog)
	mockCatalog.On("ListCourses", mock.Anything).Return([]string{"go"})
	mockCatalog.On("ListExamFiles", mock.Anything, "go").Return([]string{"a.md"})

	svc := service.NewExamService(mockCatalog, 20)
	assert.Equal(t, []string{"go"}, svc.ListCourses(context.Background()))
	assert.Equal(t, []string{"a.md"}, svc.ListExamFiles(context.Background(), "go"))
	mockCatalog.AssertExpectations(t)
}
