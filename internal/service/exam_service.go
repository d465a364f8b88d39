package service

import (
	"bytes"
	"context"
	"math/rand/v2"
	"path/filepath"
	"runtime"
	"slices"

	"quiz-exam/internal/bank"
	"quiz-exam/internal/domain"
	"quiz-exam/internal/logger"
	"quiz-exam/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AllFiles selects every exam file of a course.
const AllFiles = "all"

// ExamService discovers courses and builds exams from their question banks.
type ExamService interface {
	ListCourses(ctx context.Context) []string
	ListExamFiles(ctx context.Context, course string) []string
	BuildExam(ctx context.Context, course string, files []string) (domain.ExamSet, error)
}

type examServiceImpl struct {
	catalog      domain.CourseCatalog
	maxQuestions int
	parseLimit   int
}

// NewExamService creates a new ExamService. maxQuestions bounds the size of
// every assembled exam.
func NewExamService(catalog domain.CourseCatalog, maxQuestions int) ExamService {
	return &examServiceImpl{
		catalog:      catalog,
		maxQuestions: maxQuestions,
		parseLimit:   runtime.GOMAXPROCS(0),
	}
}

func (s *examServiceImpl) ListCourses(ctx context.Context) []string {
	return s.catalog.ListCourses(ctx)
}

func (s *examServiceImpl) ListExamFiles(ctx context.Context, course string) []string {
	return s.catalog.ListExamFiles(ctx, course)
}

// BuildExam parses the selected files of course concurrently and assembles
// them into one exam. Files that cannot be read or parsed are skipped.
func (s *examServiceImpl) BuildExam(ctx context.Context, course string, files []string) (domain.ExamSet, error) {
	files = s.resolveFiles(ctx, course, files)
	if len(files) == 0 {
		return nil, domain.NewInvalidInputError("at least one exam file must be selected")
	}

	results := make([]domain.ExamSet, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parseLimit)

	for i, name := range files {
		g.Go(func() error {
			set, err := s.parseFile(gctx, course, name)
			if err != nil {
				if domain.HasCode(err, domain.ErrParse) {
					logger.Get().Warn("Skipping unreadable exam file",
						zap.String("course", course), zap.String("file", name), zap.Error(err))
					return nil
				}
				return err
			}
			results[i] = set
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	exam, err := Assemble(results, s.maxQuestions, util.NewRand())
	if err != nil {
		if domain.HasCode(err, domain.ErrEmptyExam) {
			return nil, domain.NewEmptyExamError(course)
		}
		return nil, err
	}

	logger.Get().Info("Exam assembled",
		zap.String("course", course),
		zap.Strings("files", files),
		zap.Int("questions", len(exam)))
	return exam, nil
}

func (s *examServiceImpl) resolveFiles(ctx context.Context, course string, files []string) []string {
	if slices.Contains(files, AllFiles) {
		return s.catalog.ListExamFiles(ctx, course)
	}
	out := make([]string, 0, len(files))
	for _, f := range files {
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

func (s *examServiceImpl) parseFile(ctx context.Context, course, name string) (domain.ExamSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := s.catalog.ReadExamFile(ctx, course, name)
	if err != nil {
		return nil, err
	}

	source := filepath.Join(course, name)
	set, stats, err := bank.ParseReader(source, bytes.NewReader(data), util.NewRand())
	if err != nil {
		return nil, err
	}
	if stats.Dropped > 0 || stats.Orphaned > 0 {
		logger.Get().Warn("Question bank has malformed blocks",
			zap.String("source", source),
			zap.Int("dropped", stats.Dropped),
			zap.Int("orphaned", stats.Orphaned))
	}
	logger.Get().Debug("Parsed question bank", zap.String("source", source), zap.Int("questions", stats.Questions))
	return set, nil
}

// Assemble concatenates per-file results in order, keeps the first of every
// duplicate, shuffles question order with rng and truncates to maxQuestions.
// A maxQuestions of zero or less means no limit.
func Assemble(fileResults []domain.ExamSet, maxQuestions int, rng *rand.Rand) (domain.ExamSet, error) {
	seen := make(map[string]struct{})
	var merged domain.ExamSet
	for _, set := range fileResults {
		for _, q := range set {
			key := q.DedupKey()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, q)
		}
	}
	if len(merged) == 0 {
		return nil, domain.NewError(domain.ErrEmptyExam, "No questions to assemble", nil)
	}

	rng.Shuffle(len(merged), func(i, j int) {
		merged[i], merged[j] = merged[j], merged[i]
	})
	if maxQuestions > 0 && len(merged) > maxQuestions {
		merged = merged[:maxQuestions]
	}
	return merged, nil
}
