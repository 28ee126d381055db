package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/heppy363/Play/internal/common"
	"github.com/heppy363/Play/internal/domain/model"
	"github.com/heppy363/Play/internal/domain/repository"

	"github.com/gosimple/slug"
)

// CatalogService is the administrative surface for languages, themes,
// difficulties and questions. Names are case-normalized through their slug;
// deletes of referenced rows are rejected.
type CatalogService struct {
	languageRepo   repository.LanguageRepository
	themeRepo      repository.ThemeRepository
	difficultyRepo repository.DifficultyRepository
	questionRepo   repository.QuestionRepository
}

func NewCatalogService(
	languageRepo repository.LanguageRepository,
	themeRepo repository.ThemeRepository,
	difficultyRepo repository.DifficultyRepository,
	questionRepo repository.QuestionRepository,
) *CatalogService {
	return &CatalogService{
		languageRepo:   languageRepo,
		themeRepo:      themeRepo,
		difficultyRepo: difficultyRepo,
		questionRepo:   questionRepo,
	}
}

func (s *CatalogService) CreateLanguage(ctx context.Context, name string) (*model.Language, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("language name is required: %w", common.ErrBadRequest)
	}
	language := &model.Language{Name: name, Slug: slug.Make(name)}
	if err := s.languageRepo.Create(ctx, language); err != nil {
		return nil, err
	}
	return language, nil
}

func (s *CatalogService) ListLanguages(ctx context.Context) ([]model.Language, error) {
	return s.languageRepo.List(ctx)
}

func (s *CatalogService) RenameLanguage(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("language name is required: %w", common.ErrBadRequest)
	}
	return s.languageRepo.Rename(ctx, id, name, slug.Make(name))
}

func (s *CatalogService) DeleteLanguage(ctx context.Context, id int64) error {
	return s.languageRepo.Delete(ctx, id)
}

func (s *CatalogService) CreateTheme(ctx context.Context, name string) (*model.Theme, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("theme name is required: %w", common.ErrBadRequest)
	}
	theme := &model.Theme{Name: name, Slug: slug.Make(name)}
	if err := s.themeRepo.Create(ctx, theme); err != nil {
		return nil, err
	}
	return theme, nil
}

func (s *CatalogService) ListThemes(ctx context.Context) ([]model.Theme, error) {
	return s.themeRepo.List(ctx)
}

func (s *CatalogService) RenameTheme(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("theme name is required: %w", common.ErrBadRequest)
	}
	return s.themeRepo.Rename(ctx, id, name, slug.Make(name))
}

func (s *CatalogService) DeleteTheme(ctx context.Context, id int64) error {
	return s.themeRepo.Delete(ctx, id)
}

func (s *CatalogService) CreateDifficulty(ctx context.Context, name string, level int) (*model.Difficulty, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("difficulty name is required: %w", common.ErrBadRequest)
	}
	difficulty := &model.Difficulty{Name: name, Level: level}
	if err := s.difficultyRepo.Create(ctx, difficulty); err != nil {
		return nil, err
	}
	return difficulty, nil
}

func (s *CatalogService) ListDifficulties(ctx context.Context) ([]model.Difficulty, error) {
	return s.difficultyRepo.List(ctx)
}

func (s *CatalogService) DeleteDifficulty(ctx context.Context, id int64) error {
	return s.difficultyRepo.Delete(ctx, id)
}

// CreateQuestion validates the type/field invariant before insert: a
// multiple-choice question carries four options and a correct label, an
// open-code question carries a solution. Fields irrelevant to the type are
// dropped.
func (s *CatalogService) CreateQuestion(ctx context.Context, q *model.Question) (*model.Question, error) {
	if strings.TrimSpace(q.Prompt) == "" {
		return nil, fmt.Errorf("question prompt is required: %w", common.ErrBadRequest)
	}

	switch q.Type {
	case model.QuestionTypeMultipleChoice:
		if q.OptionA == nil || q.OptionB == nil || q.OptionC == nil || q.OptionD == nil || q.CorrectOption == nil {
			return nil, fmt.Errorf("multiple-choice question needs options A-D and a correct option: %w", common.ErrInvalidQuestion)
		}
		switch strings.TrimSpace(*q.CorrectOption) {
		case model.OptionA, model.OptionB, model.OptionC, model.OptionD:
		default:
			return nil, fmt.Errorf("correct option must be one of A, B, C, D: %w", common.ErrInvalidQuestion)
		}
		q.CodeSolution = nil
	case model.QuestionTypeOpenCode:
		if q.CodeSolution == nil || strings.TrimSpace(*q.CodeSolution) == "" {
			return nil, fmt.Errorf("open-code question needs a code solution: %w", common.ErrInvalidQuestion)
		}
		q.OptionA, q.OptionB, q.OptionC, q.OptionD, q.CorrectOption = nil, nil, nil, nil, nil
	default:
		return nil, fmt.Errorf("unknown question type %q: %w", q.Type, common.ErrInvalidQuestion)
	}

	if err := s.questionRepo.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *CatalogService) ListQuestions(ctx context.Context) ([]model.Question, error) {
	return s.questionRepo.ListAll(ctx)
}

func (s *CatalogService) DeleteQuestion(ctx context.Context, id int64) error {
	return s.questionRepo.Delete(ctx, id)
}
