package service

import (
	"context"
	"sort"
	"sync"

	"github.com/heppy363/Play/internal/common"
	"github.com/heppy363/Play/internal/domain/model"
	"github.com/heppy363/Play/internal/domain/repository"
)

// In-memory doubles for the repository interfaces. They enforce the same
// uniqueness invariants as the Postgres implementations so the services can
// be exercised without a database.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[int64]*model.User
	next  int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*model.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return common.ErrConflict
		}
	}
	r.next++
	user.ID = r.next
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, id int64, hashedPassword string, resetRequired bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return common.ErrNotFound
	}
	u.HashedPassword = hashedPassword
	u.ResetRequired = resetRequired
	return nil
}

func (r *fakeUserRepo) SetResetRequired(ctx context.Context, id int64, resetRequired bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return common.ErrNotFound
	}
	u.ResetRequired = resetRequired
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeQuestionRepo struct {
	mu        sync.Mutex
	questions map[int64]*model.Question
	next      int64
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: map[int64]*model.Question{}}
}

func (r *fakeQuestionRepo) Create(ctx context.Context, q *model.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	q.ID = r.next
	clone := *q
	r.questions[q.ID] = &clone
	return nil
}

func (r *fakeQuestionRepo) FindByID(ctx context.Context, id int64) (*model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.questions[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := *q
	return &clone, nil
}

func (r *fakeQuestionRepo) ListByTriple(ctx context.Context, triple model.Triple) ([]model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Question{}
	for _, q := range r.questions {
		if q.LanguageID == triple.LanguageID && q.ThemeID == triple.ThemeID && q.DifficultyID == triple.DifficultyID {
			out = append(out, *q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeQuestionRepo) CountByTriple(ctx context.Context, triple model.Triple) (int, error) {
	questions, _ := r.ListByTriple(ctx, triple)
	return len(questions), nil
}

func (r *fakeQuestionRepo) ListAll(ctx context.Context) ([]model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Question{}
	for _, q := range r.questions {
		out = append(out, *q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeQuestionRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.questions[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.questions, id)
	return nil
}

type fakeDifficultyRepo struct {
	mu           sync.Mutex
	difficulties map[int64]*model.Difficulty
	next         int64
	failNext     error
}

func newFakeDifficultyRepo() *fakeDifficultyRepo {
	return &fakeDifficultyRepo{difficulties: map[int64]*model.Difficulty{}}
}

func (r *fakeDifficultyRepo) Create(ctx context.Context, d *model.Difficulty) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.difficulties {
		if existing.Level == d.Level {
			return common.ErrDuplicateLevel
		}
		if existing.Name == d.Name {
			return common.ErrConflict
		}
	}
	r.next++
	d.ID = r.next
	clone := *d
	r.difficulties[d.ID] = &clone
	return nil
}

func (r *fakeDifficultyRepo) FindByID(ctx context.Context, id int64) (*model.Difficulty, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return nil, err
	}
	d, ok := r.difficulties[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := *d
	return &clone, nil
}

func (r *fakeDifficultyRepo) FindByName(ctx context.Context, name string) (*model.Difficulty, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.difficulties {
		if d.Name == name {
			clone := *d
			return &clone, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeDifficultyRepo) FindNextAbove(ctx context.Context, level int) (*model.Difficulty, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var best *model.Difficulty
	for _, d := range r.difficulties {
		if d.Level > level && (best == nil || d.Level < best.Level) {
			best = d
		}
	}
	if best == nil {
		return nil, common.ErrNotFound
	}
	clone := *best
	return &clone, nil
}

func (r *fakeDifficultyRepo) List(ctx context.Context) ([]model.Difficulty, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Difficulty{}
	for _, d := range r.difficulties {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Level < out[j].Level })
	return out, nil
}

func (r *fakeDifficultyRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.difficulties[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.difficulties, id)
	return nil
}

type fakeLanguageRepo struct {
	mu        sync.Mutex
	languages map[int64]*model.Language
	next      int64
	inUse     map[int64]bool // ids with questions referencing them
}

func newFakeLanguageRepo() *fakeLanguageRepo {
	return &fakeLanguageRepo{languages: map[int64]*model.Language{}, inUse: map[int64]bool{}}
}

func (r *fakeLanguageRepo) Create(ctx context.Context, language *model.Language) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.languages {
		if l.Slug == language.Slug {
			return common.ErrConflict
		}
	}
	r.next++
	language.ID = r.next
	clone := *language
	r.languages[language.ID] = &clone
	return nil
}

func (r *fakeLanguageRepo) FindByID(ctx context.Context, id int64) (*model.Language, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.languages[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := *l
	return &clone, nil
}

func (r *fakeLanguageRepo) FindBySlug(ctx context.Context, s string) (*model.Language, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.languages {
		if l.Slug == s {
			clone := *l
			return &clone, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeLanguageRepo) List(ctx context.Context) ([]model.Language, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Language{}
	for _, l := range r.languages {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeLanguageRepo) Rename(ctx context.Context, id int64, name, s string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.languages[id]
	if !ok {
		return common.ErrNotFound
	}
	l.Name = name
	l.Slug = s
	return nil
}

func (r *fakeLanguageRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.languages[id]; !ok {
		return common.ErrNotFound
	}
	if r.inUse[id] {
		return common.ErrReferenced
	}
	delete(r.languages, id)
	return nil
}

type fakeThemeRepo struct {
	mu     sync.Mutex
	themes map[int64]*model.Theme
	next   int64
}

func newFakeThemeRepo() *fakeThemeRepo {
	return &fakeThemeRepo{themes: map[int64]*model.Theme{}}
}

func (r *fakeThemeRepo) Create(ctx context.Context, theme *model.Theme) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.themes {
		if t.Slug == theme.Slug {
			return common.ErrConflict
		}
	}
	r.next++
	theme.ID = r.next
	clone := *theme
	r.themes[theme.ID] = &clone
	return nil
}

func (r *fakeThemeRepo) FindByID(ctx context.Context, id int64) (*model.Theme, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.themes[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *fakeThemeRepo) FindBySlug(ctx context.Context, s string) (*model.Theme, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.themes {
		if t.Slug == s {
			clone := *t
			return &clone, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeThemeRepo) List(ctx context.Context) ([]model.Theme, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Theme{}
	for _, t := range r.themes {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeThemeRepo) Rename(ctx context.Context, id int64, name, s string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.themes[id]
	if !ok {
		return common.ErrNotFound
	}
	for otherID, other := range r.themes {
		if otherID != id && other.Slug == s {
			return common.ErrConflict
		}
	}
	t.Name = name
	t.Slug = s
	return nil
}

func (r *fakeThemeRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.themes[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.themes, id)
	return nil
}

type answerKey struct {
	userID     int64
	questionID int64
}

type fakeAnswerRepo struct {
	mu       sync.Mutex
	verdicts map[answerKey]bool
	stats    map[repository.Dimension]map[int64]model.CompletionStat
	failNext error
}

func newFakeAnswerRepo() *fakeAnswerRepo {
	return &fakeAnswerRepo{
		verdicts: map[answerKey]bool{},
		stats:    map[repository.Dimension]map[int64]model.CompletionStat{},
	}
}

func (r *fakeAnswerRepo) Upsert(ctx context.Context, userID, questionID int64, isCorrect bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return err
	}
	r.verdicts[answerKey{userID, questionID}] = isCorrect
	return nil
}

func (r *fakeAnswerRepo) Find(ctx context.Context, userID, questionID int64) (*model.Answer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	verdict, ok := r.verdicts[answerKey{userID, questionID}]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &model.Answer{UserID: userID, QuestionID: questionID, IsCorrect: verdict}, nil
}

func (r *fakeAnswerRepo) CompletionStats(ctx context.Context, userID int64, dim repository.Dimension) (map[int64]model.CompletionStat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[int64]model.CompletionStat{}
	for key, stat := range r.stats[dim] {
		out[key] = stat
	}
	return out, nil
}

func (r *fakeAnswerRepo) rowCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.verdicts)
}

type tripleKey struct {
	userID       int64
	themeID      int64
	languageID   int64
	difficultyID int64
}

type fakeProgressRepo struct {
	mu       sync.Mutex
	scores   map[tripleKey]int
	ranking  []model.RankingEntry
	failNext error
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{scores: map[tripleKey]int{}}
}

func (r *fakeProgressRepo) AddScore(ctx context.Context, userID int64, triple model.Triple, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return err
	}
	key := tripleKey{userID, triple.ThemeID, triple.LanguageID, triple.DifficultyID}
	r.scores[key] += delta
	return nil
}

func (r *fakeProgressRepo) Find(ctx context.Context, userID int64, triple model.Triple) (*model.Progress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := tripleKey{userID, triple.ThemeID, triple.LanguageID, triple.DifficultyID}
	score, ok := r.scores[key]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &model.Progress{
		UserID:       userID,
		ThemeID:      triple.ThemeID,
		LanguageID:   triple.LanguageID,
		DifficultyID: triple.DifficultyID,
		Score:        score,
	}, nil
}

func (r *fakeProgressRepo) ListByUser(ctx context.Context, userID int64) ([]model.Progress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Progress{}
	for key, score := range r.scores {
		if key.userID == userID {
			out = append(out, model.Progress{
				UserID:       key.userID,
				ThemeID:      key.themeID,
				LanguageID:   key.languageID,
				DifficultyID: key.difficultyID,
				Score:        score,
			})
		}
	}
	return out, nil
}

func (r *fakeProgressRepo) Ranking(ctx context.Context) ([]model.RankingEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.RankingEntry{}, r.ranking...), nil
}

func (r *fakeProgressRepo) rowCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.scores)
}

func strPtr(s string) *string { return &s }
