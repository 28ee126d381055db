package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/heppy363/Play/internal/common"
	"github.com/heppy363/Play/internal/domain/model"
	"github.com/heppy363/Play/internal/domain/repository"

	"github.com/google/uuid"
)

type SessionState string

const (
	SessionInProgress           SessionState = "InProgress"
	SessionAwaitingConfirmation SessionState = "AwaitingConfirmation"
	SessionFailed               SessionState = "Failed"
	SessionPassedAdvance        SessionState = "PassedAdvance"
	SessionPassedExhausted      SessionState = "PassedExhausted"
)

// passThreshold is the fraction of correct answers needed to pass a tier.
const passThreshold = 0.5

// quizSession is the in-flight state of one user's attempt at one triple.
// Question order is shuffled once at start and fixed for the session.
type quizSession struct {
	id          string
	userID      int64
	triple      model.Triple
	questions   []model.Question
	index       int
	verdicts    map[int64]bool // latest verdict per question id
	state       SessionState
	scoreMerged bool // this tier's score already written to progress
}

// QuestionView is a question with the answer fields withheld.
type QuestionView struct {
	ID      int64              `json:"id"`
	Type    model.QuestionType `json:"question_type"`
	Prompt  string             `json:"question"`
	OptionA *string            `json:"option_a,omitempty"`
	OptionB *string            `json:"option_b,omitempty"`
	OptionC *string            `json:"option_c,omitempty"`
	OptionD *string            `json:"option_d,omitempty"`
}

// SessionView is what the presentation layer sees between screens.
type SessionView struct {
	SessionID      string       `json:"session_id"`
	State          SessionState `json:"state"`
	QuestionNumber int          `json:"question_number"` // 1-based
	TotalQuestions int          `json:"total_questions"`
	Question       QuestionView `json:"question"`
}

// SessionOutcome is the result of confirming (or abandoning) a session.
type SessionOutcome struct {
	State            SessionState `json:"state"`
	CorrectCount     int          `json:"correct_count"`
	TotalQuestions   int          `json:"total_questions"`
	AddedScore       int          `json:"added_score"`
	NextDifficultyID *int64       `json:"next_difficulty_id,omitempty"`
}

// SessionService runs the per-session scoring and difficulty-unlock state
// machine. Sessions live in memory; this is a single-node system and all
// durable effects (answers, score) are written through on the fly.
type SessionService struct {
	questionRepo   repository.QuestionRepository
	difficultyRepo repository.DifficultyRepository
	answerRepo     repository.AnswerRepository
	progressRepo   repository.ProgressRepository
	userRepo       repository.UserRepository

	pointsPerQuestion int

	mu       sync.Mutex
	sessions map[string]*quizSession
}

func NewSessionService(
	questionRepo repository.QuestionRepository,
	difficultyRepo repository.DifficultyRepository,
	answerRepo repository.AnswerRepository,
	progressRepo repository.ProgressRepository,
	userRepo repository.UserRepository,
	pointsPerQuestion int,
) *SessionService {
	return &SessionService{
		questionRepo:      questionRepo,
		difficultyRepo:    difficultyRepo,
		answerRepo:        answerRepo,
		progressRepo:      progressRepo,
		userRepo:          userRepo,
		pointsPerQuestion: pointsPerQuestion,
		sessions:          make(map[string]*quizSession),
	}
}

// Start opens a session for the user on a triple. The question set is
// shuffled; an empty set means the session never starts and the caller must
// redirect the user elsewhere.
func (s *SessionService) Start(ctx context.Context, userID int64, triple model.Triple) (*SessionView, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user lookup: %w", err)
	}
	if user.ResetRequired {
		return nil, common.ErrPasswordResetDue
	}

	questions, err := s.questionRepo.ListByTriple(ctx, triple)
	if err != nil {
		return nil, fmt.Errorf("question set: %w", err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("no questions for the selected language, theme and difficulty: %w", common.ErrNotFound)
	}

	shuffleQuestions(questions)

	session := &quizSession{
		id:        uuid.NewString(),
		userID:    userID,
		triple:    triple,
		questions: questions,
		verdicts:  make(map[int64]bool),
		state:     SessionInProgress,
	}
	if len(questions) == 1 {
		session.state = SessionAwaitingConfirmation
	}

	s.mu.Lock()
	s.sessions[session.id] = session
	s.mu.Unlock()

	return session.view(), nil
}

// Current returns the session's view without recording anything.
func (s *SessionService) Current(sessionID string) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, common.ErrNotFound
	}
	return session.view(), nil
}

// Next records the answer for the current question and advances. Reaching
// the last question moves the session to AwaitingConfirmation.
func (s *SessionService) Next(ctx context.Context, sessionID string, sub Submission) (*SessionView, error) {
	return s.navigate(ctx, sessionID, sub, +1)
}

// Previous records the answer for the current question and steps back.
// Revisited questions are re-evaluated and their verdict overwritten.
func (s *SessionService) Previous(ctx context.Context, sessionID string, sub Submission) (*SessionView, error) {
	return s.navigate(ctx, sessionID, sub, -1)
}

func (s *SessionService) navigate(ctx context.Context, sessionID string, sub Submission, step int) (*SessionView, error) {
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return nil, common.ErrNotFound
	}
	if session.state != SessionInProgress && session.state != SessionAwaitingConfirmation {
		return nil, fmt.Errorf("session is already finished: %w", common.ErrBadRequest)
	}

	if err := s.recordCurrent(ctx, session, sub); err != nil {
		return nil, err
	}

	s.mu.Lock()
	next := session.index + step
	if next >= 0 && next < len(session.questions) {
		session.index = next
	}
	if session.index == len(session.questions)-1 {
		session.state = SessionAwaitingConfirmation
	} else {
		session.state = SessionInProgress
	}
	view := session.view()
	s.mu.Unlock()

	return view, nil
}

// recordCurrent evaluates sub against the session's current question and
// upserts the verdict. Invalid submissions are recorded as incorrect; only
// storage failures propagate.
func (s *SessionService) recordCurrent(ctx context.Context, session *quizSession, sub Submission) error {
	s.mu.Lock()
	question := session.questions[session.index]
	s.mu.Unlock()

	verdict, evalErr := EvaluateAnswer(&question, sub)
	if evalErr != nil && !errors.Is(evalErr, common.ErrInvalidSubmission) {
		return evalErr
	}

	if err := s.answerRepo.Upsert(ctx, session.userID, question.ID, verdict); err != nil {
		return fmt.Errorf("answer upsert: %w", err)
	}

	s.mu.Lock()
	session.verdicts[question.ID] = verdict
	s.mu.Unlock()
	return nil
}

// Confirm records the final answer, applies the pass rule and, on a pass,
// merges the earned score and resolves the next tier. The session stays
// registered on PassedAdvance so Advance can re-enter it.
func (s *SessionService) Confirm(ctx context.Context, sessionID string, sub Submission) (*SessionOutcome, error) {
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return nil, common.ErrNotFound
	}
	if session.state != SessionAwaitingConfirmation {
		return nil, fmt.Errorf("session is not awaiting confirmation: %w", common.ErrBadRequest)
	}

	if err := s.recordCurrent(ctx, session, sub); err != nil {
		return nil, err
	}

	s.mu.Lock()
	correct := session.correctCount()
	total := len(session.questions)
	s.mu.Unlock()

	outcome := &SessionOutcome{CorrectCount: correct, TotalQuestions: total}

	if float64(correct)/float64(total) < passThreshold {
		outcome.State = SessionFailed
		s.finish(session, SessionFailed)
		return outcome, nil
	}

	outcome.AddedScore = correct * s.pointsPerQuestion

	// The merge happens at most once per tier: a Confirm retried after a
	// storage failure further down must not add the score again.
	s.mu.Lock()
	merged := session.scoreMerged
	s.mu.Unlock()
	if !merged {
		if err := s.progressRepo.AddScore(ctx, session.userID, session.triple, outcome.AddedScore); err != nil {
			// Session state is preserved so the caller can retry the merge.
			return nil, fmt.Errorf("score merge: %w", err)
		}
		s.mu.Lock()
		session.scoreMerged = true
		s.mu.Unlock()
	}

	state, nextID, err := s.resolveNextTier(ctx, session.triple)
	if err != nil {
		return nil, err
	}
	outcome.State = state
	outcome.NextDifficultyID = nextID

	if state == SessionPassedAdvance {
		s.mu.Lock()
		session.state = SessionPassedAdvance
		s.mu.Unlock()
	} else {
		s.finish(session, state)
	}
	return outcome, nil
}

// resolveNextTier finds the difficulty with the smallest level strictly
// above the current one and checks that it holds at least one question for
// the same language and theme.
func (s *SessionService) resolveNextTier(ctx context.Context, triple model.Triple) (SessionState, *int64, error) {
	current, err := s.difficultyRepo.FindByID(ctx, triple.DifficultyID)
	if err != nil {
		return "", nil, fmt.Errorf("current difficulty: %w", err)
	}

	next, err := s.difficultyRepo.FindNextAbove(ctx, current.Level)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return SessionPassedExhausted, nil, nil
		}
		return "", nil, fmt.Errorf("next difficulty: %w", err)
	}

	nextTriple := model.Triple{LanguageID: triple.LanguageID, ThemeID: triple.ThemeID, DifficultyID: next.ID}
	count, err := s.questionRepo.CountByTriple(ctx, nextTriple)
	if err != nil {
		return "", nil, fmt.Errorf("next tier question count: %w", err)
	}
	if count == 0 {
		return SessionPassedExhausted, nil, nil
	}
	return SessionPassedAdvance, &next.ID, nil
}

// Advance re-enters a passed session at the next difficulty with a fresh
// shuffled question set and cleared verdicts.
func (s *SessionService) Advance(ctx context.Context, sessionID string) (*SessionView, error) {
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return nil, common.ErrNotFound
	}
	if session.state != SessionPassedAdvance {
		return nil, fmt.Errorf("session has not unlocked a harder tier: %w", common.ErrBadRequest)
	}

	_, nextID, err := s.resolveNextTier(ctx, session.triple)
	if err != nil {
		return nil, err
	}
	if nextID == nil {
		return nil, fmt.Errorf("next tier no longer has questions: %w", common.ErrNotFound)
	}

	nextTriple := model.Triple{LanguageID: session.triple.LanguageID, ThemeID: session.triple.ThemeID, DifficultyID: *nextID}
	questions, err := s.questionRepo.ListByTriple(ctx, nextTriple)
	if err != nil {
		return nil, fmt.Errorf("question set: %w", err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("next tier no longer has questions: %w", common.ErrNotFound)
	}
	shuffleQuestions(questions)

	s.mu.Lock()
	session.triple = nextTriple
	session.questions = questions
	session.index = 0
	session.verdicts = make(map[int64]bool)
	session.scoreMerged = false
	session.state = SessionInProgress
	if len(questions) == 1 {
		session.state = SessionAwaitingConfirmation
	}
	view := session.view()
	s.mu.Unlock()

	return view, nil
}

// Abandon finalizes an unclean exit: the in-flight answer is recorded and
// any earned score is merged exactly as the confirmed path does, so partial
// credit is never lost. No tier resolution happens. A session whose score was
// already merged (Confirmed, then left at PassedAdvance) just closes; its
// answers and score stay exactly as Confirm wrote them.
func (s *SessionService) Abandon(ctx context.Context, sessionID string, sub *Submission) (*SessionOutcome, error) {
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return nil, common.ErrNotFound
	}

	s.mu.Lock()
	open := session.state == SessionInProgress || session.state == SessionAwaitingConfirmation
	s.mu.Unlock()

	if sub != nil && open {
		if err := s.recordCurrent(ctx, session, *sub); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	correct := session.correctCount()
	total := len(session.questions)
	merged := session.scoreMerged
	s.mu.Unlock()

	outcome := &SessionOutcome{State: SessionFailed, CorrectCount: correct, TotalQuestions: total}
	if correct > 0 && !merged {
		outcome.AddedScore = correct * s.pointsPerQuestion
		if err := s.progressRepo.AddScore(ctx, session.userID, session.triple, outcome.AddedScore); err != nil {
			return nil, fmt.Errorf("score merge: %w", err)
		}
	}

	s.finish(session, SessionFailed)
	return outcome, nil
}

func (s *SessionService) finish(session *quizSession, state SessionState) {
	s.mu.Lock()
	session.state = state
	delete(s.sessions, session.id)
	s.mu.Unlock()
}

func (session *quizSession) correctCount() int {
	count := 0
	for _, ok := range session.verdicts {
		if ok {
			count++
		}
	}
	return count
}

func (session *quizSession) view() *SessionView {
	q := session.questions[session.index]
	return &SessionView{
		SessionID:      session.id,
		State:          session.state,
		QuestionNumber: session.index + 1,
		TotalQuestions: len(session.questions),
		Question: QuestionView{
			ID:      q.ID,
			Type:    q.Type,
			Prompt:  q.Prompt,
			OptionA: q.OptionA,
			OptionB: q.OptionB,
			OptionC: q.OptionC,
			OptionD: q.OptionD,
		},
	}
}

// shuffleQuestions shuffles in place (Fisher-Yates).
func shuffleQuestions(questions []model.Question) {
	for i := len(questions) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		questions[i], questions[j] = questions[j], questions[i]
	}
}
