package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/tikrarapp/tikrar-backend/config"
	"github.com/tikrarapp/tikrar-backend/internal/apperr"
	"github.com/tikrarapp/tikrar-backend/internal/dto"
	"github.com/tikrarapp/tikrar-backend/internal/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type fakeRegistrationRepo struct {
	registrations []model.Registration
	examFields    map[uuid.UUID]map[string]interface{}
}

func (f *fakeRegistrationRepo) FindByID(id uuid.UUID) (*model.Registration, error) {
	for i := range f.registrations {
		if f.registrations[i].ID == id {
			return &f.registrations[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRegistrationRepo) FindLatestByUser(userID uuid.UUID) (*model.Registration, error) {
	for i := len(f.registrations) - 1; i >= 0; i-- {
		if f.registrations[i].UserID == userID {
			return &f.registrations[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRegistrationRepo) FindLatestApprovedByUser(userID uuid.UUID) (*model.Registration, error) {
	for i := len(f.registrations) - 1; i >= 0; i-- {
		if f.registrations[i].UserID == userID && f.registrations[i].Status == model.RegistrationStatusApproved {
			return &f.registrations[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRegistrationRepo) Update(registration *model.Registration) error {
	for i := range f.registrations {
		if f.registrations[i].ID == registration.ID {
			f.registrations[i] = *registration
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRegistrationRepo) UpdateExamFields(id uuid.UUID, fields map[string]interface{}) error {
	if f.examFields == nil {
		f.examFields = make(map[uuid.UUID]map[string]interface{})
	}
	f.examFields[id] = fields
	return nil
}

type fakeAttemptRepo struct {
	attempts []model.ExamAttempt
}

func (f *fakeAttemptRepo) Create(attempt *model.ExamAttempt) error {
	if attempt.ID == uuid.Nil {
		attempt.ID = uuid.New()
	}
	f.attempts = append(f.attempts, *attempt)
	return nil
}

func (f *fakeAttemptRepo) FindByIDAndUser(id, userID uuid.UUID) (*model.ExamAttempt, error) {
	for i := range f.attempts {
		if f.attempts[i].ID == id && f.attempts[i].UserID == userID {
			found := f.attempts[i]
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttemptRepo) findByTriple(userID, registrationID uuid.UUID, juzNumber int, status string) (*model.ExamAttempt, error) {
	for i := len(f.attempts) - 1; i >= 0; i-- {
		a := f.attempts[i]
		if a.UserID == userID && a.RegistrationID == registrationID && a.JuzNumber == juzNumber && a.Status == status {
			return &a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttemptRepo) FindSubmitted(userID, registrationID uuid.UUID, juzNumber int) (*model.ExamAttempt, error) {
	return f.findByTriple(userID, registrationID, juzNumber, model.AttemptStatusSubmitted)
}

func (f *fakeAttemptRepo) FindInProgress(userID, registrationID uuid.UUID, juzNumber int) (*model.ExamAttempt, error) {
	return f.findByTriple(userID, registrationID, juzNumber, model.AttemptStatusInProgress)
}

func (f *fakeAttemptRepo) CountSubmitted(userID, registrationID uuid.UUID) (int64, error) {
	var n int64
	for _, a := range f.attempts {
		if a.UserID == userID && a.RegistrationID == registrationID && a.Status == model.AttemptStatusSubmitted {
			n++
		}
	}
	return n, nil
}

func (f *fakeAttemptRepo) FindAllByUser(userID uuid.UUID) ([]model.ExamAttempt, error) {
	var out []model.ExamAttempt
	for _, a := range f.attempts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAttemptRepo) MarkSubmitted(id uuid.UUID, answers datatypes.JSONSlice[model.AnswerRecord], correctAnswers, score int, submittedAt time.Time) (bool, error) {
	for i := range f.attempts {
		if f.attempts[i].ID == id && f.attempts[i].Status == model.AttemptStatusInProgress {
			f.attempts[i].Answers = answers
			f.attempts[i].CorrectAnswers = correctAnswers
			f.attempts[i].Score = &score
			f.attempts[i].Status = model.AttemptStatusSubmitted
			f.attempts[i].SubmittedAt = &submittedAt
			return true, nil
		}
	}
	return false, nil
}

type fakeQuestionRepo struct {
	questions []model.ExamQuestion
}

func (f *fakeQuestionRepo) Create(question *model.ExamQuestion) error {
	if question.ID == uuid.Nil {
		question.ID = uuid.New()
	}
	f.questions = append(f.questions, *question)
	return nil
}

func (f *fakeQuestionRepo) FindByID(id uuid.UUID) (*model.ExamQuestion, error) {
	for i := range f.questions {
		if f.questions[i].ID == id {
			return &f.questions[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeQuestionRepo) FindActiveByJuz(juzNumber int) ([]model.ExamQuestion, error) {
	var out []model.ExamQuestion
	for _, q := range f.questions {
		if q.JuzNumber == juzNumber && q.IsActive {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeQuestionRepo) CountActiveByJuz(juzNumber int) (int64, error) {
	questions, _ := f.FindActiveByJuz(juzNumber)
	return int64(len(questions)), nil
}

func (f *fakeQuestionRepo) Update(question *model.ExamQuestion) error {
	for i := range f.questions {
		if f.questions[i].ID == question.ID {
			f.questions[i] = *question
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeQuestionRepo) Delete(id uuid.UUID) error {
	for i := range f.questions {
		if f.questions[i].ID == id {
			f.questions = append(f.questions[:i], f.questions[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeConfigRepo struct {
	configurations []model.ExamConfiguration
}

func (f *fakeConfigRepo) FindActive() (*model.ExamConfiguration, error) {
	for i := range f.configurations {
		if f.configurations[i].IsActive {
			return &f.configurations[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeConfigRepo) FindAll() ([]model.ExamConfiguration, error) {
	return f.configurations, nil
}

func (f *fakeConfigRepo) FindByID(id uuid.UUID) (*model.ExamConfiguration, error) {
	for i := range f.configurations {
		if f.configurations[i].ID == id {
			return &f.configurations[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeConfigRepo) Create(configuration *model.ExamConfiguration) error {
	if configuration.ID == uuid.Nil {
		configuration.ID = uuid.New()
	}
	f.configurations = append(f.configurations, *configuration)
	return nil
}

func (f *fakeConfigRepo) Update(configuration *model.ExamConfiguration) error {
	for i := range f.configurations {
		if f.configurations[i].ID == configuration.ID {
			f.configurations[i] = *configuration
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeConfigRepo) DeactivateAll() error {
	for i := range f.configurations {
		f.configurations[i].IsActive = false
	}
	return nil
}

type fakeFlagRepo struct {
	flags   []model.ExamQuestionFlag
	failing bool
}

func (f *fakeFlagRepo) CreateBatch(flags []model.ExamQuestionFlag) error {
	if f.failing {
		return errors.New("flag store unavailable")
	}
	f.flags = append(f.flags, flags...)
	return nil
}

func (f *fakeFlagRepo) FindByStatus(status string) ([]model.ExamQuestionFlag, error) {
	var out []model.ExamQuestionFlag
	for _, flag := range f.flags {
		if flag.Status == status {
			out = append(out, flag)
		}
	}
	return out, nil
}

func (f *fakeFlagRepo) FindByID(id uuid.UUID) (*model.ExamQuestionFlag, error) {
	for i := range f.flags {
		if f.flags[i].ID == id {
			return &f.flags[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeFlagRepo) Update(flag *model.ExamQuestionFlag) error {
	for i := range f.flags {
		if f.flags[i].ID == flag.ID {
			f.flags[i] = *flag
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type examFixture struct {
	svc              ExamService
	principal        model.Principal
	registration     model.Registration
	registrationRepo *fakeRegistrationRepo
	attemptRepo      *fakeAttemptRepo
	questionRepo     *fakeQuestionRepo
	configRepo       *fakeConfigRepo
	flagRepo         *fakeFlagRepo
}

// newExamFixture wires an ExamService over fakes: one approved registration
// targeting juz 29 (exam on juz 30) and ten active juz 30 questions with
// answer key "B".
func newExamFixture(t *testing.T) *examFixture {
	t.Helper()

	userID := uuid.New()
	registration := model.Registration{
		ID:        uuid.New(),
		UserID:    userID,
		FullName:  "Aisyah",
		ChosenJuz: "29A",
		Status:    model.RegistrationStatusApproved,
	}

	questionRepo := &fakeQuestionRepo{}
	for i := 0; i < 10; i++ {
		section := 1 + i/5
		questionRepo.questions = append(questionRepo.questions, model.ExamQuestion{
			ID:             uuid.New(),
			JuzNumber:      30,
			SectionNumber:  section,
			QuestionNumber: i + 1,
			CorrectAnswer:  "B",
			IsActive:       true,
		})
	}

	f := &examFixture{
		principal:        model.Principal{UserID: userID},
		registration:     registration,
		registrationRepo: &fakeRegistrationRepo{registrations: []model.Registration{registration}},
		attemptRepo:      &fakeAttemptRepo{},
		questionRepo:     questionRepo,
		configRepo:       &fakeConfigRepo{},
		flagRepo:         &fakeFlagRepo{},
	}
	f.svc = NewExamService(f.registrationRepo, f.attemptRepo, f.questionRepo, f.configRepo, f.flagRepo,
		&config.Config{Exam: config.Exam{PassingGrade: 60}})
	return f
}

func (f *examFixture) submitAll(t *testing.T, attemptID uuid.UUID, answer string) *dto.SubmitAttemptResultDTO {
	t.Helper()
	answers := make([]dto.ExamAnswerDTO, 0, len(f.questionRepo.questions))
	for _, q := range f.questionRepo.questions {
		answers = append(answers, dto.ExamAnswerDTO{QuestionID: q.ID, Answer: answer})
	}
	result, err := f.svc.SubmitAttempt(f.principal, dto.ExamSubmitDTO{AttemptID: attemptID, Answers: answers})
	if err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}
	return result
}

func TestStartAttemptCreatesInProgress(t *testing.T) {
	f := newExamFixture(t)

	result, err := f.svc.StartAttempt(f.principal, dto.ExamStartDTO{JuzNumber: 30})
	if err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}
	if result.Resumed {
		t.Error("fresh start reported as resumed")
	}
	if result.Attempt.Status != model.AttemptStatusInProgress {
		t.Errorf("status = %q, want in_progress", result.Attempt.Status)
	}
	if result.Attempt.TotalQuestions != 10 {
		t.Errorf("total_questions = %d, want 10", result.Attempt.TotalQuestions)
	}
	if fields := f.registrationRepo.examFields[f.registration.ID]; fields == nil {
		t.Error("attempt start not mirrored onto registration")
	} else if fields["exam_status"] != model.ExamStatusInProgress {
		t.Errorf("mirrored exam_status = %v, want in_progress", fields["exam_status"])
	}
}

func TestStartAttemptResumesExisting(t *testing.T) {
	f := newExamFixture(t)

	first, err := f.svc.StartAttempt(f.principal, dto.ExamStartDTO{JuzNumber: 30})
	if err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}
	second, err := f.svc.StartAttempt(f.principal, dto.ExamStartDTO{JuzNumber: 30})
	if err != nil {
		t.Fatalf("StartAttempt (resume): %v", err)
	}
	if !second.Resumed {
		t.Error("second start should resume")
	}
	if second.Attempt.ID != first.Attempt.ID {
		t.Errorf("resumed attempt id = %s, want %s", second.Attempt.ID, first.Attempt.ID)
	}
	if second.Message == "" {
		t.Error("resumed start carries no message")
	}
	if first.Message != "" {
		t.Errorf("fresh start carries message %q", first.Message)
	}
	if len(f.attemptRepo.attempts) != 1 {
		t.Errorf("attempt count = %d, want 1", len(f.attemptRepo.attempts))
	}
}

func TestStartAttemptJuzMismatch(t *testing.T) {
	// Juz 28 and 29 pass request validation but belong to other
	// registrations; the mismatch must surface as a domain error, not a
	// binding failure.
	for _, juz := range []int{28, 29} {
		f := newExamFixture(t)
		_, err := f.svc.StartAttempt(f.principal, dto.ExamStartDTO{JuzNumber: juz})
		if apperr.KindOf(err) != apperr.KindJuzMismatch {
			t.Errorf("juz %d: kind = %v, want juz_mismatch", juz, apperr.KindOf(err))
		}
	}
}

func TestStartAttemptNoExamRequired(t *testing.T) {
	f := newExamFixture(t)
	f.registrationRepo.registrations[0].ChosenJuz = "30A"

	_, err := f.svc.StartAttempt(f.principal, dto.ExamStartDTO{JuzNumber: 30})
	if apperr.KindOf(err) != apperr.KindExamNotRequired {
		t.Errorf("kind = %v, want exam_not_required", apperr.KindOf(err))
	}
}

func TestStartAttemptWithoutApprovedRegistration(t *testing.T) {
	f := newExamFixture(t)
	f.registrationRepo.registrations[0].Status = model.RegistrationStatusPending

	_, err := f.svc.StartAttempt(f.principal, dto.ExamStartDTO{JuzNumber: 30})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("kind = %v, want not_found", apperr.KindOf(err))
	}
}

func TestStartAttemptNoQuestions(t *testing.T) {
	f := newExamFixture(t)
	f.questionRepo.questions = nil

	_, err := f.svc.StartAttempt(f.principal, dto.ExamStartDTO{JuzNumber: 30})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("kind = %v, want not_found", apperr.KindOf(err))
	}
}

func TestStartAttemptAlreadyCompleted(t *testing.T) {
	f := newExamFixture(t)

	started, err := f.svc.StartAttempt(f.principal, dto.ExamStartDTO{JuzNumber: 30})
	if err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}
	f.submitAll(t, started.Attempt.ID, "B")

	// No configured ceiling: a single completion closes the exam, and the
	// error carries the prior attempt.
	_, err = f.svc.StartAttempt(f.principal, dto.ExamStartDTO{JuzNumber: 30})
	if apperr.KindOf(err) != apperr.KindAlreadyCompleted {
		t.Fatalf("kind = %v, want already_completed", apperr.KindOf(err))
	}
	prior, ok := apperr.DetailsOf(err).(dto.AttemptDTO)
	if !ok {
		t.Fatalf("details = %T, want dto.AttemptDTO", apperr.DetailsOf(err))
	}
	if prior.ID != started.Attempt.ID {
		t.Errorf("prior attempt id = %s, want %s", prior.ID, started.Attempt.ID)
	}
}

func TestStartAttemptMaxAttemptsCeiling(t *testing.T) {
	f := newExamFixture(t)
	maxAttempts := 2
	f.configRepo.configurations = []model.ExamConfiguration{{
		ID:           uuid.New(),
		Name:         "Batch 5",
		MaxAttempts:  &maxAttempts,
		PassingScore: 60,
		IsActive:     true,
	}}

	for i := 0; i < maxAttempts; i++ {
		started, err := f.svc.StartAttempt(f.principal, dto.ExamStartDTO{JuzNumber: 30})
		if err != nil {
			t.Fatalf("StartAttempt #%d: %v", i+1, err)
		}
		f.submitAll(t, started.Attempt.ID, "C")
	}

	_, err := f.svc.StartAttempt(f.principal, dto.ExamStartDTO{JuzNumber: 30})
	if apperr.KindOf(err) != apperr.KindMaxAttemptsReached {
		t.Errorf("kind = %v, want max_attempts_reached", apperr.KindOf(err))
	}
}

// An unfinished attempt never consumes budget: with a ceiling of 1 and an
// in_progress attempt outstanding, start still succeeds by resuming it.
func TestInProgressAttemptDoesNotConsumeBudget(t *testing.T) {
	f := newExamFixture(t)
	maxAttempts := 1
	f.configRepo.configurations = []model.ExamConfiguration{{
		ID: uuid.New(), Name: "Batch 5", MaxAttempts: &maxAttempts, PassingScore: 60, IsActive: true,
	}}

	if _, err := f.svc.StartAttempt(f.principal, dto.ExamStartDTO{JuzNumber: 30}); err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}
	result, err := f.svc.StartAttempt(f.principal, dto.ExamStartDTO{JuzNumber: 30})
	if err != nil {
		t.Fatalf("StartAttempt with in_progress outstanding: %v", err)
	}
	if !result.Resumed {
		t.Error("expected the outstanding attempt to be resumed")
	}
}

func TestSubmitAttemptGradesAndPasses(t *testing.T) {
	f := newExamFixture(t)

	started, err := f.svc.StartAttempt(f.principal, dto.ExamStartDTO{JuzNumber: 30})
	if err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}

	// 7 correct of 10.
	answers := make([]dto.ExamAnswerDTO, 0, 10)
	for i, q := range f.questionRepo.questions {
		answer := "B"
		if i >= 7 {
			answer = "D"
		}
		answers = append(answers, dto.ExamAnswerDTO{QuestionID: q.ID, Answer: answer})
	}
	result, err := f.svc.SubmitAttempt(f.principal, dto.ExamSubmitDTO{AttemptID: started.Attempt.ID, Answers: answers})
	if err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}

	if result.Attempt.Score == nil || *result.Attempt.Score != 70 {
		t.Fatalf("score = %v, want 70", result.Attempt.Score)
	}
	if result.Attempt.Status != model.AttemptStatusSubmitted {
		t.Errorf("status = %q, want submitted", result.Attempt.Status)
	}
	if !result.Result.Passed {
		t.Error("70 >= 60 should pass")
	}
	if result.Result.OverallPercentage != 70 {
		t.Errorf("overall = %d, want 70", result.Result.OverallPercentage)
	}
	if len(result.Result.Sections) != 2 {
		t.Errorf("sections = %d, want 2", len(result.Result.Sections))
	}
	fields := f.registrationRepo.examFields[f.registration.ID]
	if fields == nil || fields["exam_score"] != 70 {
		t.Errorf("score not mirrored onto registration: %v", fields)
	}
}

func TestSubmitAttemptFailsBelowPassingGrade(t *testing.T) {
	f := newExamFixture(t)

	started, err := f.svc.StartAttempt(f.principal, dto.ExamStartDTO{JuzNumber: 30})
	if err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}
	result := f.submitAll(t, started.Attempt.ID, "C")
	if result.Result.Passed {
		t.Error("all-wrong submission should not pass")
	}
	if result.Attempt.Score == nil || *result.Attempt.Score != 0 {
		t.Errorf("score = %v, want 0", result.Attempt.Score)
	}
}

// Submission is one-way: the second submit is rejected and the stored score
// never changes.
func TestSubmitAttemptIdempotent(t *testing.T) {
	f := newExamFixture(t)

	started, err := f.svc.StartAttempt(f.principal, dto.ExamStartDTO{JuzNumber: 30})
	if err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}
	f.submitAll(t, started.Attempt.ID, "B")

	answers := []dto.ExamAnswerDTO{{QuestionID: f.questionRepo.questions[0].ID, Answer: "C"}}
	_, err = f.svc.SubmitAttempt(f.principal, dto.ExamSubmitDTO{AttemptID: started.Attempt.ID, Answers: answers})
	if apperr.KindOf(err) != apperr.KindAlreadySubmitted {
		t.Fatalf("kind = %v, want already_submitted", apperr.KindOf(err))
	}
	prior, ok := apperr.DetailsOf(err).(dto.AttemptDTO)
	if !ok {
		t.Fatalf("details = %T, want dto.AttemptDTO", apperr.DetailsOf(err))
	}
	if prior.Score == nil || *prior.Score != 100 {
		t.Errorf("stored score = %v, want unchanged 100", prior.Score)
	}
}

func TestSubmitAttemptRecordsFlags(t *testing.T) {
	f := newExamFixture(t)

	started, err := f.svc.StartAttempt(f.principal, dto.ExamStartDTO{JuzNumber: 30})
	if err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}
	flagged := f.questionRepo.questions[3]
	_, err = f.svc.SubmitAttempt(f.principal, dto.ExamSubmitDTO{
		AttemptID: started.Attempt.ID,
		Answers:   []dto.ExamAnswerDTO{{QuestionID: flagged.ID, Answer: "B"}},
		FlaggedQuestions: []dto.ExamFlagDTO{
			{QuestionID: flagged.ID, FlagType: "wrong_answer_key", Message: "Jawaban ganda"},
		},
	})
	if err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}
	if len(f.flagRepo.flags) != 1 {
		t.Fatalf("flags recorded = %d, want 1", len(f.flagRepo.flags))
	}
	flag := f.flagRepo.flags[0]
	if flag.QuestionID != flagged.ID || flag.Status != model.FlagStatusPending {
		t.Errorf("flag = %+v, want pending flag on question %s", flag, flagged.ID)
	}
}

// A failing flag store must not fail the submission.
func TestSubmitAttemptFlagFailureIsBestEffort(t *testing.T) {
	f := newExamFixture(t)
	f.flagRepo.failing = true

	started, err := f.svc.StartAttempt(f.principal, dto.ExamStartDTO{JuzNumber: 30})
	if err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}
	result, err := f.svc.SubmitAttempt(f.principal, dto.ExamSubmitDTO{
		AttemptID: started.Attempt.ID,
		Answers:   []dto.ExamAnswerDTO{{QuestionID: f.questionRepo.questions[0].ID, Answer: "B"}},
		FlaggedQuestions: []dto.ExamFlagDTO{
			{QuestionID: f.questionRepo.questions[0].ID, FlagType: "unclear", Message: ""},
		},
	})
	if err != nil {
		t.Fatalf("SubmitAttempt should not fail on flag store error: %v", err)
	}
	if result.Attempt.Status != model.AttemptStatusSubmitted {
		t.Errorf("status = %q, want submitted", result.Attempt.Status)
	}
}

func TestSubmitAttemptOwnership(t *testing.T) {
	f := newExamFixture(t)

	started, err := f.svc.StartAttempt(f.principal, dto.ExamStartDTO{JuzNumber: 30})
	if err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}
	stranger := model.Principal{UserID: uuid.New()}
	_, err = f.svc.SubmitAttempt(stranger, dto.ExamSubmitDTO{AttemptID: started.Attempt.ID})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("kind = %v, want not_found for another user's attempt", apperr.KindOf(err))
	}
}

func TestSubmitAttemptUsesConfiguredPassingScore(t *testing.T) {
	f := newExamFixture(t)
	f.configRepo.configurations = []model.ExamConfiguration{{
		ID: uuid.New(), Name: "Ketat", PassingScore: 80, IsActive: true,
	}}

	started, err := f.svc.StartAttempt(f.principal, dto.ExamStartDTO{JuzNumber: 30})
	if err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}
	// 7/10 = 70, below the configured 80.
	answers := make([]dto.ExamAnswerDTO, 0, 10)
	for i, q := range f.questionRepo.questions {
		answer := "B"
		if i >= 7 {
			answer = "D"
		}
		answers = append(answers, dto.ExamAnswerDTO{QuestionID: q.ID, Answer: answer})
	}
	result, err := f.svc.SubmitAttempt(f.principal, dto.ExamSubmitDTO{AttemptID: started.Attempt.ID, Answers: answers})
	if err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}
	if result.Result.Passed {
		t.Error("70 < 80 should not pass")
	}
}

func TestEligibility(t *testing.T) {
	f := newExamFixture(t)

	eligibility, err := f.svc.Eligibility(f.principal)
	if err != nil {
		t.Fatalf("Eligibility: %v", err)
	}
	if !eligibility.IsEligible {
		t.Errorf("eligibility = %+v, want eligible", eligibility)
	}
	if eligibility.RequiredJuz == nil || *eligibility.RequiredJuz != 30 {
		t.Errorf("required juz = %v, want 30", eligibility.RequiredJuz)
	}

	started, err := f.svc.StartAttempt(f.principal, dto.ExamStartDTO{JuzNumber: 30})
	if err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}
	f.submitAll(t, started.Attempt.ID, "B")

	eligibility, err = f.svc.Eligibility(f.principal)
	if err != nil {
		t.Fatalf("Eligibility after submit: %v", err)
	}
	if eligibility.IsEligible || !eligibility.HasCompleted {
		t.Errorf("eligibility after submit = %+v, want completed", eligibility)
	}
	if eligibility.AttemptsUsed != 1 {
		t.Errorf("attempts used = %d, want 1", eligibility.AttemptsUsed)
	}
}

func TestEligibilityWithoutRegistration(t *testing.T) {
	f := newExamFixture(t)

	eligibility, err := f.svc.Eligibility(model.Principal{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("Eligibility: %v", err)
	}
	if eligibility.IsEligible {
		t.Error("user without registration should not be eligible")
	}
}

func TestQuestionsForUserStripsAnswerKey(t *testing.T) {
	f := newExamFixture(t)
	f.questionRepo.questions[0].Options = datatypes.NewJSONSlice([]model.QuestionOption{
		{Text: "A", IsCorrect: false},
		{Text: "B", IsCorrect: true},
	})

	questions, err := f.svc.QuestionsForUser(f.principal)
	if err != nil {
		t.Fatalf("QuestionsForUser: %v", err)
	}
	if questions.Total != 10 || questions.ExamJuzNumber != 30 {
		t.Errorf("questions = total %d juz %d, want 10 on juz 30", questions.Total, questions.ExamJuzNumber)
	}
	if got := questions.Data[0].Options; len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Errorf("options = %v, want bare texts without correctness", got)
	}
}
