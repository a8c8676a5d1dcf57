package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/tikrarapp/tikrar-backend/internal/apperr"
	"github.com/tikrarapp/tikrar-backend/internal/dto"
	"github.com/tikrarapp/tikrar-backend/internal/model"
)

func TestApproveRegistration(t *testing.T) {
	registration := model.Registration{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		FullName:  "Fatimah",
		ChosenJuz: "28A",
		Status:    model.RegistrationStatusPending,
	}
	repo := &fakeRegistrationRepo{registrations: []model.Registration{registration}}
	svc := NewRegistrationService(repo)

	approved, err := svc.Approve(registration.ID)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if approved.Status != model.RegistrationStatusApproved {
		t.Errorf("status = %q, want approved", approved.Status)
	}

	// Approval is pending-only: a second approve is rejected.
	if _, err := svc.Approve(registration.ID); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("kind = %v, want validation_error on re-approve", apperr.KindOf(err))
	}
}

func TestApproveRegistrationNotFound(t *testing.T) {
	svc := NewRegistrationService(&fakeRegistrationRepo{})
	if _, err := svc.Approve(uuid.New()); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("kind = %v, want not_found", apperr.KindOf(err))
	}
}

func TestMyRegistration(t *testing.T) {
	userID := uuid.New()
	repo := &fakeRegistrationRepo{registrations: []model.Registration{{
		ID: uuid.New(), UserID: userID, FullName: "Khadijah", ChosenJuz: "29B", Status: model.RegistrationStatusPending,
	}}}
	svc := NewRegistrationService(repo)

	registration, err := svc.MyRegistration(model.Principal{UserID: userID})
	if err != nil {
		t.Fatalf("MyRegistration: %v", err)
	}
	if registration.ChosenJuz != "29B" {
		t.Errorf("chosen juz = %q, want 29B", registration.ChosenJuz)
	}
	if !registration.ExamRequired {
		t.Error("juz 29 registration should carry an exam obligation")
	}
	if registration.RequiredExamJuz == nil || *registration.RequiredExamJuz != 30 {
		t.Errorf("required exam juz = %v, want 30", registration.RequiredExamJuz)
	}

	if _, err := svc.MyRegistration(model.Principal{UserID: uuid.New()}); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("kind = %v, want not_found for unknown user", apperr.KindOf(err))
	}
}

func TestMyRegistrationNoExamForJuz30(t *testing.T) {
	userID := uuid.New()
	repo := &fakeRegistrationRepo{registrations: []model.Registration{{
		ID: uuid.New(), UserID: userID, FullName: "Aisyah", ChosenJuz: "30A", Status: model.RegistrationStatusApproved,
	}}}
	svc := NewRegistrationService(repo)

	registration, err := svc.MyRegistration(model.Principal{UserID: userID})
	if err != nil {
		t.Fatalf("MyRegistration: %v", err)
	}
	if registration.ExamRequired {
		t.Error("juz 30 registration should not carry an exam obligation")
	}
	if registration.RequiredExamJuz != nil {
		t.Errorf("required exam juz = %v, want nil", registration.RequiredExamJuz)
	}
}

func TestDaftarUlangSubmit(t *testing.T) {
	userID := uuid.New()
	halaqahID := uuid.New()
	repo := &fakeDaftarUlangRepo{submissions: []model.DaftarUlangSubmission{{
		ID: uuid.New(), UserID: userID, Status: model.SubmissionStatusDraft,
	}}}
	svc := NewDaftarUlangService(repo)
	principal := model.Principal{UserID: userID}

	submission, err := svc.Submit(principal, dto.DaftarUlangSubmitDTO{UjianHalaqahID: &halaqahID})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if submission.Status != model.SubmissionStatusSubmitted {
		t.Errorf("status = %q, want submitted", submission.Status)
	}
	if submission.SubmittedAt == nil {
		t.Error("submitted_at not set")
	}
	if submission.UjianHalaqahID == nil || *submission.UjianHalaqahID != halaqahID {
		t.Errorf("ujian halaqah = %v, want %s", submission.UjianHalaqahID, halaqahID)
	}

	// Submission is one-way.
	if _, err := svc.Submit(principal, dto.DaftarUlangSubmitDTO{UjianHalaqahID: &halaqahID}); apperr.KindOf(err) != apperr.KindAlreadySubmitted {
		t.Errorf("kind = %v, want already_submitted on resubmit", apperr.KindOf(err))
	}
}

func TestDaftarUlangSubmitWithoutDraftCreates(t *testing.T) {
	halaqahID := uuid.New()
	repo := &fakeDaftarUlangRepo{}
	svc := NewDaftarUlangService(repo)

	submission, err := svc.Submit(model.Principal{UserID: uuid.New()}, dto.DaftarUlangSubmitDTO{TashihHalaqahID: &halaqahID})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if submission.Status != model.SubmissionStatusSubmitted {
		t.Errorf("status = %q, want submitted", submission.Status)
	}
	if len(repo.submissions) != 1 {
		t.Errorf("stored submissions = %d, want 1", len(repo.submissions))
	}
}

func TestDaftarUlangSubmitRequiresAChoice(t *testing.T) {
	svc := NewDaftarUlangService(&fakeDaftarUlangRepo{})
	_, err := svc.Submit(model.Principal{UserID: uuid.New()}, dto.DaftarUlangSubmitDTO{})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("kind = %v, want validation_error", apperr.KindOf(err))
	}
}
