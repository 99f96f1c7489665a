package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/prakriti/internal/ayurveda"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatientServiceRegisterAndAuthenticate(t *testing.T) {
	svc := NewPatientService(setupServiceTestDB(t))

	patient, err := svc.Register(RegistrationInput{
		Name:     "  <b>Asha</b> ",
		Age:      "34",
		Email:    " Asha@Example.com ",
		Password: "secret",
		Allergy:  "peanut, dairy",
	})
	require.NoError(t, err)
	assert.NotZero(t, patient.ID)
	assert.Equal(t, "Asha", patient.Name)
	assert.Equal(t, "asha@example.com", patient.Email)
	require.NotNil(t, patient.Age)
	assert.Equal(t, 34, *patient.Age)
	assert.NotEqual(t, "secret", patient.Password)
	assert.False(t, patient.HasProfile())

	got, err := svc.Authenticate("ASHA@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, patient.ID, got.ID)

	_, err = svc.Authenticate("asha@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate("nobody@example.com", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPatientServiceRegisterValidation(t *testing.T) {
	svc := NewPatientService(setupServiceTestDB(t))
	registerTestPatient(t, svc, "taken@example.com")

	tests := []struct {
		name  string
		input RegistrationInput
		want  error
	}{
		{"missing name", RegistrationInput{Email: "a@example.com", Password: "x"}, ErrRegistrationIncomplete},
		{"markup only name", RegistrationInput{Name: "<i></i>", Email: "a@example.com", Password: "x"}, ErrRegistrationIncomplete},
		{"missing email", RegistrationInput{Name: "A", Password: "x"}, ErrRegistrationIncomplete},
		{"missing password", RegistrationInput{Name: "A", Email: "a@example.com"}, ErrRegistrationIncomplete},
		{"non numeric age", RegistrationInput{Name: "A", Age: "thirty", Email: "a@example.com", Password: "x"}, ErrInvalidAge},
		{"negative age", RegistrationInput{Name: "A", Age: "-1", Email: "a@example.com", Password: "x"}, ErrInvalidAge},
		{"duplicate email", RegistrationInput{Name: "A", Email: "TAKEN@example.com", Password: "x"}, ErrEmailTaken},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(tc.input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestPatientServiceBlankAgeIsOptional(t *testing.T) {
	svc := NewPatientService(setupServiceTestDB(t))

	patient, err := svc.Register(RegistrationInput{Name: "Ravi", Email: "ravi@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Nil(t, patient.Age)
}

func TestPatientServiceSubmitQuestionnaire(t *testing.T) {
	svc := NewPatientService(setupServiceTestDB(t))
	patient := registerTestPatient(t, svc, "q@example.com")

	updated, err := svc.SubmitQuestionnaire(patient.ID, ayurveda.Answers{
		Sleep:     "light",
		Skin:      "dry",
		Digestion: "irregular",
		Appetite:  "variable",
		BodyBuild: "thin",
	})
	require.NoError(t, err)
	assert.Equal(t, "Vata", updated.Constitution)
	assert.Equal(t, ayurveda.DigestionNormal, updated.DigestiveStrength)
	assert.Equal(t, ayurveda.ToxinAbsent, updated.ToxinPresence)
	assert.True(t, updated.HasProfile())

	reloaded, err := svc.Get(patient.ID)
	require.NoError(t, err)
	assert.Equal(t, ProfileOf(*updated), ProfileOf(*reloaded))

	// 重新提交会覆盖之前的结果
	updated, err = svc.SubmitQuestionnaire(patient.ID, ayurveda.Answers{DigestiveOverride: "Strong", ToxinSigns: "coated tongue"})
	require.NoError(t, err)
	assert.Equal(t, ayurveda.ConstitutionBalanced, updated.Constitution)
	assert.Equal(t, "Strong", updated.DigestiveStrength)
	assert.Equal(t, ayurveda.ToxinPresent, updated.ToxinPresence)
}

func TestPatientServiceDigestiveOverrideIsCleaned(t *testing.T) {
	svc := NewPatientService(setupServiceTestDB(t))
	patient := registerTestPatient(t, svc, "agni@example.com")

	updated, err := svc.SubmitQuestionnaire(patient.ID, ayurveda.Answers{DigestiveOverride: "  <i>Sharp</i> "})
	require.NoError(t, err)
	assert.Equal(t, "Sharp", updated.DigestiveStrength)

	// 标记不计入长度
	updated, err = svc.SubmitQuestionnaire(patient.ID, ayurveda.Answers{DigestiveOverride: "<b>" + strings.Repeat("a", 50) + "</b>"})
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("a", 50), updated.DigestiveStrength)

	_, err = svc.SubmitQuestionnaire(patient.ID, ayurveda.Answers{DigestiveOverride: strings.Repeat("ä", 51)})
	assert.ErrorIs(t, err, ErrInvalidDigestiveOverride)

	reloaded, err := svc.Get(patient.ID)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("a", 50), reloaded.DigestiveStrength)
}

func TestPatientServiceMissingPatient(t *testing.T) {
	svc := NewPatientService(setupServiceTestDB(t))

	_, err := svc.Get(42)
	assert.ErrorIs(t, err, ErrPatientNotFound)

	_, err = svc.SaveProfile(42, ayurveda.Profile{Constitution: "Vata"})
	assert.ErrorIs(t, err, ErrPatientNotFound)
}
