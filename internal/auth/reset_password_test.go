package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/greenacres/greenacres-backend/pkg/db/models"
	"github.com/greenacres/greenacres-backend/pkg/mail"
	"github.com/greenacres/greenacres-backend/pkg/security"
)

type stubResetStore struct {
	user       *models.User
	findErr    error
	updateErr  error
	savedHash  string
	updateCall int
}

func (s *stubResetStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.user == nil || s.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubResetStore) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	s.updateCall++
	if s.updateErr != nil {
		return s.updateErr
	}
	s.savedHash = hash
	return nil
}

type stubMailer struct {
	sent    []mail.Message
	sendErr error
}

func (s *stubMailer) Send(ctx context.Context, msg mail.Message) error {
	if s.sendErr != nil {
		return s.sendErr
	}
	s.sent = append(s.sent, msg)
	return nil
}

func newResetService(t *testing.T, store *stubResetStore, mailer *stubMailer) ResetPasswordService {
	t.Helper()
	svc, err := NewResetPasswordService(ResetPasswordServiceParams{
		Store:          store,
		Mailer:         mailer,
		PasswordConfig: testPasswordConfig(),
	})
	if err != nil {
		t.Fatalf("NewResetPasswordService returned error: %v", err)
	}
	return svc
}

func TestResetPasswordEmailsTempCredential(t *testing.T) {
	store := &stubResetStore{user: &models.User{
		ID:            uuid.New(),
		Email:         "buyer@example.com",
		ContactPerson: "Maren Olsen",
	}}
	mailer := &stubMailer{}
	svc := newResetService(t, store, mailer)

	err := svc.ResetPassword(context.Background(), ResetPasswordRequest{Email: "Buyer@Example.com"})
	if err != nil {
		t.Fatalf("ResetPassword returned error: %v", err)
	}

	if store.savedHash == "" {
		t.Fatal("expected password hash to be updated")
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected one email, got %d", len(mailer.sent))
	}

	msg := mailer.sent[0]
	if msg.To != "buyer@example.com" {
		t.Fatalf("unexpected recipient %q", msg.To)
	}
	if !strings.Contains(msg.HTML, "Maren Olsen") {
		t.Fatalf("expected contact person in email body: %s", msg.HTML)
	}

	// The emailed temp password must verify against the stored hash.
	start := strings.Index(msg.HTML, "<strong>") + len("<strong>")
	end := strings.Index(msg.HTML, "</strong>")
	tempPassword := msg.HTML[start:end]
	ok, err := security.VerifyPassword(tempPassword, store.savedHash)
	if err != nil {
		t.Fatalf("verify temp password: %v", err)
	}
	if !ok {
		t.Fatal("emailed temp password does not match stored hash")
	}
}

func TestResetPasswordUnknownEmailSucceedsSilently(t *testing.T) {
	store := &stubResetStore{}
	mailer := &stubMailer{}
	svc := newResetService(t, store, mailer)

	if err := svc.ResetPassword(context.Background(), ResetPasswordRequest{Email: "ghost@example.com"}); err != nil {
		t.Fatalf("unknown email must not error: %v", err)
	}
	if store.updateCall != 0 {
		t.Fatal("no update expected for unknown email")
	}
	if len(mailer.sent) != 0 {
		t.Fatal("no email expected for unknown email")
	}
}

func TestResetPasswordSwallowsMailFailure(t *testing.T) {
	store := &stubResetStore{user: &models.User{
		ID:    uuid.New(),
		Email: "buyer@example.com",
	}}
	mailer := &stubMailer{sendErr: errors.New("smtp down")}
	svc := newResetService(t, store, mailer)

	if err := svc.ResetPassword(context.Background(), ResetPasswordRequest{Email: "buyer@example.com"}); err != nil {
		t.Fatalf("mail failure must not surface: %v", err)
	}
	if store.savedHash == "" {
		t.Fatal("password must still be rotated when email fails")
	}
}

func TestResetPasswordPersistFailureSurfaces(t *testing.T) {
	store := &stubResetStore{
		user:      &models.User{ID: uuid.New(), Email: "buyer@example.com"},
		updateErr: errors.New("db down"),
	}
	mailer := &stubMailer{}
	svc := newResetService(t, store, mailer)

	if err := svc.ResetPassword(context.Background(), ResetPasswordRequest{Email: "buyer@example.com"}); err == nil {
		t.Fatal("expected persistence error to surface")
	}
	if len(mailer.sent) != 0 {
		t.Fatal("no email may be sent when the update fails")
	}
}
