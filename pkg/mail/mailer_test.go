package mail

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/greenacres/greenacres-backend/pkg/config"
)

func TestResolveTransportPriority(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.MailtrapConfig
		want string
		err  error
	}{
		{
			name: "sandbox wins over api",
			cfg:  config.MailtrapConfig{SMTPUser: "u", SMTPPass: "p", APIToken: "tok"},
			want: "sandbox-smtp",
		},
		{
			name: "api when no sandbox",
			cfg:  config.MailtrapConfig{APIToken: "tok", APIURL: "https://example.test/send"},
			want: "send-api",
		},
		{
			name: "nothing configured",
			cfg:  config.MailtrapConfig{},
			err:  ErrNoTransport,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr, err := resolveTransport(tc.cfg)
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Fatalf("expected %v, got %v", tc.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tr.name() != tc.want {
				t.Fatalf("expected transport %s, got %s", tc.want, tr.name())
			}
		})
	}
}

func TestTransportResolvedOnce(t *testing.T) {
	m := New(config.MailtrapConfig{}, nil)
	_, err := m.transport(context.Background())
	if !errors.Is(err, ErrNoTransport) {
		t.Fatalf("expected ErrNoTransport, got %v", err)
	}

	// Credentials appearing later must not change the cached resolution.
	m.cfg.APIToken = "tok"
	_, err = m.transport(context.Background())
	if !errors.Is(err, ErrNoTransport) {
		t.Fatalf("expected cached ErrNoTransport, got %v", err)
	}
}

func TestSendValidatesMessage(t *testing.T) {
	m := New(config.MailtrapConfig{APIToken: "tok"}, nil)
	if err := m.Send(context.Background(), Message{Subject: "s", HTML: "<p>x</p>"}); err == nil {
		t.Fatal("expected error for missing recipient")
	}
	if err := m.Send(context.Background(), Message{To: "a@b.c", HTML: "<p>x</p>"}); err == nil {
		t.Fatal("expected error for missing subject")
	}
}

func TestAPITransportSend(t *testing.T) {
	var gotAuth string
	var gotPayload apiPayload

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &gotPayload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := New(config.MailtrapConfig{
		APIToken:  "secret-token",
		APIURL:    srv.URL,
		FromEmail: "hello@greenacrescoffee.com",
		FromName:  "Greenacres Coffee",
	}, nil)

	err := m.Send(context.Background(), Message{
		To:      "buyer@example.com",
		Subject: "Inquiry Received",
		HTML:    "<p>Thank you</p>",
	})
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	if gotAuth != "Bearer secret-token" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotPayload.From.Email != "hello@greenacrescoffee.com" {
		t.Fatalf("unexpected from %q", gotPayload.From.Email)
	}
	if len(gotPayload.To) != 1 || gotPayload.To[0].Email != "buyer@example.com" {
		t.Fatalf("unexpected recipients %+v", gotPayload.To)
	}
	if gotPayload.Subject != "Inquiry Received" || gotPayload.HTML != "<p>Thank you</p>" {
		t.Fatalf("unexpected payload %+v", gotPayload)
	}
}

func TestAPITransportSendNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	m := New(config.MailtrapConfig{APIToken: "bad", APIURL: srv.URL}, nil)
	err := m.Send(context.Background(), Message{To: "a@b.c", Subject: "s", HTML: "<p>x</p>"})
	if err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}
