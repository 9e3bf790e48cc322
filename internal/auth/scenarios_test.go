// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SuperTicket Contributors

package auth_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/bytecraft/superticket/internal/apiclient"
	"github.com/bytecraft/superticket/internal/auth"
	"github.com/bytecraft/superticket/internal/authapi"
	"github.com/bytecraft/superticket/internal/form"
	"github.com/bytecraft/superticket/internal/session"
)

// fakeBackend answers the auth endpoints with canned replies.
type fakeBackend struct {
	srv      *httptest.Server
	requests atomic.Int32

	mu       sync.Mutex
	status   int
	body     string
	lastBody map[string]any
	gate     chan struct{}
}

func newFakeBackend() *fakeBackend {
	b := &fakeBackend{status: http.StatusOK}
	b.srv = httptest.NewServer(http.HandlerFunc(b.serve))
	return b
}

func (b *fakeBackend) reply(status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status, b.body = status, body
}

func (b *fakeBackend) hold() chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gate = make(chan struct{})
	return b.gate
}

func (b *fakeBackend) sent() map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastBody
}

func (b *fakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	b.requests.Add(1)
	raw, _ := io.ReadAll(r.Body)

	b.mu.Lock()
	var body map[string]any
	_ = json.Unmarshal(raw, &body)
	b.lastBody = body
	status, reply, gate := b.status, b.body, b.gate
	b.mu.Unlock()

	if gate != nil {
		<-gate
	}
	w.WriteHeader(status)
	_, _ = io.WriteString(w, reply)
}

var _ = Describe("Login submission", func() {
	var (
		ctx      context.Context
		backend  *fakeBackend
		sessions *session.Store
		login    *auth.LoginForm
	)

	BeforeEach(func() {
		ctx = context.Background()
		backend = newFakeBackend()
		DeferCleanup(backend.srv.Close)

		var err error
		sessions, err = session.NewStore(session.NewMemoryStorage())
		Expect(err).NotTo(HaveOccurred())

		api, err := authapi.New(apiclient.New(backend.srv.URL))
		Expect(err).NotTo(HaveOccurred())
		login, err = auth.NewLoginForm(api, sessions)
		Expect(err).NotTo(HaveOccurred())
	})

	fill := func(email, password string) {
		Expect(login.Store().UpdateField(form.FieldEmail, email)).To(Succeed())
		Expect(login.Store().UpdateField(form.FieldPassword, password)).To(Succeed())
	}

	It("stores the session on success (scenario A)", func() {
		backend.reply(http.StatusOK, `{"token":"jwt-abc","id":12,"role":"CLIENT","name":"Ana"}`)
		fill("test@test.com", "password123")
		login.Store().SetGeneralError("previous failure")

		out := login.Submit(ctx)

		Expect(out.Phase).To(Equal(auth.PhaseSuccess))
		Expect(login.Store().General()).To(BeEmpty())
		Expect(login.Store().Submitting()).To(BeFalse())
		Expect(backend.sent()).To(Equal(map[string]any{"email": "test@test.com", "password": "password123"}))

		sess, ok, err := sessions.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(sess).To(Equal(session.Session{
			Token: "jwt-abc",
			User:  session.User{ID: 12, Role: "CLIENT", Name: "Ana"},
		}))
	})

	It("reports both field errors without a request (scenario B)", func() {
		fill("bad-email", "short")

		out := login.Submit(ctx)

		Expect(out.Phase).To(Equal(auth.PhaseInvalid))
		Expect(login.Store().Snapshot().Errors).To(Equal(form.Errors{
			form.FieldEmail:    form.MsgInvalidEmail,
			form.FieldPassword: form.MsgPasswordTooShort,
		}))
		Expect(backend.requests.Load()).To(BeZero())
	})

	It("shows the server message on 401 (scenario C)", func() {
		backend.reply(http.StatusUnauthorized, `{"message":"Credenciales incorrectas"}`)
		fill("test@test.com", "password123")

		out := login.Submit(ctx)

		Expect(out).To(Equal(auth.Outcome{Phase: auth.PhaseFailure, Message: "Credenciales incorrectas"}))
		Expect(login.Store().General()).To(Equal("Credenciales incorrectas"))
		Expect(login.Store().Submitting()).To(BeFalse())
		Expect(login.Store().Snapshot().Errors).To(BeEmpty())

		_, ok, err := sessions.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
	})

	It("shows a generic message when the server is unreachable (scenario E)", func() {
		fill("test@test.com", "password123")
		backend.srv.Close()

		out := login.Submit(ctx)

		Expect(out.Phase).To(Equal(auth.PhaseFailure))
		Expect(login.Store().General()).To(Equal(auth.MsgNetworkError))
		Expect(login.Store().Submitting()).To(BeFalse())
	})

	It("treats a reply without a token as a network error", func() {
		backend.reply(http.StatusOK, `{"id":1}`)
		fill("test@test.com", "password123")

		login.Submit(ctx)

		Expect(login.Store().General()).To(Equal(auth.MsgNetworkError))
		_, ok, _ := sessions.Load()
		Expect(ok).To(BeFalse())
	})

	It("ignores submits while one is in flight", func() {
		backend.reply(http.StatusOK, `{"token":"jwt"}`)
		gate := backend.hold()
		fill("test@test.com", "password123")

		done := make(chan auth.Outcome, 1)
		go func() {
			defer GinkgoRecover()
			done <- login.Submit(ctx)
		}()
		Eventually(login.Store().Submitting).Should(BeTrue())
		Eventually(backend.requests.Load).Should(BeEquivalentTo(1))

		for range 3 {
			Expect(login.Submit(ctx).Skipped).To(BeTrue())
		}

		close(gate)
		Eventually(done).Should(Receive(HaveField("Phase", auth.PhaseSuccess)))
		Expect(backend.requests.Load()).To(BeEquivalentTo(1))
	})
})

var _ = Describe("Registration submission", func() {
	var (
		ctx      context.Context
		backend  *fakeBackend
		register *auth.RegisterForm
	)

	BeforeEach(func() {
		ctx = context.Background()
		backend = newFakeBackend()
		DeferCleanup(backend.srv.Close)

		api, err := authapi.New(apiclient.New(backend.srv.URL))
		Expect(err).NotTo(HaveOccurred())
		register, err = auth.NewRegisterForm(api)
		Expect(err).NotTo(HaveOccurred())

		for name, value := range validRegistration {
			Expect(register.Store().UpdateField(name, value)).To(Succeed())
		}
	})

	It("resets the form after a 201 (scenario D)", func() {
		backend.reply(http.StatusCreated, `{"name":"Ana"}`)

		out := register.Submit(ctx)

		Expect(out).To(Equal(auth.Outcome{Phase: auth.PhaseSuccess, Message: "account created, welcome Ana"}))
		snap := register.Store().Snapshot()
		Expect(snap.Errors).To(BeEmpty())
		Expect(snap.General).To(BeEmpty())
		for _, v := range snap.Data {
			Expect(v).To(BeEmpty())
		}

		sent := backend.sent()
		Expect(sent).To(HaveKeyWithValue("documentType", "DNI"))
		Expect(sent).To(HaveKeyWithValue("documentNumber", "10394778"))
		Expect(sent).To(HaveKeyWithValue("phoneNumber", "999500444"))
		Expect(sent).NotTo(HaveKey("confirm"))
		Expect(sent).NotTo(HaveKey("docType"))
	})

	It("surfaces the raw response text on failure", func() {
		backend.reply(http.StatusBadRequest, "El documento ya existe")

		register.Submit(ctx)

		Expect(register.Store().General()).To(Equal("El documento ya existe"))
		Expect(register.Store().Value(form.FieldFirstName)).To(Equal("Ana"))
	})
})
