package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/Amlan029/FeedFormly/internal/core/domain"
	"github.com/Amlan029/FeedFormly/internal/core/port"
	"github.com/Amlan029/FeedFormly/internal/repository"
)

type mockAccountRepository struct {
	createErr   error
	createCalls int
	created     domain.Account

	getByUsernameResult *domain.Account
	getByUsernameErr    error

	getByEmailResult *domain.Account
	getByEmailErr    error

	getByIDResult *domain.Account
	getByIDErr    error

	getByIdentifierResult *domain.Account
	getByIdentifierErr    error
	getByIdentifierArg    string

	updatePendingErr    error
	updatePendingCalls  int
	updatePendingID     string
	updatePendingUpdate port.PendingRegistration

	markVerifiedErr   error
	markVerifiedCalls int

	setAcceptingErr   error
	setAcceptingCalls int
	setAcceptingValue bool

	appendErr   error
	appendCalls int
	appendUser  string
	appended    domain.Message

	listResult []domain.Message
	listErr    error

	deleteErr   error
	deleteCalls int
	deleteOwner string
	deleteID    string
}

func (m *mockAccountRepository) Create(_ context.Context, account domain.Account) error {
	m.createCalls++
	m.created = account
	return m.createErr
}

func (m *mockAccountRepository) GetByID(context.Context, string) (*domain.Account, error) {
	return cloneResult(m.getByIDResult, m.getByIDErr)
}

func (m *mockAccountRepository) GetByUsername(context.Context, string) (*domain.Account, error) {
	return cloneResult(m.getByUsernameResult, m.getByUsernameErr)
}

func (m *mockAccountRepository) GetByEmail(context.Context, string) (*domain.Account, error) {
	return cloneResult(m.getByEmailResult, m.getByEmailErr)
}

func (m *mockAccountRepository) GetByIdentifier(_ context.Context, identifier string) (*domain.Account, error) {
	m.getByIdentifierArg = identifier
	return cloneResult(m.getByIdentifierResult, m.getByIdentifierErr)
}

func (m *mockAccountRepository) UpdatePendingRegistration(_ context.Context, id string, update port.PendingRegistration) error {
	m.updatePendingCalls++
	m.updatePendingID = id
	m.updatePendingUpdate = update
	return m.updatePendingErr
}

func (m *mockAccountRepository) MarkVerified(context.Context, string) error {
	m.markVerifiedCalls++
	return m.markVerifiedErr
}

func (m *mockAccountRepository) SetAcceptingMessages(_ context.Context, _ string, accepting bool) error {
	m.setAcceptingCalls++
	m.setAcceptingValue = accepting
	return m.setAcceptingErr
}

func (m *mockAccountRepository) AppendMessage(_ context.Context, username string, message domain.Message) error {
	m.appendCalls++
	m.appendUser = username
	m.appended = message
	return m.appendErr
}

func (m *mockAccountRepository) ListMessages(context.Context, string) ([]domain.Message, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]domain.Message, len(m.listResult))
	copy(out, m.listResult)
	return out, nil
}

func (m *mockAccountRepository) DeleteMessage(_ context.Context, accountID, messageID string) error {
	m.deleteCalls++
	m.deleteOwner = accountID
	m.deleteID = messageID
	return m.deleteErr
}

func cloneResult(account *domain.Account, err error) (*domain.Account, error) {
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, repository.ErrNotFound
	}
	copy := *account
	return &copy, nil
}

// fakeHasher stores passwords with a readable prefix.
type fakeHasher struct {
	hashErr error
}

func (h fakeHasher) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + password, nil
}

func (fakeHasher) Verify(password, encoded string) (bool, error) {
	if !strings.HasPrefix(encoded, "hashed:") {
		return false, errors.New("malformed hash")
	}
	return encoded == "hashed:"+password, nil
}

type recordingNotifier struct {
	mu      sync.Mutex
	err     error
	notices []domain.VerificationNotice
}

func (n *recordingNotifier) SendVerificationCode(_ context.Context, notice domain.VerificationNotice) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
	return n.err
}

type recordingPublisher struct {
	mu         sync.Mutex
	err        error
	registered []domain.AccountRegisteredEvent
	verified   []domain.AccountVerifiedEvent
	received   []domain.MessageReceivedEvent
}

func (p *recordingPublisher) PublishAccountRegistered(_ context.Context, event domain.AccountRegisteredEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.registered = append(p.registered, event)
	return p.err
}

func (p *recordingPublisher) PublishAccountVerified(_ context.Context, event domain.AccountVerifiedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.verified = append(p.verified, event)
	return p.err
}

func (p *recordingPublisher) PublishMessageReceived(_ context.Context, event domain.MessageReceivedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.received = append(p.received, event)
	return p.err
}

type recordingMetrics struct {
	mu            sync.Mutex
	registrations []bool
	verifications []string
	received      int
	rejected      []string
	deleted       int
	suggestions   []string
}

func (m *recordingMetrics) AccountRegistered(reregistered bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registrations = append(m.registrations, reregistered)
}

func (m *recordingMetrics) VerificationAttempt(outcome string) {
	m.verifications = append(m.verifications, outcome)
}

func (m *recordingMetrics) MessageReceived() { m.received++ }

func (m *recordingMetrics) MessageRejected(reason string) {
	m.rejected = append(m.rejected, reason)
}

func (m *recordingMetrics) MessageDeleted() { m.deleted++ }

func (m *recordingMetrics) SuggestionRequested(outcome string) {
	m.suggestions = append(m.suggestions, outcome)
}

type stubGenerator struct {
	text   string
	err    error
	prompt string
	calls  int
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.calls++
	g.prompt = prompt
	return g.text, g.err
}

type stubTokenIssuer struct {
	issueErr  error
	issued    []domain.Principal
	parseErr  error
	principal domain.Principal
}

func (s *stubTokenIssuer) Issue(principal domain.Principal) (string, time.Time, error) {
	if s.issueErr != nil {
		return "", time.Time{}, s.issueErr
	}
	s.issued = append(s.issued, principal)
	return "token-" + principal.AccountID, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}

func (s *stubTokenIssuer) Parse(string) (domain.Principal, error) {
	if s.parseErr != nil {
		return domain.Principal{}, s.parseErr
	}
	return s.principal, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func fixedCode(code string) func(int) (string, error) {
	return func(int) (string, error) { return code, nil }
}
