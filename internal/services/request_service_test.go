package services

import (
	"errors"
	"sync"
	"testing"

	"bloodbridge_backend/internal/dispatch"
	"bloodbridge_backend/internal/email"
	"bloodbridge_backend/internal/models"
	"bloodbridge_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingEmailProvider считает отправки и может падать по требованию
type recordingEmailProvider struct {
	mu   sync.Mutex
	sent []string
	fail bool
}

func (p *recordingEmailProvider) Send(msg *email.Email) error {
	return p.record(msg.To)
}

func (p *recordingEmailProvider) SendTemplate(to []string, subject string, templateName string, data email.TemplateData) error {
	return p.record(to)
}

func (p *recordingEmailProvider) record(to []string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("smtp connection refused")
	}
	p.sent = append(p.sent, to...)
	return nil
}

func (p *recordingEmailProvider) sentTo() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.sent...)
}

func (p *recordingEmailProvider) Validate() error { return nil }
func (p *recordingEmailProvider) Close() error    { return nil }

type requestServiceFixture struct {
	service    RequestService
	repos      *testRepos
	provider   *recordingEmailProvider
	dispatcher *dispatch.Dispatcher
}

func newRequestService(t *testing.T) *requestServiceFixture {
	db := newTestDB(t)
	repos := newTestRepos(db)
	provider := &recordingEmailProvider{}
	dispatcher := dispatch.NewDispatcher(2, 32)
	t.Cleanup(dispatcher.Stop)

	matching := NewMatchingService(repos.donors, repos.requests)
	notifications := NewNotificationService(repos.notifications, repos.donors)
	notifier := NewNotifierService(provider, matching)
	service := NewRequestService(repos.requests, matching, notifications, notifier, dispatcher)

	return &requestServiceFixture{
		service:    service,
		repos:      repos,
		provider:   provider,
		dispatcher: dispatcher,
	}
}

func makeCreateRequest() *dto.CreateBloodRequestRequest {
	return &dto.CreateBloodRequestRequest{
		PatientName:  "John Doe",
		HospitalName: "Dhaka Medical College",
		City:         "Dhaka",
		State:        "Dhaka",
		BloodGroup:   string(models.BloodGroupONegative),
		Urgency:      string(models.UrgencyHigh),
		UnitsNeeded:  2,
		ContactName:  "Jane Doe",
		ContactPhone: "+8801700000001",
		ContactEmail: "jane@example.com",
	}
}

func TestCreateBloodRequest_PersistsAndDispatches(t *testing.T) {
	f := newRequestService(t)

	donor := makeDonor()
	require.NoError(t, f.repos.donors.CreateDonor(donor))

	resp, err := f.service.CreateBloodRequest(makeCreateRequest())
	require.NoError(t, err)
	require.NotNil(t, resp.Request)
	assert.True(t, resp.Request.IsActive)
	assert.Equal(t, 1, resp.MatchedDonors)

	// Stop дожидается фоновых задач
	f.dispatcher.Stop()

	// In-app уведомление создано
	count, err := f.repos.notifications.GetUnreadCount(donor.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	// Письма ушли донору и контактному лицу
	sent := f.provider.sentTo()
	assert.Contains(t, sent, donor.Email)
	assert.Contains(t, sent, "jane@example.com")
}

// Сбой почтового провайдера не должен проваливать создание запроса
func TestCreateBloodRequest_SucceedsWhenEmailFails(t *testing.T) {
	f := newRequestService(t)
	f.provider.fail = true

	donor := makeDonor()
	require.NoError(t, f.repos.donors.CreateDonor(donor))

	resp, err := f.service.CreateBloodRequest(makeCreateRequest())
	require.NoError(t, err)
	require.NotNil(t, resp.Request)

	f.dispatcher.Stop()

	// Запрос сохранен несмотря на сбой рассылки
	stored, err := f.repos.requests.FindBloodRequestByID(resp.Request.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsActive)

	// In-app уведомления не зависят от почты
	count, err := f.repos.notifications.GetUnreadCount(donor.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestListActiveBloodRequests_ExcludesClosed(t *testing.T) {
	f := newRequestService(t)

	active, err := f.service.CreateBloodRequest(makeCreateRequest())
	require.NoError(t, err)

	closed, err := f.service.CreateBloodRequest(makeCreateRequest())
	require.NoError(t, err)
	require.NoError(t, f.service.CloseBloodRequest(closed.Request.ID))

	list, err := f.service.ListActiveBloodRequests(1, 20)
	require.NoError(t, err)
	require.Len(t, list.Requests, 1)
	assert.Equal(t, active.Request.ID, list.Requests[0].ID)
	assert.EqualValues(t, 1, list.Total)
}

func TestCloseBloodRequest_UnknownID(t *testing.T) {
	f := newRequestService(t)

	err := f.service.CloseBloodRequest("00000000-0000-0000-0000-000000000000")
	assert.Error(t, err)
}
