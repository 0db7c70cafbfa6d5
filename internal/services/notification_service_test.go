package services

import (
	"testing"

	"bloodbridge_backend/internal/models"
	"bloodbridge_backend/internal/repositories"
	"bloodbridge_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotificationService(t *testing.T) (NotificationService, *testRepos) {
	db := newTestDB(t)
	repos := newTestRepos(db)
	return NewNotificationService(repos.notifications, repos.donors), repos
}

func defaultCriteria() repositories.NotificationCriteria {
	return repositories.NotificationCriteria{Page: 1, PageSize: 20}
}

func TestCreateNotificationsForMatchingDonors_BroadFilter(t *testing.T) {
	svc, repos := newNotificationService(t)

	// Фильтр для in-app уведомлений шире, чем для подбора:
	// донор с недавней донацией и неподходящим возрастом все равно уведомляется
	recentlyDonated := makeDonor(func(d *models.Donor) { d.LastDonationDate = daysAgo(5) })
	tooYoung := makeDonor(func(d *models.Donor) { d.Age = 17 })
	unavailable := makeDonor(func(d *models.Donor) { d.Available = false })
	otherCity := makeDonor(func(d *models.Donor) { d.City = "Chittagong" })

	for _, donor := range []*models.Donor{recentlyDonated, tooYoung, unavailable, otherCity} {
		require.NoError(t, repos.donors.CreateDonor(donor))
	}

	request := makeRequest()
	require.NoError(t, repos.requests.CreateBloodRequest(request))

	created, err := svc.CreateNotificationsForMatchingDonors(request)
	require.NoError(t, err)
	assert.Equal(t, 2, created, "available donors of the group in the city, nothing else")

	// Текст уведомления собирается из полей запроса
	list, err := svc.GetDonorNotifications(recentlyDonated.ID, defaultCriteria())
	require.NoError(t, err)
	require.Len(t, list.Notifications, 1)
	assert.Equal(t,
		"Emergency blood request: John Doe needs 2 units of O_NEGATIVE blood at Dhaka Medical College in Dhaka. Urgency: HIGH",
		list.Notifications[0].Message,
	)
	assert.Equal(t, request.ID, list.Notifications[0].BloodRequestID)
}

func TestCreateNotificationsForMatchingDonors_NoDeduplication(t *testing.T) {
	svc, repos := newNotificationService(t)

	donor := makeDonor()
	require.NoError(t, repos.donors.CreateDonor(donor))

	request := makeRequest()
	require.NoError(t, repos.requests.CreateBloodRequest(request))

	for i := 0; i < 2; i++ {
		created, err := svc.CreateNotificationsForMatchingDonors(request)
		require.NoError(t, err)
		assert.Equal(t, 1, created)
	}

	count, err := svc.GetUnreadCount(donor.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count, "repeat dispatch creates new rows")
}

func TestMarkAsRead_OwnerScoped(t *testing.T) {
	svc, repos := newNotificationService(t)

	owner := makeDonor()
	stranger := makeDonor()
	require.NoError(t, repos.donors.CreateDonor(owner))
	require.NoError(t, repos.donors.CreateDonor(stranger))

	request := makeRequest()
	require.NoError(t, repos.requests.CreateBloodRequest(request))

	_, err := repos.notifications.CreateEmergencyNotifications([]models.Donor{*owner}, request)
	require.NoError(t, err)

	list, err := svc.GetDonorNotifications(owner.ID, defaultCriteria())
	require.NoError(t, err)
	require.Len(t, list.Notifications, 1)
	notificationID := list.Notifications[0].ID

	// Чужой донор получает not found, запись не меняется
	err = svc.MarkAsRead(stranger.ID, notificationID)
	assert.ErrorIs(t, err, apperrors.ErrNotificationNotFound)

	list, err = svc.GetDonorNotifications(owner.ID, defaultCriteria())
	require.NoError(t, err)
	assert.False(t, list.Notifications[0].IsRead)

	// Владелец помечает успешно
	require.NoError(t, svc.MarkAsRead(owner.ID, notificationID))

	list, err = svc.GetDonorNotifications(owner.ID, defaultCriteria())
	require.NoError(t, err)
	require.True(t, list.Notifications[0].IsRead)
	require.NotNil(t, list.Notifications[0].ReadAt)
	firstReadAt := *list.Notifications[0].ReadAt

	// Повторная пометка идемпотентна и сохраняет исходный read_at
	require.NoError(t, svc.MarkAsRead(owner.ID, notificationID))
	list, err = svc.GetDonorNotifications(owner.ID, defaultCriteria())
	require.NoError(t, err)
	assert.Equal(t, firstReadAt.Unix(), list.Notifications[0].ReadAt.Unix())
}

func TestMarkAsRead_UnknownNotification(t *testing.T) {
	svc, repos := newNotificationService(t)

	donor := makeDonor()
	require.NoError(t, repos.donors.CreateDonor(donor))

	err := svc.MarkAsRead(donor.ID, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, apperrors.ErrNotificationNotFound)
}

func TestMarkAllAsReadAndUnreadCount(t *testing.T) {
	svc, repos := newNotificationService(t)

	donor := makeDonor()
	other := makeDonor()
	require.NoError(t, repos.donors.CreateDonor(donor))
	require.NoError(t, repos.donors.CreateDonor(other))

	request := makeRequest()
	require.NoError(t, repos.requests.CreateBloodRequest(request))

	_, err := repos.notifications.CreateEmergencyNotifications([]models.Donor{*donor, *donor, *other}, request)
	require.NoError(t, err)

	count, err := svc.GetUnreadCount(donor.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	require.NoError(t, svc.MarkAllAsRead(donor.ID))

	count, err = svc.GetUnreadCount(donor.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	// Чужие уведомления не затронуты
	count, err = svc.GetUnreadCount(other.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestGetDonorNotifications_UnreadOnly(t *testing.T) {
	svc, repos := newNotificationService(t)

	donor := makeDonor()
	require.NoError(t, repos.donors.CreateDonor(donor))

	request := makeRequest()
	require.NoError(t, repos.requests.CreateBloodRequest(request))

	_, err := repos.notifications.CreateEmergencyNotifications([]models.Donor{*donor, *donor}, request)
	require.NoError(t, err)

	list, err := svc.GetDonorNotifications(donor.ID, defaultCriteria())
	require.NoError(t, err)
	require.Len(t, list.Notifications, 2)

	require.NoError(t, svc.MarkAsRead(donor.ID, list.Notifications[0].ID))

	criteria := defaultCriteria()
	criteria.UnreadOnly = true
	list, err = svc.GetDonorNotifications(donor.ID, criteria)
	require.NoError(t, err)
	require.Len(t, list.Notifications, 1)
	assert.False(t, list.Notifications[0].IsRead)
	assert.EqualValues(t, 1, list.UnreadCount)
}
