package v1

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pinswap/api/internal/domain"
	"github.com/pinswap/api/internal/pkg/detector"
	"github.com/pinswap/api/internal/service"
)

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserService) UpdateProfile(ctx context.Context, id uint, update domain.UserUpdate) (domain.User, error) {
	args := m.Called(ctx, id, update)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserService) ChangePassword(ctx context.Context, id uint, currentPassword, newPassword string) error {
	return m.Called(ctx, id, currentPassword, newPassword).Error(0)
}

func (m *mockUserService) ListUsers(ctx context.Context, page domain.Page) ([]domain.User, int64, error) {
	args := m.Called(ctx, page)
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}

func (m *mockUserService) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserService) UpdateUser(ctx context.Context, id uint, update domain.UserUpdate) (domain.User, error) {
	args := m.Called(ctx, id, update)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserService) DeleteUser(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, user domain.User, business *domain.Business) (domain.User, error) {
	args := m.Called(ctx, user, business)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string, role domain.Role) (domain.User, error) {
	args := m.Called(ctx, email, password, role)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockAuthService) ForgotPassword(ctx context.Context, email string) (service.PasswordReset, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(service.PasswordReset), args.Error(1)
}

func (m *mockAuthService) ResetPassword(ctx context.Context, token, newPassword string) (domain.User, error) {
	args := m.Called(ctx, token, newPassword)
	return args.Get(0).(domain.User), args.Error(1)
}

type mockVoucherService struct {
	mock.Mock
}

func (m *mockVoucherService) ListAvailable(ctx context.Context) ([]domain.Voucher, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Voucher), args.Error(1)
}

func (m *mockVoucherService) GetVoucher(ctx context.Context, id uint) (domain.Voucher, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Voucher), args.Error(1)
}

func (m *mockVoucherService) Redeem(ctx context.Context, userID, voucherID uint) (domain.RedemptionResult, error) {
	args := m.Called(ctx, userID, voucherID)
	return args.Get(0).(domain.RedemptionResult), args.Error(1)
}

func (m *mockVoucherService) History(ctx context.Context, userID uint) ([]domain.RedemptionRecord, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.RedemptionRecord), args.Error(1)
}

func (m *mockVoucherService) CreateVoucher(ctx context.Context, actor domain.User, voucher domain.Voucher) (domain.Voucher, error) {
	args := m.Called(ctx, actor, voucher)
	return args.Get(0).(domain.Voucher), args.Error(1)
}

func (m *mockVoucherService) UpdateVoucher(ctx context.Context, actor domain.User, id uint, update domain.VoucherUpdate) (domain.Voucher, error) {
	args := m.Called(ctx, actor, id, update)
	return args.Get(0).(domain.Voucher), args.Error(1)
}

func (m *mockVoucherService) DeleteVoucher(ctx context.Context, actor domain.User, id uint) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *mockVoucherService) ListByBusiness(ctx context.Context, actor domain.User, businessID uint) ([]domain.Voucher, error) {
	args := m.Called(ctx, actor, businessID)
	return args.Get(0).([]domain.Voucher), args.Error(1)
}

func (m *mockVoucherService) ListAll(ctx context.Context) ([]domain.Voucher, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Voucher), args.Error(1)
}

type mockLocationService struct {
	mock.Mock
}

func (m *mockLocationService) ListLocations(ctx context.Context, filter domain.LocationFilter) ([]domain.Location, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Location), args.Error(1)
}

func (m *mockLocationService) GetLocation(ctx context.Context, id uint) (domain.Location, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Location), args.Error(1)
}

func (m *mockLocationService) CreateLocation(ctx context.Context, actor domain.User, location domain.Location) (domain.Location, error) {
	args := m.Called(ctx, actor, location)
	return args.Get(0).(domain.Location), args.Error(1)
}

func (m *mockLocationService) UpdateLocation(ctx context.Context, actor domain.User, id uint, update domain.LocationUpdate) (domain.Location, error) {
	args := m.Called(ctx, actor, id, update)
	return args.Get(0).(domain.Location), args.Error(1)
}

func (m *mockLocationService) DeleteLocation(ctx context.Context, actor domain.User, id uint) (domain.Location, error) {
	args := m.Called(ctx, actor, id)
	return args.Get(0).(domain.Location), args.Error(1)
}

func (m *mockLocationService) CheckIn(ctx context.Context, userID uint, qrCode string) (domain.CheckInResult, error) {
	args := m.Called(ctx, userID, qrCode)
	return args.Get(0).(domain.CheckInResult), args.Error(1)
}

type mockCollectionService struct {
	mock.Mock
}

func (m *mockCollectionService) Record(ctx context.Context, collection domain.Collection) (domain.Collection, int, error) {
	args := m.Called(ctx, collection)
	return args.Get(0).(domain.Collection), args.Int(1), args.Error(2)
}

func (m *mockCollectionService) List(ctx context.Context, userID uint) ([]domain.Collection, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Collection), args.Error(1)
}

func (m *mockCollectionService) Leaderboard(ctx context.Context, r domain.LeaderboardRange) (domain.Leaderboard, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(domain.Leaderboard), args.Error(1)
}

type mockSubscriptionService struct {
	mock.Mock
}

func (m *mockSubscriptionService) Subscribe(ctx context.Context, email string) (domain.Subscriber, bool, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.Subscriber), args.Bool(1), args.Error(2)
}

func (m *mockSubscriptionService) Confirm(ctx context.Context, token string) (domain.Subscriber, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(domain.Subscriber), args.Error(1)
}

func (m *mockSubscriptionService) List(ctx context.Context, email string, page domain.Page) ([]domain.Subscriber, int64, error) {
	args := m.Called(ctx, email, page)
	return args.Get(0).([]domain.Subscriber), args.Get(1).(int64), args.Error(2)
}

func (m *mockSubscriptionService) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockEventService struct {
	mock.Mock
	EventService
}

func (m *mockEventService) Register(ctx context.Context, eventID, userID uint) (domain.EventRegistration, error) {
	args := m.Called(ctx, eventID, userID)
	return args.Get(0).(domain.EventRegistration), args.Error(1)
}

type chatFunc func(ctx context.Context, message string) (string, error)

func (f chatFunc) Reply(ctx context.Context, message string) (string, error) {
	return f(ctx, message)
}

type detectFunc func(ctx context.Context, imagePath string) (detector.Result, error)

func (f detectFunc) Detect(ctx context.Context, imagePath string) (detector.Result, error) {
	return f(ctx, imagePath)
}
