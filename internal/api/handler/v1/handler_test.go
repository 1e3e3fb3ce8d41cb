package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pinswap/api/internal/api/handler/v1/response"
	"github.com/pinswap/api/internal/api/middleware"
	"github.com/pinswap/api/internal/config"
	"github.com/pinswap/api/internal/domain"
	"github.com/pinswap/api/internal/pkg/detector"
	"github.com/pinswap/api/internal/pkg/jwthelper"
	"github.com/pinswap/api/internal/service"
)

var errBoom = errors.New("boom")

func init() {
	gin.SetMode(gin.TestMode)
}

// asUser marks the request as authenticated the way VerifyJWT does.
func asUser(id uint, role domain.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(middleware.CtxKeyUserID, id)
		ctx.Set(middleware.CtxKeyRole, string(role))
		ctx.Next()
	}
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())

	return v
}

func TestHandleExchangeVoucher(t *testing.T) {
	remaining := 50
	voucher := domain.Voucher{ID: 3, Title: "Coffee", PointsRequired: 100, Quantity: 0, Status: domain.VoucherStatusActive}

	tests := []struct {
		name        string
		body        interface{}
		setup       func(m *mockVoucherService)
		wantStatus  int
		wantMessage string
	}{
		{
			name: "redeemed",
			body: map[string]uint{"voucherId": 3},
			setup: func(m *mockVoucherService) {
				m.On("Redeem", mock.Anything, uint(7), uint(3)).Return(domain.RedemptionResult{
					Record:          domain.RedemptionRecord{Code: "VCHR-123456", PointsUsed: 100},
					Voucher:         voucher,
					RemainingPoints: &remaining,
				}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "insufficient points",
			body: map[string]uint{"voucherId": 3},
			setup: func(m *mockVoucherService) {
				m.On("Redeem", mock.Anything, uint(7), uint(3)).Return(domain.RedemptionResult{}, service.ErrInsufficientPoints)
			},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "insufficient points",
		},
		{
			name: "out of stock",
			body: map[string]uint{"voucherId": 3},
			setup: func(m *mockVoucherService) {
				m.On("Redeem", mock.Anything, uint(7), uint(3)).Return(domain.RedemptionResult{}, service.ErrVoucherUnavailable)
			},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "voucher not available",
		},
		{
			name: "database down",
			body: map[string]uint{"voucherId": 3},
			setup: func(m *mockVoucherService) {
				m.On("Redeem", mock.Anything, uint(7), uint(3)).Return(domain.RedemptionResult{}, errBoom)
			},
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "internal server error",
		},
		{
			name:       "missing voucher id",
			body:       map[string]uint{},
			setup:      func(m *mockVoucherService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed json",
			body:       "{",
			setup:      func(m *mockVoucherService) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockVoucherService{}
			tt.setup(svc)
			h := NewVoucherHandler(svc, &mockUserService{})

			router := gin.New()
			router.POST("/vouchers/exchange", asUser(7, domain.RoleCitizen), h.HandleExchangeVoucher)

			w := doJSON(t, router, http.MethodPost, "/vouchers/exchange", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				got := decode[response.ExchangeResponse](t, w)
				assert.True(t, got.Success)
				assert.Equal(t, "VCHR-123456", got.Code)
				assert.Equal(t, uint(3), got.Voucher.ID)
				require.NotNil(t, got.RemainingPoints)
				assert.Equal(t, 50, *got.RemainingPoints)
			}
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, decode[response.Err](t, w).Message)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleGetVoucher(t *testing.T) {
	svc := &mockVoucherService{}
	svc.On("GetVoucher", mock.Anything, uint(1)).Return(domain.Voucher{ID: 1, Title: "Tote bag"}, nil)
	svc.On("GetVoucher", mock.Anything, uint(2)).Return(domain.Voucher{}, service.ErrVoucherNotFound)
	h := NewVoucherHandler(svc, &mockUserService{})

	router := gin.New()
	router.GET("/vouchers/:id", h.HandleGetVoucher)

	w := doJSON(t, router, http.MethodGet, "/vouchers/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Tote bag", decode[domain.Voucher](t, w).Title)

	w = doJSON(t, router, http.MethodGet, "/vouchers/2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodGet, "/vouchers/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleUpdateVoucher_NotOwner(t *testing.T) {
	actor := domain.User{ID: 9, Role: domain.RoleBusiness, Status: domain.UserStatusActive}
	users := &mockUserService{}
	users.On("GetUser", mock.Anything, uint(9)).Return(actor, nil)
	svc := &mockVoucherService{}
	svc.On("UpdateVoucher", mock.Anything, actor, uint(5), mock.Anything).Return(domain.Voucher{}, service.ErrNotVoucherOwner)
	h := NewVoucherHandler(svc, users)

	router := gin.New()
	router.PUT("/business/vouchers/:id", asUser(9, domain.RoleBusiness), h.HandleUpdateVoucher)

	w := doJSON(t, router, http.MethodPut, "/business/vouchers/5", map[string]int{"quantity": 10})

	assert.Equal(t, http.StatusForbidden, w.Code)
	svc.AssertExpectations(t)
}

func TestHandleCreateVoucher_LockedAccount(t *testing.T) {
	users := &mockUserService{}
	users.On("GetUser", mock.Anything, uint(9)).Return(domain.User{ID: 9, Role: domain.RoleBusiness, Status: domain.UserStatusLocked}, nil)
	svc := &mockVoucherService{}
	h := NewVoucherHandler(svc, users)

	router := gin.New()
	router.POST("/business/vouchers", asUser(9, domain.RoleBusiness), h.HandleCreateVoucher)

	w := doJSON(t, router, http.MethodPost, "/business/vouchers", map[string]interface{}{"title": "Cup", "pointsRequired": 10, "quantity": 1})

	assert.Equal(t, http.StatusForbidden, w.Code)
	svc.AssertNotCalled(t, "CreateVoucher", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleLogin(t *testing.T) {
	apiConf := &config.APIConfig{JWTSigningKey: "secret", JWTTTL: time.Hour}
	user := domain.User{ID: 4, Email: "ana@example.com", Role: domain.RoleCitizen}

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "ok", wantStatus: http.StatusOK},
		{name: "wrong password", err: service.ErrWrongPassword, wantStatus: http.StatusUnauthorized},
		{name: "role mismatch", err: service.ErrRoleMismatch, wantStatus: http.StatusForbidden},
		{name: "locked", err: service.ErrAccountLocked, wantStatus: http.StatusForbidden},
		{name: "database down", err: errBoom, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAuthService{}
			svc.On("Login", mock.Anything, "ana@example.com", "secret123", domain.RoleCitizen).Return(user, tt.err)
			h := NewAuthHandler(apiConf, svc)

			router := gin.New()
			router.POST("/auth/login", h.HandleLogin)

			w := doJSON(t, router, http.MethodPost, "/auth/login", map[string]string{
				"email": "ana@example.com", "password": "secret123", "role": "citizen",
			})

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				got := decode[response.LoginResponse](t, w)
				assert.Equal(t, uint(4), got.User.ID)

				claims, err := jwthelper.ParseToken([]byte("secret"), got.Token)
				require.NoError(t, err)
				assert.Equal(t, uint(4), claims.UserID)
				assert.Equal(t, "citizen", claims.Role)
			}
		})
	}
}

func TestHandleRegister(t *testing.T) {
	apiConf := &config.APIConfig{JWTSigningKey: "secret", JWTTTL: time.Hour}

	t.Run("business profile is passed through", func(t *testing.T) {
		svc := &mockAuthService{}
		svc.On("Register", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
			return u.Email == "shop@example.com" && u.Password == "secret123"
		}), &domain.Business{CompanyName: "Shop", TaxCode: "TX-1"}).
			Return(domain.User{ID: 8, Role: domain.RoleBusiness}, nil)
		h := NewAuthHandler(apiConf, svc)

		router := gin.New()
		router.POST("/auth/register", h.HandleRegister)

		w := doJSON(t, router, http.MethodPost, "/auth/register", map[string]string{
			"name": "Shop", "email": "shop@example.com", "password": "secret123", "confirmPassword": "secret123",
			"role": "business", "companyName": "Shop", "taxCode": "TX-1",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("email taken", func(t *testing.T) {
		svc := &mockAuthService{}
		svc.On("Register", mock.Anything, mock.Anything, (*domain.Business)(nil)).Return(domain.User{}, service.ErrUserEmailExists)
		h := NewAuthHandler(apiConf, svc)

		router := gin.New()
		router.POST("/auth/register", h.HandleRegister)

		w := doJSON(t, router, http.MethodPost, "/auth/register", map[string]string{
			"name": "Ana", "email": "ana@example.com", "password": "secret123", "confirmPassword": "secret123",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("weak password never reaches the service", func(t *testing.T) {
		svc := &mockAuthService{}
		h := NewAuthHandler(apiConf, svc)

		router := gin.New()
		router.POST("/auth/register", h.HandleRegister)

		w := doJSON(t, router, http.MethodPost, "/auth/register", map[string]string{
			"name": "Ana", "email": "ana@example.com", "password": "short", "confirmPassword": "short",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decode[response.Err](t, w).Message, "at least 8 characters")
		svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHandleForgotPassword_AlwaysSucceeds(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("ForgotPassword", mock.Anything, "nobody@example.com").Return(service.PasswordReset{}, nil)
	h := NewAuthHandler(&config.APIConfig{}, svc)

	router := gin.New()
	router.POST("/auth/forgot-password", h.HandleForgotPassword)

	w := doJSON(t, router, http.MethodPost, "/auth/forgot-password", map[string]string{"email": "nobody@example.com"})

	assert.Equal(t, http.StatusOK, w.Code)
	got := decode[response.ForgotPasswordResponse](t, w)
	assert.Equal(t, forgotPasswordMessage, got.Message)
	assert.Empty(t, got.ResetToken)
}

func TestHandleResetPassword_InvalidToken(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("ResetPassword", mock.Anything, "stale", "newpass123").Return(domain.User{}, service.ErrInvalidResetToken)
	h := NewAuthHandler(&config.APIConfig{}, svc)

	router := gin.New()
	router.POST("/auth/reset-password", h.HandleResetPassword)

	w := doJSON(t, router, http.MethodPost, "/auth/reset-password", map[string]string{"token": "stale", "password": "newpass123"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleChangePassword_WrongCurrent(t *testing.T) {
	svc := &mockUserService{}
	svc.On("ChangePassword", mock.Anything, uint(3), "oldpass123", "newpass123").Return(service.ErrInvalidPassword)
	h := NewUserHandler(svc)

	router := gin.New()
	router.POST("/users/me/change-password", asUser(3, domain.RoleCitizen), h.HandleChangePassword)

	w := doJSON(t, router, http.MethodPost, "/users/me/change-password", map[string]string{
		"currentPassword": "oldpass123", "newPassword": "newpass123",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleGetMe(t *testing.T) {
	svc := &mockUserService{}
	svc.On("GetUser", mock.Anything, uint(3)).Return(domain.User{ID: 3, Name: "Ana", Points: 120, Status: domain.UserStatusActive}, nil)
	svc.On("GetUser", mock.Anything, uint(4)).Return(domain.User{}, service.ErrUserNotFound)
	h := NewUserHandler(svc)

	router := gin.New()
	router.GET("/me3", asUser(3, domain.RoleCitizen), h.HandleGetMe)
	router.GET("/me4", asUser(4, domain.RoleCitizen), h.HandleGetMe)
	router.GET("/anon", h.HandleGetMe)

	w := doJSON(t, router, http.MethodGet, "/me3", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 120, decode[domain.User](t, w).Points)

	w = doJSON(t, router, http.MethodGet, "/me4", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodGet, "/anon", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleCheckIn(t *testing.T) {
	location := domain.Location{ID: 2, Name: "Green Mart", QRCode: "qr-1"}

	t.Run("first scan of the day", func(t *testing.T) {
		svc := &mockLocationService{}
		svc.On("CheckIn", mock.Anything, uint(5), "qr-1").Return(domain.CheckInResult{
			CheckIn:     domain.CheckIn{PointsEarned: 50},
			Location:    location,
			TotalPoints: 150,
		}, nil)
		h := NewLocationHandler(svc, &mockUserService{})

		router := gin.New()
		router.POST("/locations/check-in", asUser(5, domain.RoleCitizen), h.HandleCheckIn)

		w := doJSON(t, router, http.MethodPost, "/locations/check-in", map[string]string{"qrCode": "qr-1"})

		require.Equal(t, http.StatusOK, w.Code)
		got := decode[response.CheckInResponse](t, w)
		assert.Equal(t, 50, got.PointsEarned)
		assert.Equal(t, 150, got.TotalPoints)
		assert.Equal(t, "Green Mart", got.Location.Name)
	})

	t.Run("second scan the same day", func(t *testing.T) {
		svc := &mockLocationService{}
		svc.On("CheckIn", mock.Anything, uint(5), "qr-1").Return(domain.CheckInResult{Location: location}, service.ErrAlreadyCheckedIn)
		h := NewLocationHandler(svc, &mockUserService{})

		router := gin.New()
		router.POST("/locations/check-in", asUser(5, domain.RoleCitizen), h.HandleCheckIn)

		w := doJSON(t, router, http.MethodPost, "/locations/check-in", map[string]string{"qrCode": "qr-1"})

		require.Equal(t, http.StatusBadRequest, w.Code)
		got := decode[response.AlreadyCheckedInResponse](t, w)
		assert.True(t, got.AlreadyCheckedIn)
		assert.Equal(t, uint(2), got.Location.ID)
	})

	t.Run("unknown qr code", func(t *testing.T) {
		svc := &mockLocationService{}
		svc.On("CheckIn", mock.Anything, uint(5), "nope").Return(domain.CheckInResult{}, service.ErrInvalidLocationQR)
		h := NewLocationHandler(svc, &mockUserService{})

		router := gin.New()
		router.POST("/locations/check-in", asUser(5, domain.RoleCitizen), h.HandleCheckIn)

		w := doJSON(t, router, http.MethodPost, "/locations/check-in", map[string]string{"qrCode": "nope"})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleLeaderboard(t *testing.T) {
	svc := &mockCollectionService{}
	svc.On("Leaderboard", mock.Anything, domain.RangeAll).Return(domain.Leaderboard{
		ByPins: []domain.LeaderboardEntry{{UserID: 1, TotalPins: 12}},
	}, nil)
	svc.On("Leaderboard", mock.Anything, domain.LeaderboardRange("year")).Return(domain.Leaderboard{}, service.ErrInvalidRange)
	h := NewCollectionHandler(svc)

	router := gin.New()
	router.GET("/leaderboard", h.HandleLeaderboard)

	w := doJSON(t, router, http.MethodGet, "/leaderboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 12, decode[domain.Leaderboard](t, w).ByPins[0].TotalPins)

	w = doJSON(t, router, http.MethodGet, "/leaderboard?range=year", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleCreateCollection(t *testing.T) {
	svc := &mockCollectionService{}
	svc.On("Record", mock.Anything, mock.MatchedBy(func(c domain.Collection) bool {
		return c.UserID == 6 && len(c.Items) == 1 && c.Items[0].Quantity == 4
	})).Return(domain.Collection{ID: 1, UserID: 6, TotalPoints: 40}, 240, nil)
	h := NewCollectionHandler(svc)

	router := gin.New()
	router.POST("/collections", asUser(6, domain.RoleCitizen), h.HandleCreateCollection)

	w := doJSON(t, router, http.MethodPost, "/collections", map[string]interface{}{
		"items":  []map[string]interface{}{{"pinType": "AA", "quantity": 4, "points": 40}},
		"method": "manual",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 240, decode[response.CollectionResponse](t, w).TotalPoints)
	svc.AssertExpectations(t)
}

func TestHandleSubscribe(t *testing.T) {
	svc := &mockSubscriptionService{}
	svc.On("Subscribe", mock.Anything, "new@example.com").Return(domain.Subscriber{ID: 1, Email: "new@example.com"}, true, nil)
	svc.On("Subscribe", mock.Anything, "old@example.com").Return(domain.Subscriber{}, false, service.ErrAlreadySubscribed)
	h := NewSubscriptionHandler(svc, "http://localhost:3000")

	router := gin.New()
	router.POST("/subscribe", h.HandleSubscribe)

	w := doJSON(t, router, http.MethodPost, "/subscribe", map[string]string{"email": "new@example.com"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/subscribe", map[string]string{"email": "old@example.com"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, router, http.MethodPost, "/subscribe", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleConfirmSubscription(t *testing.T) {
	svc := &mockSubscriptionService{}
	svc.On("Confirm", mock.Anything, "good").Return(domain.Subscriber{Confirmed: true}, nil)
	svc.On("Confirm", mock.Anything, "stale").Return(domain.Subscriber{}, service.ErrInvalidConfirmToken)
	h := NewSubscriptionHandler(svc, "http://localhost:3000")

	router := gin.New()
	router.GET("/subscribe/confirm", h.HandleConfirmSubscription)
	router.GET("/subscribe/confirm/:token", h.HandleConfirmSubscription)

	for _, path := range []string{"/subscribe/confirm?token=good", "/subscribe/confirm/good"} {
		w := doJSON(t, router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "http://localhost:3000/?subscribed=1", w.Header().Get("Location"))
	}

	w := doJSON(t, router, http.MethodGet, "/subscribe/confirm?token=stale", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/subscribe/confirm", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleCreateRegistration_ExistingIsReturned(t *testing.T) {
	existing := domain.EventRegistration{ID: 11, EventID: 2, UserID: 5, Status: domain.RegistrationRegistered}
	svc := &mockEventService{}
	svc.On("Register", mock.Anything, uint(2), uint(5)).Return(existing, service.ErrAlreadyRegistered)
	h := NewEventHandler(svc)

	router := gin.New()
	router.POST("/registrations", asUser(5, domain.RoleCitizen), h.HandleCreateRegistration)
	router.POST("/events/:id/register", asUser(5, domain.RoleCitizen), h.HandleRegisterForEvent)

	w := doJSON(t, router, http.MethodPost, "/registrations", map[string]uint{"eventId": 2})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(11), decode[domain.EventRegistration](t, w).ID)

	w = doJSON(t, router, http.MethodPost, "/events/2/register", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleChat(t *testing.T) {
	tests := []struct {
		name       string
		reply      string
		err        error
		wantStatus int
	}{
		{name: "answered", reply: "Drop batteries at any collection point.", wantStatus: http.StatusOK},
		{name: "not configured", err: service.ErrChatNotConfigured, wantStatus: http.StatusInternalServerError},
		{name: "upstream failure", err: service.ErrChatUpstream, wantStatus: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewChatHandler(chatFunc(func(_ context.Context, message string) (string, error) {
				assert.Equal(t, "where can I recycle?", message)
				return tt.reply, tt.err
			}), nil)

			router := gin.New()
			router.POST("/chat", h.HandleChat)

			w := doJSON(t, router, http.MethodPost, "/chat", map[string]string{"message": "where can I recycle?"})

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.reply, decode[response.ChatResponse](t, w).Reply)
			}
		})
	}
}

func TestHandleUpload(t *testing.T) {
	dir := t.TempDir()
	h := NewUploadHandler(&config.UploadsConfig{Dir: dir, MaxFileSize: 1024}, "http://localhost:5000/")

	router := gin.New()
	router.POST("/uploads", h.HandleUpload)

	upload := func(name string, size int) *httptest.ResponseRecorder {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		part, err := mw.CreateFormFile("file", name)
		require.NoError(t, err)
		_, err = part.Write(bytes.Repeat([]byte("x"), size))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/uploads", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		return w
	}

	w := upload("photo.PNG", 100)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	url := decode[response.UploadResponse](t, w).URL
	assert.True(t, strings.HasPrefix(url, "http://localhost:5000/uploads/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	_, err := os.Stat(filepath.Join(dir, filepath.Base(url)))
	assert.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, upload("script.sh", 10).Code)
	assert.Equal(t, http.StatusBadRequest, upload("huge.jpg", 2048).Code)
}

func TestHandleScanPin(t *testing.T) {
	dir := t.TempDir()
	crop := filepath.Join(t.TempDir(), "pin_crop_0.jpg")
	require.NoError(t, os.WriteFile(crop, []byte("crop"), 0o600))

	var scanned string
	detect := detectFunc(func(_ context.Context, imagePath string) (detector.Result, error) {
		scanned = imagePath

		return detector.Result{
			Detections: []detector.Detection{
				{Label: "AA", Score: 0.9, Crop: crop},
				{Label: "9V", Score: 0.8, Crop: filepath.Join(dir, "missing.jpg")},
			},
			TotalPoints: 60,
		}, nil
	})

	conf := &config.UploadsConfig{Dir: dir, MaxFileSize: 1024}
	router := gin.New()
	router.POST("/scan/pin", NewScanHandler(conf, detect, "http://localhost:5000").HandleScanPin)

	scan := func(field, name string) *httptest.ResponseRecorder {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		part, err := mw.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write([]byte("jpeg"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/scan/pin", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		return w
	}

	t.Run("detections with published crops", func(t *testing.T) {
		w := scan("image", "batteries.jpg")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		assert.Equal(t, filepath.Join(dir, scanDir), filepath.Dir(scanned))
		_, err := os.Stat(scanned)
		assert.NoError(t, err)

		result := decode[detector.Result](t, w)
		require.Len(t, result.Detections, 2)
		assert.Equal(t, 60, result.TotalPoints)

		wantURL := "http://localhost:5000/uploads/tmp_crops/pin_crop_0.jpg"
		require.NotNil(t, result.Detections[0].CropURL)
		assert.Equal(t, wantURL, *result.Detections[0].CropURL)
		assert.Empty(t, result.Detections[0].Crop)
		assert.Nil(t, result.Detections[1].CropURL)
		assert.Equal(t, []string{wantURL, ""}, result.Crops)

		copied, err := os.ReadFile(filepath.Join(dir, cropDir, "pin_crop_0.jpg"))
		require.NoError(t, err)
		assert.Equal(t, "crop", string(copied))
	})

	t.Run("missing image", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, scan("file", "batteries.jpg").Code)
	})

	t.Run("detector failure", func(t *testing.T) {
		detect := detectFunc(func(context.Context, string) (detector.Result, error) {
			return detector.Result{}, detector.ErrFailed
		})
		router := gin.New()
		router.POST("/scan/pin", NewScanHandler(conf, detect, "").HandleScanPin)

		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		part, err := mw.CreateFormFile("image", "batteries.png")
		require.NoError(t, err)
		_, _ = part.Write([]byte("png"))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/scan/pin", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
