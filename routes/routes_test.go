package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"go-parcel/controllers"
	"go-parcel/logger"
	"go-parcel/middleware"
	"go-parcel/mock"
	"go-parcel/models"
	"go-parcel/store"
	"go-parcel/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	gomock "go.uber.org/mock/gomock"
)

// ---- in-memory stores ----

type memParcels struct {
	mu   sync.Mutex
	docs []models.Parcel
}

func (s *memParcels) List(_ context.Context, createdBy string) ([]models.Parcel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Parcel{}
	for _, p := range s.docs {
		if createdBy == "" || p.CreatedBy == createdBy {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memParcels) Get(_ context.Context, id primitive.ObjectID) (models.Parcel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.docs {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Parcel{}, store.ErrNotFound
}

func (s *memParcels) Create(_ context.Context, p models.Parcel) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = primitive.NewObjectID()
	s.docs = append(s.docs, p)
	return p.ID, nil
}

func (s *memParcels) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.docs {
		if p.ID == id {
			s.docs = append(s.docs[:i], s.docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *memParcels) setStatus(id primitive.ObjectID, from func(string) bool, to string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.docs {
		if s.docs[i].ID == id && from(s.docs[i].PaymentStatus) {
			s.docs[i].PaymentStatus = to
			return true
		}
	}
	return false
}

func (s *memParcels) MarkPaid(_ context.Context, id primitive.ObjectID) (bool, error) {
	notPaid := func(status string) bool { return status != models.PaymentStatusPaid }
	return s.setStatus(id, notPaid, models.PaymentStatusPaid), nil
}

func (s *memParcels) RevertPaid(_ context.Context, id primitive.ObjectID) error {
	paid := func(status string) bool { return status == models.PaymentStatusPaid }
	s.setStatus(id, paid, models.PaymentStatusUnpaid)
	return nil
}

type memUsers struct {
	mu    sync.Mutex
	users map[string]models.User
}

func (s *memUsers) Create(_ context.Context, u models.User) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.Email]; ok {
		return primitive.NilObjectID, store.ErrAlreadyExists
	}
	u.ID = primitive.NewObjectID()
	s.users[u.Email] = u
	return u.ID, nil
}

type memPayments struct {
	mu      sync.Mutex
	docs    []models.Payment
	failing bool
}

func (s *memPayments) List(_ context.Context, email string) ([]models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Payment{}
	for _, p := range s.docs {
		if email == "" || p.Email == email {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PaidAt.After(out[j].PaidAt) })
	return out, nil
}

func (s *memPayments) Create(_ context.Context, p models.Payment) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failing {
		return primitive.NilObjectID, errors.New("write concern timeout")
	}
	p.ID = primitive.NewObjectID()
	s.docs = append(s.docs, p)
	return p.ID, nil
}

func (s *memPayments) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

type memTracking struct {
	mu   sync.Mutex
	logs []models.TrackingLog
}

func (s *memTracking) Create(_ context.Context, l models.TrackingLog) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l.ID = primitive.NewObjectID()
	s.logs = append(s.logs, l)
	return l.ID, nil
}

// tokenVerifier accepts the tokens it knows
type tokenVerifier map[string]models.Identity

func (v tokenVerifier) Verify(_ context.Context, token string) (models.Identity, error) {
	identity, ok := v[token]
	if !ok {
		return models.Identity{}, utils.ErrInvalidToken
	}
	return identity, nil
}

// ---- harness ----

type testAPI struct {
	handler  http.Handler
	parcels  *memParcels
	users    *memUsers
	payments *memPayments
	tracking *memTracking
}

func newTestAPI(t *testing.T, gateway utils.PaymentGateway) *testAPI {
	t.Helper()
	api := &testAPI{
		parcels:  &memParcels{},
		users:    &memUsers{users: map[string]models.User{}},
		payments: &memPayments{},
		tracking: &memTracking{},
	}
	verifier := tokenVerifier{
		"ann-token": {UID: "uid-ann", Email: "ann@example.com"},
		"bob-token": {UID: "uid-bob", Email: "bob@example.com"},
	}

	api.handler = NewHandler(Controllers{
		Users:    controllers.NewUserController(api.users, time.Second),
		Parcels:  controllers.NewParcelController(api.parcels, time.Second),
		Tracking: controllers.NewTrackingController(api.tracking, time.Second),
		Payments: controllers.NewPaymentController(api.parcels, api.payments, utils.NopNotifier{}, time.Second),
		Intents:  controllers.NewPaymentIntentController(gateway),
	}, middleware.NewAuth(verifier), logger.Nop())
	return api
}

func (api *testAPI) do(method, target, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	api.handler.ServeHTTP(rr, req)
	return rr
}

func (api *testAPI) createParcel(t *testing.T, body string) string {
	t.Helper()
	rr := api.do(http.MethodPost, "/parcels", body, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var res models.InsertResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	return res.InsertedID.Hex()
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

// ---- properties ----

func TestLiveness(t *testing.T) {
	api := newTestAPI(t, nil)

	rr := api.do(http.MethodGet, "/", "", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Server is running 🚀", rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get(middleware.TraceIDHeader))
}

func TestParcelRoundTrip(t *testing.T) {
	api := newTestAPI(t, nil)
	payload := `{"created_by":"ann@example.com","title":"Books","weight":2.5,"receiver":{"name":"Bob","floor":3},"tags":["fragile"]}`

	id := api.createParcel(t, payload)
	rr := api.do(http.MethodGet, "/parcels/"+id, "", "")
	require.Equal(t, http.StatusOK, rr.Code)

	got := decode[map[string]any](t, rr)
	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(payload), &sent))
	for k, v := range sent {
		assert.Equal(t, v, got[k], k)
	}
	assert.Equal(t, id, got["_id"])
	assert.Equal(t, "unpaid", got["payment_status"])
	assert.NotEmpty(t, got["createdAt"])
}

func TestParcelListFilterAndOrder(t *testing.T) {
	api := newTestAPI(t, nil)
	api.createParcel(t, `{"created_by":"ann@example.com","createdAt":"2025-07-01T00:00:00Z","n":1}`)
	api.createParcel(t, `{"created_by":"bob@example.com","createdAt":"2025-07-05T00:00:00Z","n":2}`)
	api.createParcel(t, `{"created_by":"ann@example.com","createdAt":"2025-07-03T00:00:00Z","n":3}`)
	api.createParcel(t, `{"created_by":"ann@example.com","createdAt":"2025-07-02T00:00:00Z","n":4}`)

	rr := api.do(http.MethodGet, "/parcels?email=ann@example.com", "", "ann-token")
	require.Equal(t, http.StatusOK, rr.Code)

	parcels := decode[[]map[string]any](t, rr)
	require.Len(t, parcels, 3)
	var order []float64
	for _, p := range parcels {
		assert.Equal(t, "ann@example.com", p["created_by"])
		order = append(order, p["n"].(float64))
	}
	assert.Equal(t, []float64{3, 4, 1}, order)

	all := decode[[]map[string]any](t, api.do(http.MethodGet, "/parcels", "", "ann-token"))
	assert.Len(t, all, 4)
}

func TestParcelListRequiresAuth(t *testing.T) {
	api := newTestAPI(t, nil)

	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/parcels", "", "").Code)
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodGet, "/parcels", "", "forged").Code)
}

func TestDeleteThenGet(t *testing.T) {
	api := newTestAPI(t, nil)
	id := api.createParcel(t, `{"created_by":"ann@example.com"}`)

	rr := api.do(http.MethodDelete, "/parcels/"+id, "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"acknowledged":true,"deletedCount":1}`, rr.Body.String())

	rr = api.do(http.MethodGet, "/parcels/"+id, "", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"message":"Parcel not found"}`, rr.Body.String())
}

func TestMalformedIDs(t *testing.T) {
	api := newTestAPI(t, nil)

	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/parcels/123", "", "").Code)
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodDelete, "/parcels/123", "", "").Code)
	assert.Equal(t, http.StatusBadRequest,
		api.do(http.MethodPost, "/tracking", `{"tracking_id":"T","parcel_id":"123","status":"x"}`, "").Code)
	assert.Equal(t, http.StatusBadRequest,
		api.do(http.MethodPost, "/payments", `{"parcelId":"123","email":"ann@example.com","amount":1}`, "").Code)

	assert.Empty(t, api.tracking.logs)
	assert.Zero(t, api.payments.count())
}

func TestPaymentFlow(t *testing.T) {
	api := newTestAPI(t, nil)
	id := api.createParcel(t, `{"created_by":"ann@example.com"}`)
	body := `{"parcelId":"` + id + `","email":"ann@example.com","amount":12.5,"paymentMethod":"pm_card","transactionId":"pi_1"}`

	rr := api.do(http.MethodPost, "/payments", body, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	parcel := decode[map[string]any](t, api.do(http.MethodGet, "/parcels/"+id, "", ""))
	assert.Equal(t, "paid", parcel["payment_status"])
	require.Equal(t, 1, api.payments.count())
	assert.Equal(t, id, api.payments.docs[0].ParcelID)

	// paying twice is rejected and records nothing
	rr = api.do(http.MethodPost, "/payments", body, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, 1, api.payments.count())

	// unknown parcel
	rr = api.do(http.MethodPost, "/payments", strings.Replace(body, id, primitive.NewObjectID().Hex(), 1), "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, 1, api.payments.count())

	history := decode[[]models.Payment](t, api.do(http.MethodGet, "/payments?email=ann@example.com", "", "ann-token"))
	require.Len(t, history, 1)
	assert.Equal(t, "pi_1", history[0].TransactionID)
}

func TestPaymentInsertFailureRevertsParcel(t *testing.T) {
	api := newTestAPI(t, nil)
	api.payments.failing = true
	id := api.createParcel(t, `{"created_by":"ann@example.com"}`)

	rr := api.do(http.MethodPost, "/payments", `{"parcelId":"`+id+`","email":"ann@example.com","amount":1}`, "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	parcel := decode[map[string]any](t, api.do(http.MethodGet, "/parcels/"+id, "", ""))
	assert.Equal(t, "unpaid", parcel["payment_status"])
}

func TestPaymentHistoryOwnership(t *testing.T) {
	api := newTestAPI(t, nil)
	id := api.createParcel(t, `{"created_by":"ann@example.com"}`)
	api.do(http.MethodPost, "/payments", `{"parcelId":"`+id+`","email":"ann@example.com","amount":1}`, "")

	rr := api.do(http.MethodGet, "/payments?email=ann@example.com", "", "bob-token")
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.JSONEq(t, `{"message":"forbidden access"}`, rr.Body.String())

	rr = api.do(http.MethodGet, "/payments?email=nobody@example.com", "", "bob-token")
	assert.Equal(t, http.StatusForbidden, rr.Code)

	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/payments?email=ann@example.com", "", "").Code)
}

func TestNonNumericIntentAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	// no expectations: any gateway call fails the test
	api := newTestAPI(t, mock.NewMockPaymentGateway(ctrl))

	for _, body := range []string{`{"amountInCents":"ten"}`, `{"amount":"ten"}`} {
		rr := api.do(http.MethodPost, "/create-payment-intent", body, "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"Invalid amount"}`, rr.Body.String())
	}
}

func TestUserCreatedOnce(t *testing.T) {
	api := newTestAPI(t, nil)
	body := `{"email":"ann@example.com","name":"Ann"}`

	first := api.do(http.MethodPost, "/users", body, "")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, true, decode[map[string]any](t, first)["acknowledged"])

	second := api.do(http.MethodPost, "/users", body, "")
	require.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, `{"message":"user already exists","inserted":false}`, second.Body.String())

	assert.Len(t, api.users.users, 1)
}

func TestTrackingLog(t *testing.T) {
	api := newTestAPI(t, nil)

	rr := api.do(http.MethodPost, "/tracking", `{"tracking_id":"TRK-1","status":"picked_up"}`, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, true, decode[map[string]any](t, rr)["success"])
	require.Len(t, api.tracking.logs, 1)
	assert.Equal(t, "TRK-1", api.tracking.logs[0].TrackingID)
}

func TestCORSPreflight(t *testing.T) {
	api := newTestAPI(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/payments", nil)
	req.Header.Set("Origin", "https://parcel.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	api.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}
