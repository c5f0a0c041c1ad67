package httpapi

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokomonggo/server/internal/common"
	"github.com/tokomonggo/server/internal/dbx"
	"github.com/tokomonggo/server/internal/logging"
	"github.com/tokomonggo/server/internal/server/auth"
	"github.com/tokomonggo/server/internal/server/config"
	"github.com/tokomonggo/server/internal/server/models"
	accountsrepo "github.com/tokomonggo/server/internal/server/repositories/accounts"
	listingsrepo "github.com/tokomonggo/server/internal/server/repositories/listings"
	profilesrepo "github.com/tokomonggo/server/internal/server/repositories/profiles"
	refreshtokensrepo "github.com/tokomonggo/server/internal/server/repositories/refreshtokens"
	"github.com/tokomonggo/server/internal/server/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- fakes ---

type fakeAccountsRepo struct {
	createOut  *models.Account
	createErr  error
	byEmailOut *models.Account
	byEmailErr error
	byIDOut    *models.Account
	byIDErr    error
}

func (f *fakeAccountsRepo) Create(ctx context.Context, a *models.Account) (*models.Account, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	out := *a
	out.ID = "acc-1"
	return &out, nil
}

func (f *fakeAccountsRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.byEmailOut, nil
}

func (f *fakeAccountsRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}

type fakeProfilesRepo struct {
	getOut      *models.Profile
	getErr      error
	insertOut   *models.Profile
	insertErr   error
	updateOut   *models.Profile
	updateErr   error
	displayName string
	displayErr  error
}

func (f *fakeProfilesRepo) GetByAuthID(ctx context.Context, authID string) (*models.Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeProfilesRepo) Insert(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	if f.insertOut != nil {
		return f.insertOut, nil
	}
	out := *p
	out.ID = "prof-1"
	return &out, nil
}

func (f *fakeProfilesRepo) Update(ctx context.Context, authID, name, location, avatar string) (*models.Profile, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateOut, nil
}

func (f *fakeProfilesRepo) DisplayName(ctx context.Context, ownerID string) (string, error) {
	if f.displayErr != nil {
		return "", f.displayErr
	}
	return f.displayName, nil
}

type fakeListingsRepo struct {
	createErr    error
	getOut       *models.Listing
	getErr       error
	searchOut    []*models.Listing
	searchErr    error
	lastCriteria listingsrepo.SearchCriteria
}

func (f *fakeListingsRepo) Create(ctx context.Context, l *models.Listing) (*models.Listing, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *l
	out.ID = "lst-1"
	return &out, nil
}

func (f *fakeListingsRepo) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeListingsRepo) Search(ctx context.Context, criteria listingsrepo.SearchCriteria) ([]*models.Listing, error) {
	f.lastCriteria = criteria
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchOut, nil
}

type fakeRefreshRepo struct {
	findOut   *models.RefreshToken
	findErr   error
	delErr    error
	createErr error
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	return f.createErr
}

func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	return f.delErr
}

type fakeRepoManager struct {
	a *fakeAccountsRepo
	p *fakeProfilesRepo
	l *fakeListingsRepo
	r *fakeRefreshRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error           { return nil }
func (m *fakeRepoManager) Accounts(db dbx.DBTX) accountsrepo.Repository           { return m.a }
func (m *fakeRepoManager) Profiles(db dbx.DBTX) profilesrepo.Repository           { return m.p }
func (m *fakeRepoManager) Listings(db dbx.DBTX) listingsrepo.Repository           { return m.l }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository { return m.r }

// --- helpers ---

func testConfig() *config.Config {
	return &config.Config{
		EndpointAddr:                 ":0",
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
		S3ListingsBucket:             "listings-images",
		S3AvatarsBucket:              "avatars",
		PublicStorageBaseURL:         "http://127.0.0.1:9000",
	}
}

func newTestServer(t *testing.T, rm *fakeRepoManager) (*Server, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := testConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))

	return NewServer(cfg, logger,
		services.NewUserService(db, rm, cfg),
		services.NewProfileService(db, rm),
		services.NewListingService(db, rm),
		services.NewStorageService(cfg),
	), mock
}

func bearerFor(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.GenerateToken(userID, []byte("k"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return "Bearer " + token
}

func doJSON(t *testing.T, router *gin.Engine, method, path, authHeader string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func validCreateBody() map[string]any {
	return map[string]any{
		"title":             "iPhone 13 mulus",
		"description":       "Jarang dipakai, fullset",
		"price":             5500000,
		"condition":         "Bekas",
		"category_main":     "Elektronik",
		"category_sub":      "Handphone & Tablet",
		"location_province": "DKI Jakarta",
		"location_regency":  "Jakarta Selatan",
		"images":            []string{"u1/img1.jpg"},
	}
}

// --- tests ---

func TestSearchListings_ParsesQueryParams(t *testing.T) {
	repo := &fakeListingsRepo{searchOut: []*models.Listing{{ID: "l1"}}}
	srv, _ := newTestServer(t, &fakeRepoManager{l: repo})
	router := srv.Router()

	w := doJSON(t, router, http.MethodGet,
		"/api/products?q=iphone&category=Elektronik&location=DKI+Jakarta&regency=Jakarta+Selatan&latitude=-6.2&longitude=106.8&radius=5",
		"", nil)

	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "iphone", repo.lastCriteria.Text)
	assert.Equal(t, "Elektronik", repo.lastCriteria.Category)
	assert.Equal(t, "DKI Jakarta", repo.lastCriteria.Province)
	assert.Equal(t, "Jakarta Selatan", repo.lastCriteria.Regency)
	require.NotNil(t, repo.lastCriteria.Latitude)
	require.NotNil(t, repo.lastCriteria.RadiusKm)
	assert.Equal(t, -6.2, *repo.lastCriteria.Latitude)
	assert.Equal(t, 5.0, *repo.lastCriteria.RadiusKm)
}

func TestSearchListings_PartialGeoIgnored(t *testing.T) {
	repo := &fakeListingsRepo{searchOut: []*models.Listing{}}
	srv, _ := newTestServer(t, &fakeRepoManager{l: repo})

	w := doJSON(t, srv.Router(), http.MethodGet, "/api/products?latitude=-6.2", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, repo.lastCriteria.Latitude)
	assert.Nil(t, repo.lastCriteria.RadiusKm)
}

func TestSearchListings_EmptyResultIsJSONArray(t *testing.T) {
	srv, _ := newTestServer(t, &fakeRepoManager{l: &fakeListingsRepo{}})

	w := doJSON(t, srv.Router(), http.MethodGet, "/api/products", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestSearchListings_RepoError500(t *testing.T) {
	srv, _ := newTestServer(t, &fakeRepoManager{l: &fakeListingsRepo{searchErr: sql.ErrConnDone}})

	w := doJSON(t, srv.Router(), http.MethodGet, "/api/products", "", nil)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestCreateListing_RequiresAuth(t *testing.T) {
	srv, _ := newTestServer(t, &fakeRepoManager{l: &fakeListingsRepo{}})
	router := srv.Router()

	w := doJSON(t, router, http.MethodPost, "/api/products", "", validCreateBody())
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/products", "Bearer garbage", validCreateBody())
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateListing_Success(t *testing.T) {
	srv, _ := newTestServer(t, &fakeRepoManager{l: &fakeListingsRepo{}})

	w := doJSON(t, srv.Router(), http.MethodPost, "/api/products", bearerFor(t, "u1"), validCreateBody())

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Message string         `json:"message"`
		Data    models.Listing `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Product created successfully", resp.Message)
	assert.Equal(t, "u1", resp.Data.UserID)
	assert.NotEmpty(t, resp.Data.ID)
}

func TestCreateListing_ValidationError400(t *testing.T) {
	srv, _ := newTestServer(t, &fakeRepoManager{l: &fakeListingsRepo{}})

	body := validCreateBody()
	body["condition"] = "Rusak Total"
	w := doJSON(t, srv.Router(), http.MethodPost, "/api/products", bearerFor(t, "u1"), body)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "condition")
}

func TestGetListing_WithSellerName(t *testing.T) {
	rm := &fakeRepoManager{
		l: &fakeListingsRepo{getOut: &models.Listing{ID: "l1", UserID: "u1", Title: "Sepeda"}},
		p: &fakeProfilesRepo{displayName: "Alice"},
	}
	srv, _ := newTestServer(t, rm)

	w := doJSON(t, srv.Router(), http.MethodGet, "/api/products/l1", "", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var detail models.ListingDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "Alice", detail.SellerName)
	assert.Equal(t, "Sepeda", detail.Title)
}

func TestGetListing_NotFound(t *testing.T) {
	rm := &fakeRepoManager{
		l: &fakeListingsRepo{getErr: common.ErrorNotFound},
		p: &fakeProfilesRepo{},
	}
	srv, _ := newTestServer(t, rm)

	w := doJSON(t, srv.Router(), http.MethodGet, "/api/products/missing", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegister_Created(t *testing.T) {
	srv, mock := newTestServer(t, &fakeRepoManager{
		a: &fakeAccountsRepo{},
		p: &fakeProfilesRepo{},
		r: &fakeRefreshRepo{},
	})
	mock.ExpectBegin()
	mock.ExpectCommit()

	w := doJSON(t, srv.Router(), http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":    "alice@example.com",
		"password": "Str0ngPass!",
		"name":     "Alice",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Account created successfully")
}

func TestRegister_Duplicate409(t *testing.T) {
	srv, mock := newTestServer(t, &fakeRepoManager{
		a: &fakeAccountsRepo{createErr: common.ErrorAlreadyExists},
		p: &fakeProfilesRepo{},
		r: &fakeRefreshRepo{},
	})
	mock.ExpectBegin()
	mock.ExpectRollback()

	w := doJSON(t, srv.Router(), http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":    "dup@example.com",
		"password": "Str0ngPass!",
	})

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin_Flows(t *testing.T) {
	hash, err := auth.HashPassword("Str0ngPass!")
	require.NoError(t, err)

	srv, _ := newTestServer(t, &fakeRepoManager{
		a: &fakeAccountsRepo{byEmailOut: &models.Account{ID: "u1", PasswordHash: hash}},
		r: &fakeRefreshRepo{},
	})
	router := srv.Router()

	w := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "u@x.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "u@x.com",
		"password": "Str0ngPass!",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var pair tokenPairResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestRefresh_UnknownToken401(t *testing.T) {
	srv, _ := newTestServer(t, &fakeRepoManager{
		r: &fakeRefreshRepo{findErr: common.ErrorNotFound},
	})

	w := doJSON(t, srv.Router(), http.MethodPost, "/api/auth/refresh", "", map[string]any{
		"refresh_token": "nope",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfile_GetAndUpdate(t *testing.T) {
	existing := &models.Profile{ID: "p1", AuthID: "u1", Name: "Alice"}
	updated := &models.Profile{ID: "p1", AuthID: "u1", Name: "Alice B"}
	srv, _ := newTestServer(t, &fakeRepoManager{
		a: &fakeAccountsRepo{},
		p: &fakeProfilesRepo{getOut: existing, updateOut: updated},
	})
	router := srv.Router()

	w := doJSON(t, router, http.MethodGet, "/api/profile", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/profile", bearerFor(t, "u1"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Alice")

	w = doJSON(t, router, http.MethodPut, "/api/profile", bearerFor(t, "u1"), map[string]any{
		"name": "Alice B",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Alice B")
}

func TestUploads_RequiresAuthAndValidKind(t *testing.T) {
	srv, _ := newTestServer(t, &fakeRepoManager{})
	router := srv.Router()

	w := doJSON(t, router, http.MethodPost, "/api/uploads", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/uploads?kind=bogus", bearerFor(t, "u1"), nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
