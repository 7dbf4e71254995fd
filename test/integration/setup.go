package integration

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	handler "github.com/openvote/ballot/internal/adapters/handler/http"
	repo "github.com/openvote/ballot/internal/adapters/repository/postgres"
	"github.com/openvote/ballot/internal/adapters/session"
	"github.com/openvote/ballot/internal/core/domain"
	"github.com/openvote/ballot/internal/core/ports"
	"github.com/openvote/ballot/internal/core/services"
)

const testAdminKey = "test-admin-key"

// StubProvider stands in for Google: codes are looked up in a fixed map.
type StubProvider struct {
	Identities map[string]domain.Identity
}

func (p *StubProvider) AuthCodeURL(state string) string {
	return "https://accounts.example.com/consent?state=" + state
}

func (p *StubProvider) Authenticate(ctx context.Context, code string) (*domain.Identity, error) {
	identity, ok := p.Identities[code]
	if !ok {
		return nil, fmt.Errorf("unknown code %q", code)
	}
	return &identity, nil
}

var _ ports.IdentityProvider = (*StubProvider)(nil)

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	Store       *session.MemoryStore
	Provider    *StubProvider
	VoteRepo    ports.VoteRepository
	DBContainer testcontainers.Container
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	dbName := "testdb"
	user := "user"
	password := "password"

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		fullPath := filepath.Join(dirPath, entry.Name())
		content, err := os.ReadFile(fullPath)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		_, err = db.Exec(string(content))
		if err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()

	ctx := context.Background()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)

	err = applyMigrations(db)
	require.NoError(t, err)

	voteRepo := repo.NewVoteRepository(db)
	voteSvc := services.NewVoteService(voteRepo)
	resultSvc := services.NewResultService(voteRepo)

	store := session.NewMemoryStore()
	provider := &StubProvider{Identities: map[string]domain.Identity{}}

	authHandler := handler.NewAuthHandler(provider, store)
	voteHandler := handler.NewVoteHandler(voteSvc)
	resultHandler := handler.NewResultHandler(resultSvc)
	pageHandler := handler.NewPageHandler("../../web", store)

	router := handler.NewHandler(authHandler, voteHandler, resultHandler, pageHandler, store, testAdminKey)

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		Store:       store,
		Provider:    provider,
		VoteRepo:    voteRepo,
		DBContainer: dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	t.Helper()

	app.Server.Close()
	require.NoError(t, app.DB.Close())
	require.NoError(t, app.DBContainer.Terminate(context.Background()))
}

// loginAs establishes a session directly in the store and returns the
// cookie a browser would carry after the OAuth callback.
func (app *TestApp) loginAs(t *testing.T, identity domain.Identity) *http.Cookie {
	t.Helper()

	token := app.Store.Establish(identity)
	return &http.Cookie{Name: "ballot_session", Value: token}
}

func newIdentity() domain.Identity {
	id := uuid.NewString()
	return domain.Identity{
		GoogleID: "google-" + id,
		Email:    fmt.Sprintf("user-%s@example.com", id),
		Name:     "User " + id,
	}
}
