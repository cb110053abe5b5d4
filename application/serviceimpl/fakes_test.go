package serviceimpl

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"uptask-api/domain/models"
	"uptask-api/domain/ports"
	"uptask-api/domain/repositories"
	"uptask-api/infrastructure/postgres"
)

type recordingMailer struct {
	mu           sync.Mutex
	confirmation []ports.AuthEmail
	reset        []ports.AuthEmail
	err          error
}

func (m *recordingMailer) SendConfirmationEmail(ctx context.Context, email ports.AuthEmail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.confirmation = append(m.confirmation, email)
	return m.err
}

func (m *recordingMailer) SendPasswordResetToken(ctx context.Context, email ports.AuthEmail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset = append(m.reset, email)
	return m.err
}

type recordingEvents struct {
	mu     sync.Mutex
	events []ports.ProjectEvent
}

func (r *recordingEvents) Publish(ctx context.Context, event ports.ProjectEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingEvents) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

// collidingTokens ตอบ ErrTokenCollision ตามจำนวน collisions ก่อนส่งต่อให้ repo จริง
type collidingTokens struct {
	repositories.TokenRepository

	mu         sync.Mutex
	collisions int
	attempts   int
}

func (c *collidingTokens) Create(ctx context.Context, token *models.Token) error {
	c.mu.Lock()
	c.attempts++
	if c.collisions > 0 {
		c.collisions--
		c.mu.Unlock()
		return repositories.ErrTokenCollision
	}
	c.mu.Unlock()
	return c.TokenRepository.Create(ctx, token)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := postgres.NewDatabase(postgres.DatabaseConfig{
		Driver:     "sqlite",
		SQLitePath: fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name),
		LogLevel:   "error",
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, postgres.Migrate(db))
	return db
}
