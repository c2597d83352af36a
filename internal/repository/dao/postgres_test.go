package dao

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ecell/portal-api/internal/db"
)

// PostgresSuite runs the registration rules against a real PostgreSQL
// server started with Docker. It is skipped when Docker is not reachable.
type PostgresSuite struct {
	suite.Suite

	pool     *dockertest.Pool
	resource *dockertest.Resource
	db       *gorm.DB
}

func TestPostgresSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping PostgreSQL integration tests in short mode")
	}

	suite.Run(t, new(PostgresSuite))
}

func (s *PostgresSuite) SetupSuite() {
	pool, err := dockertest.NewPool("")
	if err != nil {
		s.T().Skipf("docker is not available: %v", err)
	}
	if err = pool.Client.Ping(); err != nil {
		s.T().Skipf("docker is not reachable: %v", err)
	}
	pool.MaxWait = 2 * time.Minute

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=ecell",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=ecell_test",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	s.Require().NoError(err)
	_ = resource.Expire(180)

	s.pool = pool
	s.resource = resource

	url := fmt.Sprintf("postgres://ecell:secret@%s/ecell_test?sslmode=disable", resource.GetHostPort("5432/tcp"))
	gormConf := &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	}

	err = pool.Retry(func() error {
		gormDB, err := db.OpenPostgresWithURL(url, gormConf)
		if err != nil {
			return err
		}

		sqlDB, err := gormDB.DB()
		if err != nil {
			return err
		}
		if err = sqlDB.Ping(); err != nil {
			_ = sqlDB.Close()
			return err
		}

		s.db = gormDB

		return nil
	})
	s.Require().NoError(err)
	s.Require().NoError(InitTables(s.db))
}

func (s *PostgresSuite) TearDownSuite() {
	if s.db != nil {
		_ = db.Close(s.db)
	}
	if s.pool != nil && s.resource != nil {
		_ = s.pool.Purge(s.resource)
	}
}

func (s *PostgresSuite) SetupTest() {
	s.Require().NoError(s.db.Exec("TRUNCATE event_registrations, events, users RESTART IDENTITY CASCADE").Error)
}

func (s *PostgresSuite) TestConcurrentCapacity() {
	t := s.T()
	ctx := context.Background()
	users := NewUserDAO(s.db)
	events := NewEventDAO(s.db)
	registrations := NewRegistrationDAO(s.db)

	event := seedEvent(t, events, 5)
	members := seedUsers(t, users, 50)

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
	)
	for _, u := range members {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()

			err := registrations.Register(ctx, event.ID, userID)
			if err == nil {
				succeeded.Add(1)
				return
			}
			s.ErrorIs(err, ErrEventFull)
		}(u.ID)
	}
	wg.Wait()

	s.Equal(int32(5), succeeded.Load())

	loaded, err := events.FindByID(ctx, event.ID)
	s.Require().NoError(err)
	s.Len(loaded.RegisteredUsers, 5)
	s.Equal(5, loaded.RegisteredCount)
}

func (s *PostgresSuite) TestConcurrentDuplicates() {
	t := s.T()
	ctx := context.Background()
	users := NewUserDAO(s.db)
	events := NewEventDAO(s.db)
	registrations := NewRegistrationDAO(s.db)

	event := seedEvent(t, events, 50)
	member := seedUser(t, users, 1)

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			err := registrations.Register(ctx, event.ID, member.ID)
			if err == nil {
				succeeded.Add(1)
				return
			}
			s.ErrorIs(err, ErrAlreadyRegistered)
		}()
	}
	wg.Wait()

	s.Equal(int32(1), succeeded.Load())

	loaded, err := events.FindByID(ctx, event.ID)
	s.Require().NoError(err)
	s.Equal([]uint{member.ID}, loaded.RegisteredUsers)
	s.Equal(1, loaded.RegisteredCount)
}

func (s *PostgresSuite) TestUniqueViolations() {
	t := s.T()
	ctx := context.Background()
	users := NewUserDAO(s.db)

	first := seedUser(t, users, 1)

	dup := first
	dup.ID = 0
	dup.RollNumber = "R9999"
	_, err := users.Insert(ctx, dup)
	s.ErrorIs(err, ErrUserEmailExists)

	dup = first
	dup.ID = 0
	dup.Email = "other@example.com"
	_, err = users.Insert(ctx, dup)
	s.ErrorIs(err, ErrUserRollNumberExists)
}
