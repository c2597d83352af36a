package dao

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ecell/portal-api/internal/db"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gormDB, err := db.OpenSQLite(db.SQLiteMemoryDSN(uuid.NewString()), &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gormDB) })

	require.NoError(t, InitTables(gormDB))

	return gormDB
}

func seedUser(t *testing.T, d *UserDAO, n int) User {
	t.Helper()

	user, err := d.Insert(context.Background(), User{
		Email:      fmt.Sprintf("member%d@example.com", n),
		RollNumber: fmt.Sprintf("R%04d", n),
		Password:   "hash",
		Name:       fmt.Sprintf("Member %d", n),
		Branch:     "CSE",
		Year:       2,
		Phone:      "9999999999",
		Role:       "member",
	})
	require.NoError(t, err)

	return user
}

func seedUsers(t *testing.T, d *UserDAO, count int) []User {
	t.Helper()

	users := make([]User, count)
	for i := range users {
		users[i] = seedUser(t, d, i+1)
	}

	return users
}

func seedEvent(t *testing.T, d *EventDAO, capacity int) Event {
	t.Helper()

	event, err := d.Insert(context.Background(), Event{
		Title:       "Startup Pitch",
		Description: "Pitch to investors",
		Date:        time.Date(2030, 1, 15, 0, 0, 0, 0, time.UTC),
		TimeSlot:    "10:00 AM - 4:00 PM",
		Venue:       "Auditorium",
		Type:        "competition",
		Capacity:    capacity,
		Status:      "upcoming",
	})
	require.NoError(t, err)

	return event
}
