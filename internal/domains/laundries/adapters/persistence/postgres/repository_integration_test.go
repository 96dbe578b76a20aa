//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/laundromart/admin-api/internal/domains/laundries/domain"
	"github.com/laundromart/admin-api/internal/domains/laundries/ports"
	"github.com/laundromart/admin-api/internal/platform/migrations"
	"github.com/laundromart/admin-api/internal/shared/pagination"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("admin_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	// Run migrations
	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func seedLaundry(t *testing.T, db *gorm.DB, id, ownerID string, active bool) {
	t.Helper()
	record := laundryRecord{
		ID:        id,
		OwnerID:   ownerID,
		Name:      "Laundry " + id,
		Email:     id + "@example.com",
		Address:   "1 Main St",
		City:      "Springfield",
		Status:    string(domain.StatusActive),
		IsActive:  active,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, db.Create(&record).Error)
}

func seedUser(t *testing.T, db *gorm.DB, id, name, email string) {
	t.Helper()
	err := db.Exec(
		"INSERT INTO users (id, email, name, role, is_active, created_at, updated_at) VALUES (?, ?, ?, 'CUSTOMER', true, NOW(), NOW())",
		id, email, name,
	).Error
	require.NoError(t, err)
}

func TestPostgresRepository_GetByIDWithOwner(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	seedUser(t, db, "owner-1", "Olivia Owner", "olivia@example.com")
	seedLaundry(t, db, "laundry-1", "owner-1", true)

	laundry, err := repo.GetByID(ctx, "laundry-1")
	require.NoError(t, err)
	assert.Equal(t, "Laundry laundry-1", laundry.Name)
	assert.Equal(t, domain.StatusActive, laundry.Status)
	require.NotNil(t, laundry.Owner)
	assert.Equal(t, "Olivia Owner", laundry.Owner.Name)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestPostgresRepository_UpdateProfile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	seedLaundry(t, db, "laundry-1", "owner-1", true)

	name := "Renamed"
	city := "Shelbyville"
	tags := []string{"wash", "dry-clean"}
	updated, err := repo.UpdateProfile(ctx, "laundry-1", domain.ProfileUpdate{
		Name:        &name,
		City:        &city,
		ServiceTags: &tags,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "Shelbyville", updated.City)
	assert.Equal(t, []string{"wash", "dry-clean"}, updated.ServiceTags)
	// Untouched fields survive
	assert.Equal(t, "laundry-1@example.com", updated.Email)

	_, err = repo.UpdateProfile(ctx, "missing", domain.ProfileUpdate{Name: &name})
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestPostgresRepository_MarkSuspended(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	seedLaundry(t, db, "laundry-1", "owner-1", true)

	suspended, err := repo.MarkSuspended(ctx, "laundry-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuspended, suspended.Status)
	assert.False(t, suspended.IsActive)
}

func TestPostgresRepository_ListReviewsAndRatingCounts(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	seedLaundry(t, db, "laundry-1", "owner-1", true)
	seedUser(t, db, "cust-1", "Casey Customer", "casey@example.com")

	reviews := []reviewRecord{
		{ID: "r1", LaundryID: "laundry-1", CustomerID: "cust-1", Rating: 5, Comment: "great", IsVisible: true, CreatedAt: time.Now().Add(-1 * time.Hour)},
		{ID: "r2", LaundryID: "laundry-1", CustomerID: "cust-1", Rating: 5, IsVisible: true, CreatedAt: time.Now().Add(-2 * time.Hour)},
		{ID: "r3", LaundryID: "laundry-1", CustomerID: "cust-1", Rating: 2, IsVisible: true, CreatedAt: time.Now().Add(-3 * time.Hour)},
		{ID: "r4", LaundryID: "laundry-1", CustomerID: "cust-1", Rating: 1, IsVisible: false, CreatedAt: time.Now().Add(-4 * time.Hour)},
	}
	for i := range reviews {
		require.NoError(t, db.Create(&reviews[i]).Error)
	}

	listed, totalCount, err := repo.ListReviews(ctx, ports.ReviewFilter{
		LaundryID:   "laundry-1",
		VisibleOnly: true,
	}, pagination.Params{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, totalCount)
	require.Len(t, listed, 2)
	// Newest first, hidden review filtered out
	assert.Equal(t, "r1", listed[0].ID)
	assert.Equal(t, "Casey Customer", listed[0].CustomerName)

	byRating, _, err := repo.ListReviews(ctx, ports.ReviewFilter{
		LaundryID:   "laundry-1",
		Rating:      5,
		VisibleOnly: true,
	}, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, byRating, 2)

	counts, err := repo.RatingCounts(ctx, "laundry-1")
	require.NoError(t, err)
	assert.Equal(t, map[int]int64{5: 2, 2: 1}, counts)
}

func TestPostgresRepository_LeaderboardPage(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	seedLaundry(t, db, "laundry-a", "owner-1", true)
	seedLaundry(t, db, "laundry-b", "owner-2", true)
	seedLaundry(t, db, "laundry-c", "owner-3", false)
	require.NoError(t, db.Model(&laundryRecord{}).Where("id = ?", "laundry-a").Update("total_orders", 3).Error)
	require.NoError(t, db.Model(&laundryRecord{}).Where("id = ?", "laundry-b").Update("total_orders", 9).Error)
	seedUser(t, db, "cust-1", "Casey Customer", "casey@example.com")
	bReviews := []reviewRecord{
		{ID: "r1", LaundryID: "laundry-b", CustomerID: "cust-1", Rating: 5, IsVisible: true, CreatedAt: time.Now()},
		{ID: "r2", LaundryID: "laundry-b", CustomerID: "cust-1", Rating: 1, IsVisible: false, CreatedAt: time.Now()},
	}
	for i := range bReviews {
		require.NoError(t, db.Create(&bReviews[i]).Error)
	}

	seeds, totalCount, err := repo.LeaderboardPage(ctx, ports.LeaderboardQuery{
		SortBy:     "ordersMonth",
		Descending: true,
		Page:       pagination.Params{Page: 1, Limit: 10},
	})
	require.NoError(t, err)
	// Inactive laundries never rank
	assert.EqualValues(t, 2, totalCount)
	require.Len(t, seeds, 2)
	assert.Equal(t, "laundry-b", seeds[0].Laundry.ID)
	assert.Equal(t, "laundry-a", seeds[1].Laundry.ID)
	// Hidden reviews still count toward leaderboard totals
	assert.EqualValues(t, 2, seeds[0].TotalReviews)
	assert.ElementsMatch(t, []int{5, 1}, seeds[0].Ratings)
}
