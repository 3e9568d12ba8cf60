package orm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/superj80820/url-shortener/domain"
	ormKit "github.com/superj80820/url-shortener/kit/orm"
	testingPostgresKit "github.com/superj80820/url-shortener/kit/testing/postgres/container"
)

func testLinkRepo(t *testing.T, linkRepo domain.LinkRepo) {
	ctx := context.Background()

	assert.Nil(t, linkRepo.Ping(ctx))

	exists, err := linkRepo.Exists(ctx, "aB3xY9")
	assert.Nil(t, err)
	assert.False(t, exists)

	_, err = linkRepo.Get(ctx, "aB3xY9")
	assert.ErrorIs(t, err, domain.ErrNoData)

	link, err := linkRepo.Create(ctx, "aB3xY9", "https://example.com/a")
	assert.Nil(t, err)
	assert.NotZero(t, link.ID)
	assert.Equal(t, "aB3xY9", link.Code)
	assert.Equal(t, "https://example.com/a", link.Target)
	assert.False(t, link.CreatedAt.IsZero())

	exists, err = linkRepo.Exists(ctx, "aB3xY9")
	assert.Nil(t, err)
	assert.True(t, exists)

	got, err := linkRepo.Get(ctx, "aB3xY9")
	assert.Nil(t, err)
	assert.Equal(t, link.ID, got.ID)
	assert.Equal(t, link.Target, got.Target)

	_, err = linkRepo.Create(ctx, "aB3xY9", "https://example.com/b")
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// same target under a different code is allowed
	other, err := linkRepo.Create(ctx, "Zz9Zz9Zz", "https://example.com/a")
	assert.Nil(t, err)
	assert.NotEqual(t, link.ID, other.ID)
}

func TestLinkRepoSQLite(t *testing.T) {
	sqliteDB, err := ormKit.CreateDB(ormKit.UseSQLite("file::memory:"), ormKit.WithMaxOpenConns(1))
	assert.Nil(t, err)
	defer sqliteDB.Close()
	assert.Nil(t, Migrate(sqliteDB))

	testLinkRepo(t, CreateLinkRepo(sqliteDB))
}

func TestLinkRepoPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skip container test in short mode")
	}
	ctx := context.Background()

	postgres, err := testingPostgresKit.CreatePostgres(ctx, "postgres.schema.sql")
	assert.Nil(t, err)
	defer postgres.Terminate(ctx)

	postgresDB, err := ormKit.CreateDB(ormKit.UsePostgres(postgres.GetURI()))
	assert.Nil(t, err)
	defer postgresDB.Close()

	testLinkRepo(t, CreateLinkRepo(postgresDB))
}
