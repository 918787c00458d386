package storage

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockRepo(t *testing.T) (*PostRepo, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	dialector := mysql.New(mysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewPostRepo(db), mock
}

func TestFindUser(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"id", "nickname", "email"}).
		AddRow(1, "alice", "alice@example.com")
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	user, err := repo.FindUser(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.Nickname)
}

func TestFindUserMissing(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	user, err := repo.FindUser(context.Background(), 999)
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestFindCategoryMissing(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	category, err := repo.FindCategory(context.Background(), 999)
	assert.NoError(t, err)
	assert.Nil(t, category)
}

func TestFindByIDMissing(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	post, err := repo.FindByID(context.Background(), 42)
	assert.NoError(t, err)
	assert.Nil(t, post)
}

func TestFindTagsSkipsQueryForNoIDs(t *testing.T) {
	repo, _ := newMockRepo(t)

	tags, err := repo.FindTags(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, tags)
}

func TestPaginateEmptyStore(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT count").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	posts, total, err := repo.Paginate(context.Background(), 1, 18)
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Zero(t, total)
}
