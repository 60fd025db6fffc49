package pagination

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type row struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt time.Time
}

func seedRows(t *testing.T, n int) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	// the in-memory database lives on a single connection
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&row{}))

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		require.NoError(t, db.Create(&row{
			ID:        fmt.Sprintf("r%02d", i+1),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}).Error)
	}
	return db
}

func rowKey(r row) (time.Time, string) { return r.CreatedAt, r.ID }

func ids(items []row) []string {
	out := make([]string, len(items))
	for i, r := range items {
		out[i] = r.ID
	}
	return out
}

func TestPaginateForward(t *testing.T) {
	db := seedRows(t, 5)

	page1, err := Paginate(db.Model(&row{}), "/api/rows", 2, "", rowKey)
	require.NoError(t, err)
	assert.Equal(t, []string{"r01", "r02"}, ids(page1.Items))
	require.NotNil(t, page1.NextCursor)
	assert.Nil(t, page1.PrevCursor)
	assert.Contains(t, *page1.NextPageURL, "/api/rows?cursor=")

	page2, err := Paginate(db.Model(&row{}), "/api/rows", 2, *page1.NextCursor, rowKey)
	require.NoError(t, err)
	assert.Equal(t, []string{"r03", "r04"}, ids(page2.Items))
	require.NotNil(t, page2.NextCursor)
	require.NotNil(t, page2.PrevCursor)

	page3, err := Paginate(db.Model(&row{}), "/api/rows", 2, *page2.NextCursor, rowKey)
	require.NoError(t, err)
	assert.Equal(t, []string{"r05"}, ids(page3.Items))
	assert.Nil(t, page3.NextCursor)
}

func TestPaginateBackward(t *testing.T) {
	db := seedRows(t, 5)

	page1, err := Paginate(db.Model(&row{}), "/api/rows", 2, "", rowKey)
	require.NoError(t, err)
	page2, err := Paginate(db.Model(&row{}), "/api/rows", 2, *page1.NextCursor, rowKey)
	require.NoError(t, err)
	require.NotNil(t, page2.PrevCursor)

	back, err := Paginate(db.Model(&row{}), "/api/rows", 2, *page2.PrevCursor, rowKey)
	require.NoError(t, err)
	assert.Equal(t, []string{"r01", "r02"}, ids(back.Items))
	assert.Nil(t, back.PrevCursor, "nothing precedes the first page")
	require.NotNil(t, back.NextCursor)
}

func TestPaginateStableUnderInsertion(t *testing.T) {
	db := seedRows(t, 4)

	page1, err := Paginate(db.Model(&row{}), "/api/rows", 2, "", rowKey)
	require.NoError(t, err)
	assert.Equal(t, []string{"r01", "r02"}, ids(page1.Items))

	// a row created before the cursor position must not shift the next page
	require.NoError(t, db.Create(&row{
		ID:        "r00",
		CreatedAt: time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC),
	}).Error)

	page2, err := Paginate(db.Model(&row{}), "/api/rows", 2, *page1.NextCursor, rowKey)
	require.NoError(t, err)
	assert.Equal(t, []string{"r03", "r04"}, ids(page2.Items))
}

func TestPaginateEmptyResult(t *testing.T) {
	db := seedRows(t, 0)

	page, err := Paginate(db.Model(&row{}), "/api/rows", 2, "", rowKey)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items, "items serializes as [] rather than null")
	assert.Nil(t, page.NextCursor)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode("not a cursor!!")
	require.Error(t, err)

	_, err = Paginate(seedRows(t, 1).Model(&row{}), "/api/rows", 2, "not a cursor!!", rowKey)
	require.Error(t, err)
}

func TestCursorRoundTrip(t *testing.T) {
	in := Cursor{CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), ID: "r42", Backward: true}
	out, err := Decode(in.Encode())
	require.NoError(t, err)
	assert.True(t, in.CreatedAt.Equal(out.CreatedAt))
	assert.Equal(t, in.ID, out.ID)
	assert.True(t, out.Backward)
}
