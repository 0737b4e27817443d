package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/clubgolfpapudo/reservas/services/user-service/internal/repository"
	"github.com/clubgolfpapudo/reservas/services/user-service/internal/sheets"
)

type fakeDirectory struct {
	rows []sheets.Row
	err  error
}

func (f *fakeDirectory) Fetch(context.Context) ([]sheets.Row, error) {
	return f.rows, f.err
}

func newSyncFixture(t *testing.T, rows []sheets.Row) (*UserSvc, *repository.UserRepo) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	repo := repository.NewUserRepo(gdb)
	require.NoError(t, repo.Migrate())
	return NewUserSvc(repo, &fakeDirectory{rows: rows}), repo
}

func TestFormatDisplayName(t *testing.T) {
	assert.Equal(t, "Felipe García B.", FormatDisplayName("FELIPE", "GARCÍA", "BENÍTEZ"))
	assert.Equal(t, "Ana María Soto", FormatDisplayName("ana maría", "soto", ""))
	assert.Equal(t, "Pedro P.", FormatDisplayName("pedro", "", "pérez"))
	assert.Equal(t, "", FormatDisplayName("", "", ""))
}

func TestSyncFromSheetUpserts(t *testing.T) {
	svc, repo := newSyncFixture(t, []sheets.Row{
		{FirstName: "FELIPE", Paternal: "GARCÍA", Maternal: "BENÍTEZ", Email: "Felipe@X.cl", Phone: "+56911111111", Category: "SOCIO"},
		{FirstName: "ana", Paternal: "soto", Email: "", Phone: "", Category: "SOCIO"},
		{FirstName: "", Paternal: "", Maternal: "", Email: "ghost@x.cl"},
	})
	ctx := context.Background()

	rep, err := svc.SyncFromSheet(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, rep.Total)
	assert.Equal(t, 2, rep.Synced)
	assert.Equal(t, 1, rep.Skipped)

	u, err := repo.ByEmail(ctx, "felipe@x.cl")
	require.NoError(t, err)
	assert.Equal(t, "Felipe García B.", u.Name)
	assert.Equal(t, "SOCIO", u.Category)

	// no-email rows keep the member visible via the placeholder address
	u, err = repo.ByEmail(ctx, placeholderEmail)
	require.NoError(t, err)
	assert.Equal(t, "Ana Soto", u.Name)
}

func TestSyncFromSheetIsIdempotent(t *testing.T) {
	rows := []sheets.Row{
		{FirstName: "FELIPE", Paternal: "GARCÍA", Maternal: "BENÍTEZ", Email: "felipe@x.cl"},
	}
	svc, repo := newSyncFixture(t, rows)
	ctx := context.Background()

	_, err := svc.SyncFromSheet(ctx)
	require.NoError(t, err)
	_, err = svc.SyncFromSheet(ctx)
	require.NoError(t, err)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestListOrdersByName(t *testing.T) {
	svc, _ := newSyncFixture(t, []sheets.Row{
		{FirstName: "ZOE", Paternal: "VERA", Email: "zoe@x.cl"},
		{FirstName: "ANA", Paternal: "SOTO", Email: "ana@x.cl"},
	})
	ctx := context.Background()

	_, err := svc.SyncFromSheet(ctx)
	require.NoError(t, err)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Ana Soto", users[0].Name)
	assert.Equal(t, "Zoe Vera", users[1].Name)
}
