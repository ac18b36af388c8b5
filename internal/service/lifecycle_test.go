package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esturismo/motoristas/internal/domain"
	"github.com/esturismo/motoristas/internal/repo"
	"github.com/esturismo/motoristas/internal/service"
	"github.com/esturismo/motoristas/testutil"
)

// newDiskService wires the service to the real JSON store and file archive
// inside a temporary directory.
func newDiskService(t *testing.T) (*service.DriverService, testutil.DataDir) {
	t.Helper()
	dd := testutil.NewDataDir(t)
	log := testutil.DiscardLogger()
	drivers := repo.NewDriverRepo(dd.DataFile, log, nil)
	files := repo.NewFileArchive(dd.UploadDir)
	return newService(drivers, files), dd
}

func TestLifecycle_EndToEnd(t *testing.T) {
	svc, _ := newDiskService(t)
	ctx := context.Background()

	d, err := svc.Register(ctx, domain.DriverInput{Name: "Maria", TaxID: "111.444.777-35"}, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, d.Status)
	assert.Empty(t, d.Files)

	_, err = svc.AttachPayslip(ctx, d.ID, "2025", "03", domain.Upload{Filename: "x.pdf", Content: strings.NewReader("p")})
	require.NoError(t, err)
	detail, err := svc.Detail(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, detail.Payslips, 1)
	assert.Equal(t, "2025", detail.Payslips[0].Year)
	assert.Equal(t, "03", detail.Payslips[0].Month)
	assert.Equal(t, "holerite_2025_03.pdf", detail.Payslips[0].Filename)

	_, err = svc.SetStatus(ctx, d.ID, "inactive")
	require.NoError(t, err)
	got, err := svc.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInactive, got.Status)

	_, err = svc.Register(ctx, domain.DriverInput{Name: "João", TaxID: "529.982.247-25"}, nil)
	require.NoError(t, err)
	_, err = svc.Register(ctx, domain.DriverInput{Name: "Ana", TaxID: "390.533.447-05"}, nil)
	require.NoError(t, err)
	assert.Len(t, svc.Search(ctx, ""), 3)
}

func TestLifecycle_DeleteRemovesRecordAndFiles(t *testing.T) {
	svc, dd := newDiskService(t)
	ctx := context.Background()

	d, err := svc.Register(ctx, domain.DriverInput{Name: "Maria", TaxID: "11144477735"}, map[domain.FileRole]domain.Upload{
		domain.RolePhoto:   {Filename: "me.png", Content: strings.NewReader("img")},
		domain.RoleLicense: {Filename: "cnh.pdf", Content: strings.NewReader("doc")},
	})
	require.NoError(t, err)
	require.Len(t, d.Files, 2)
	_, err = svc.AttachPayslip(ctx, d.ID, "2025", "01", domain.Upload{Filename: "h.pdf", Content: strings.NewReader("p")})
	require.NoError(t, err)

	photoPath, err := svc.ResolveDownload(ctx, d.ID, domain.CategoryPhoto, d.Files[domain.RolePhoto])
	require.NoError(t, err)
	assert.FileExists(t, photoPath)

	require.NoError(t, svc.Delete(ctx, d.ID))

	_, err = svc.GetByID(ctx, d.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoDirExists(t, dd.DriverDir(d.ID))
	for category, name := range map[domain.FileCategory]string{
		domain.CategoryPhoto:    d.Files[domain.RolePhoto],
		domain.CategoryDocument: d.Files[domain.RoleLicense],
		domain.CategoryPayslip:  "2025/01/holerite_2025_01.pdf",
	} {
		_, err := svc.ResolveDownload(ctx, d.ID, category, name)
		assert.ErrorIs(t, err, domain.ErrNotFound, name)
	}
}

func TestLifecycle_RegisterCreatesTree(t *testing.T) {
	svc, dd := newDiskService(t)

	d, err := svc.Register(context.Background(), domain.DriverInput{Name: "Maria", TaxID: "11144477735"}, nil)
	require.NoError(t, err)

	assert.DirExists(t, dd.DriverDir(d.ID)+"/documentos")
	assert.DirExists(t, dd.DriverDir(d.ID)+"/holerites")
}
