package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/draperly/atelier-api/internal/domain"
	"github.com/draperly/atelier-api/internal/repository"
	"github.com/draperly/atelier-api/internal/storage"
)

func newProjectService(t *testing.T) *ProjectService {
	t.Helper()
	db := openServiceDB(t)
	store, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8080/files")
	require.NoError(t, err)
	return NewProjectService(repository.NewProjectRepository(db), testNumbering(), store, zap.NewNop())
}

func TestProjectCreate_AssignsNumber(t *testing.T) {
	svc := newProjectService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, &domain.CreateProjectRequest{Name: "Thonglor Townhouse"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, &domain.CreateProjectRequest{Name: "Ari Condo"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(first.ProjectNumber, "PJ"))
	assert.NotEqual(t, first.ProjectNumber, second.ProjectNumber)
	assert.Equal(t, domain.ProjectStatusPlanning, first.Status)
}

func TestProjectCreate_RejectsUnknownStatus(t *testing.T) {
	svc := newProjectService(t)

	_, err := svc.Create(context.Background(), &domain.CreateProjectRequest{
		Name:   "Bad status",
		Status: domain.ProjectStatus("archived"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestProjectLocationAndWindowHierarchy(t *testing.T) {
	svc := newProjectService(t)
	ctx := context.Background()

	project, err := svc.Create(ctx, &domain.CreateProjectRequest{Name: "Sathorn House"})
	require.NoError(t, err)

	location, err := svc.AddLocation(ctx, project.ID, &domain.CreateLocationRequest{
		Floor: "2",
		Name:  "Master bedroom",
	})
	require.NoError(t, err)

	window, err := svc.AddWindow(ctx, location.ID, &domain.CreateWindowRequest{
		Name: "Bay window",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.WindowKindWindow, window.Kind)

	window, err = svc.UpdateWindow(ctx, window.ID, &domain.CreateWindowRequest{
		Name: "Bay window",
		Kind: domain.WindowKindDoor,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.WindowKindDoor, window.Kind)

	reloaded, err := svc.GetByID(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Locations, 1)
	require.Len(t, reloaded.Locations[0].Windows, 1)

	require.NoError(t, svc.DeleteWindow(ctx, window.ID))
	require.NoError(t, svc.DeleteLocation(ctx, location.ID))
}

func TestAddLocation_UnknownProject(t *testing.T) {
	svc := newProjectService(t)

	_, err := svc.AddLocation(context.Background(), uuid.New(), &domain.CreateLocationRequest{Name: "Lobby"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUploadWindowPhoto(t *testing.T) {
	svc := newProjectService(t)
	ctx := context.Background()

	project, err := svc.Create(ctx, &domain.CreateProjectRequest{Name: "Photo test"})
	require.NoError(t, err)
	location, err := svc.AddLocation(ctx, project.ID, &domain.CreateLocationRequest{Name: "Living room"})
	require.NoError(t, err)
	window, err := svc.AddWindow(ctx, location.ID, &domain.CreateWindowRequest{Name: "Front window"})
	require.NoError(t, err)

	resp, err := svc.UploadWindowPhoto(ctx, window.ID, "window.jpg", "image/jpeg", strings.NewReader("jpegbytes"))
	require.NoError(t, err)
	assert.Equal(t, "window.jpg", resp.Filename)
	assert.Equal(t, int64(len("jpegbytes")), resp.Size)
	assert.True(t, strings.HasPrefix(resp.URL, "http://localhost:8080/files/"))

	reloaded, err := svc.GetByID(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Locations[0].Windows[0].PhotoURLs, 1)
	assert.Equal(t, resp.URL, reloaded.Locations[0].Windows[0].PhotoURLs[0])
}
