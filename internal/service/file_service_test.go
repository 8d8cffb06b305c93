package service

import (
	"testing"

	"github.com/dangbert/thesis-app/internal/repository"
	"github.com/dangbert/thesis-app/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFile_ExtractsExtension(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewFileService(repository.NewFileRepository(db))
	user := testutil.MakeUser(t, db, "alice")

	pub, err := svc.CreateFile(user, "report.final.pdf")
	require.NoError(t, err)
	assert.Equal(t, "report.final.pdf", pub.Filename)
	assert.Equal(t, "pdf", pub.Ext)

	noExt, err := svc.CreateFile(user, "README")
	require.NoError(t, err)
	assert.Empty(t, noExt.Ext)
}

func TestAttachFile(t *testing.T) {
	db := testutil.OpenTestDB(t)
	fileRepo := repository.NewFileRepository(db)
	svc := NewFileService(fileRepo)
	user := testutil.MakeUser(t, db, "alice")
	course := testutil.MakeCourse(t, db, "bio101")
	assignment := testutil.MakeAssignment(t, db, course, "smart goal")

	pub, err := svc.CreateFile(user, "rubric.pdf")
	require.NoError(t, err)
	file, err := svc.GetFile(pub.ID)
	require.NoError(t, err)

	require.NoError(t, svc.AttachToCourse(file, course))
	require.NoError(t, svc.AttachToAssignment(file, assignment))

	courses, err := fileRepo.ListCoursesForFile(file.ID)
	require.NoError(t, err)
	assert.Len(t, courses, 1)

	assignments, err := fileRepo.ListAssignmentsForFile(file.ID)
	require.NoError(t, err)
	assert.Len(t, assignments, 1)
}
