package service

import (
	"encoding/json"
	"testing"

	"github.com/dangbert/thesis-app/internal/dto"
	"github.com/dangbert/thesis-app/internal/model"
	"github.com/dangbert/thesis-app/internal/repository"
	"github.com/dangbert/thesis-app/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAttemptService(db *gorm.DB) AttemptService {
	return NewAttemptService(
		repository.NewAttemptRepository(db),
		repository.NewFeedbackRepository(db),
		db,
	)
}

func TestSubmitAttempt_EnqueuesJob(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := newAttemptService(db)
	course := testutil.MakeCourse(t, db, "bio101")
	assignment := testutil.MakeAssignment(t, db, course, "smart goal")
	student := testutil.MakeUser(t, db, "student")
	testutil.EnrollUser(t, db, course, student, model.CourseRoleStudent)

	raw, err := json.Marshal(model.SMARTData{Goal: "g", Plan: "p"})
	require.NoError(t, err)
	pub, err := svc.SubmitAttempt(student, dto.AttemptCreateRequest{
		AssignmentID: assignment.ID,
		Data:         raw,
	})
	require.NoError(t, err)
	assert.Equal(t, student.ID, pub.UserID)

	var jobs []model.Job
	require.NoError(t, db.Find(&jobs).Error)
	require.Len(t, jobs, 1)
	assert.Equal(t, model.JobTypeAIFeedback, jobs[0].JobType)
	assert.Equal(t, model.JobStatusPending, jobs[0].Status)

	data, err := model.ParseAIFeedbackJobData(jobs[0].Data)
	require.NoError(t, err)
	assert.Equal(t, pub.ID, data.AttemptID)
}

func TestSubmitAttempt_InvalidDataRejected(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := newAttemptService(db)
	course := testutil.MakeCourse(t, db, "bio101")
	assignment := testutil.MakeAssignment(t, db, course, "smart goal")
	student := testutil.MakeUser(t, db, "student")

	_, err := svc.SubmitAttempt(student, dto.AttemptCreateRequest{
		AssignmentID: assignment.ID,
		Data:         json.RawMessage(`{"goal":"only a goal"}`),
	})
	require.Error(t, err)

	var attempts, jobs int64
	require.NoError(t, db.Model(&model.Attempt{}).Count(&attempts).Error)
	require.NoError(t, db.Model(&model.Job{}).Count(&jobs).Error)
	assert.Zero(t, attempts, "nothing persisted on validation failure")
	assert.Zero(t, jobs)
}

func TestSubmitAttempt_LinksFiles(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := newAttemptService(db)
	course := testutil.MakeCourse(t, db, "bio101")
	assignment := testutil.MakeAssignment(t, db, course, "smart goal")
	student := testutil.MakeUser(t, db, "student")
	file := testutil.MakeFile(t, db, student, "draft.pdf")

	raw, err := json.Marshal(model.SMARTData{Goal: "g", Plan: "p"})
	require.NoError(t, err)
	pub, err := svc.SubmitAttempt(student, dto.AttemptCreateRequest{
		AssignmentID: assignment.ID,
		Data:         raw,
		FileIDs:      []uuid.UUID{file.ID},
	})
	require.NoError(t, err)

	fileRepo := repository.NewFileRepository(db)
	attempts, err := fileRepo.ListAttemptsForFile(file.ID)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, pub.ID, attempts[0].ID)
}

func TestSubmitAttempt_RejectsForeignFiles(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := newAttemptService(db)
	course := testutil.MakeCourse(t, db, "bio101")
	assignment := testutil.MakeAssignment(t, db, course, "smart goal")
	alice := testutil.MakeUser(t, db, "alice")
	bob := testutil.MakeUser(t, db, "bob")
	bobsFile := testutil.MakeFile(t, db, bob, "private.pdf")

	raw, err := json.Marshal(model.SMARTData{Goal: "g", Plan: "p"})
	require.NoError(t, err)
	_, err = svc.SubmitAttempt(alice, dto.AttemptCreateRequest{
		AssignmentID: assignment.ID,
		Data:         raw,
		FileIDs:      []uuid.UUID{bobsFile.ID},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not belong to the submitting user")

	// the rejected submission rolls back entirely
	var attempts, jobs int64
	require.NoError(t, db.Model(&model.Attempt{}).Count(&attempts).Error)
	require.NoError(t, db.Model(&model.Job{}).Count(&jobs).Error)
	assert.Zero(t, attempts)
	assert.Zero(t, jobs)

	fileRepo := repository.NewFileRepository(db)
	linked, err := fileRepo.ListAttemptsForFile(bobsFile.ID)
	require.NoError(t, err)
	assert.Empty(t, linked, "the foreign file gained no attempt link")
}

func TestGetAttempt_IncludesFeedback(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := newAttemptService(db)
	course := testutil.MakeCourse(t, db, "bio101")
	assignment := testutil.MakeAssignment(t, db, course, "smart goal")
	student := testutil.MakeUser(t, db, "student")
	attempt := testutil.MakeAttempt(t, db, assignment, student)
	testutil.MakeFeedback(t, db, attempt, nil, true)

	pub, err := svc.GetAttempt(attempt.ID)
	require.NoError(t, err)
	require.Len(t, pub.Feedbacks, 1)
	assert.True(t, pub.Feedbacks[0].IsAI)
}

func TestListAttempts(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := newAttemptService(db)
	course := testutil.MakeCourse(t, db, "bio101")
	assignment := testutil.MakeAssignment(t, db, course, "smart goal")
	alice := testutil.MakeUser(t, db, "alice")
	bob := testutil.MakeUser(t, db, "bob")
	testutil.MakeAttempt(t, db, assignment, alice)
	testutil.MakeAttempt(t, db, assignment, bob)

	all, err := svc.ListAttemptsForAssignment(assignment.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := svc.ListOwnAttempts(alice, assignment.ID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, alice.ID, own[0].UserID)
}
