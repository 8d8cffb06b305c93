// Package testutil provides shared database and fixture helpers for tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/dangbert/thesis-app/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenTestDB returns a fresh in-memory sqlite database with all models
// migrated. Each call gets its own database; cache=shared keeps it alive
// across the pool's connections within one test.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.CourseUserLink{},
		&model.Assignment{},
		&model.Attempt{},
		&model.Feedback{},
		&model.File{},
		&model.Job{},
	)
	require.NoError(t, err)
	return db
}

func MakeUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	user := &model.User{
		Name:          name,
		Email:         fmt.Sprintf("%s-%s@student.vu.nl", name, uuid.NewString()[:8]),
		Sub:           uuid.NewString(),
		EmailVerified: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func MakeCourse(t *testing.T, db *gorm.DB, name string) *model.Course {
	t.Helper()
	course := &model.Course{Name: name, About: "about " + name}
	require.NoError(t, db.Create(course).Error)
	return course
}

func EnrollUser(t *testing.T, db *gorm.DB, course *model.Course, user *model.User, role model.CourseRole) *model.CourseUserLink {
	t.Helper()
	link := &model.CourseUserLink{CourseID: course.ID, UserID: user.ID, Role: role}
	require.NoError(t, db.Create(link).Error)
	return link
}

func MakeAssignment(t *testing.T, db *gorm.DB, course *model.Course, name string) *model.Assignment {
	t.Helper()
	assignment := &model.Assignment{CourseID: course.ID, Name: name, Scorable: true}
	require.NoError(t, db.Create(assignment).Error)
	return assignment
}

// MakeAttempt creates an attempt with a valid SMART payload.
func MakeAttempt(t *testing.T, db *gorm.DB, assignment *model.Assignment, user *model.User) *model.Attempt {
	t.Helper()
	raw, err := json.Marshal(model.SMARTData{Goal: "improve eye contact", Plan: "practice with recordings"})
	require.NoError(t, err)
	attempt := &model.Attempt{
		AssignmentID: assignment.ID,
		UserID:       user.ID,
		Data:         datatypes.JSON(raw),
	}
	require.NoError(t, db.Create(attempt).Error)
	return attempt
}

func MakeFeedback(t *testing.T, db *gorm.DB, attempt *model.Attempt, author *model.User, isAI bool) *model.Feedback {
	t.Helper()
	data, err := model.FeedbackData{Feedback: "solid goal", Approved: !isAI}.ToJSON()
	require.NoError(t, err)
	feedback := &model.Feedback{AttemptID: attempt.ID, IsAI: isAI, Data: data}
	if author != nil {
		feedback.UserID = &author.ID
	}
	require.NoError(t, db.Create(feedback).Error)
	return feedback
}

func MakeFile(t *testing.T, db *gorm.DB, uploader *model.User, filename string) *model.File {
	t.Helper()
	file := &model.File{UserID: uploader.ID, Filename: filename, Ext: "pdf"}
	require.NoError(t, db.Create(file).Error)
	return file
}

func MakeAIFeedbackJob(t *testing.T, db *gorm.DB, attemptID uuid.UUID) *model.Job {
	t.Helper()
	job, err := model.NewAIFeedbackJob(attemptID)
	require.NoError(t, err)
	require.NoError(t, db.Create(job).Error)
	return job
}
