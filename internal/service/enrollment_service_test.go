package service

import (
	"testing"

	"github.com/dangbert/thesis-app/internal/model"
	"github.com/dangbert/thesis-app/internal/repository"
	"github.com/dangbert/thesis-app/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnroll_CreateUpdateRevoke(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewEnrollmentService(repository.NewCourseRepository(db), db)
	course := testutil.MakeCourse(t, db, "bio101")
	user := testutil.MakeUser(t, db, "alice")

	role, err := svc.GetCourseRole(user, course)
	require.NoError(t, err)
	assert.Nil(t, role, "not enrolled yet")

	student := model.CourseRoleStudent
	require.NoError(t, svc.Enroll(user, course, &student, nil))

	role, err = svc.GetCourseRole(user, course)
	require.NoError(t, err)
	require.NotNil(t, role)
	assert.Equal(t, model.CourseRoleStudent, *role)

	// promotion keeps a single link row
	teacher := model.CourseRoleTeacher
	group := 3
	require.NoError(t, svc.Enroll(user, course, &teacher, &group))

	var count int64
	require.NoError(t, db.Model(&model.CourseUserLink{}).
		Where("course_id = ? AND user_id = ?", course.ID, user.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)

	role, err = svc.GetCourseRole(user, course)
	require.NoError(t, err)
	require.NotNil(t, role)
	assert.Equal(t, model.CourseRoleTeacher, *role)

	require.NoError(t, svc.Enroll(user, course, nil, nil))
	role, err = svc.GetCourseRole(user, course)
	require.NoError(t, err)
	assert.Nil(t, role, "nil role revokes the enrollment")
}

func TestEnroll_RevokeWithoutEnrollmentIsNoop(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewEnrollmentService(repository.NewCourseRepository(db), db)
	course := testutil.MakeCourse(t, db, "bio101")
	user := testutil.MakeUser(t, db, "alice")

	require.NoError(t, svc.Enroll(user, course, nil, nil))
}

func TestEnroll_GroupNumPreservedWhenOmitted(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewEnrollmentService(repository.NewCourseRepository(db), db)
	course := testutil.MakeCourse(t, db, "bio101")
	user := testutil.MakeUser(t, db, "alice")

	student := model.CourseRoleStudent
	group := 2
	require.NoError(t, svc.Enroll(user, course, &student, &group))
	// role change without a group keeps the old group
	teacher := model.CourseRoleTeacher
	require.NoError(t, svc.Enroll(user, course, &teacher, nil))

	var link model.CourseUserLink
	require.NoError(t, db.First(&link, "course_id = ? AND user_id = ?", course.ID, user.ID).Error)
	require.NotNil(t, link.GroupNum)
	assert.Equal(t, 2, *link.GroupNum)
}
