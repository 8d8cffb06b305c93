package service

import (
	"testing"

	"github.com/dangbert/thesis-app/internal/model"
	"github.com/dangbert/thesis-app/internal/repository"
	"github.com/dangbert/thesis-app/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) AuthorizationService {
	return NewAuthorizationService(
		repository.NewCourseRepository(db),
		repository.NewAssignmentRepository(db),
		repository.NewAttemptRepository(db),
		repository.NewFileRepository(db),
	)
}

func TestCanView_UnsupportedTypeIsError(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := newAuthService(db)
	user := testutil.MakeUser(t, db, "alice")

	_, err := svc.CanView(user, "not an entity", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported entity type")

	// a supported model passed by value rather than pointer is also a bug
	_, err = svc.CanView(user, model.Course{}, false)
	require.Error(t, err)
}

func TestCanView_Course(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := newAuthService(db)
	course := testutil.MakeCourse(t, db, "bio101")
	student := testutil.MakeUser(t, db, "student")
	teacher := testutil.MakeUser(t, db, "teacher")
	outsider := testutil.MakeUser(t, db, "outsider")
	testutil.EnrollUser(t, db, course, student, model.CourseRoleStudent)
	testutil.EnrollUser(t, db, course, teacher, model.CourseRoleTeacher)

	cases := []struct {
		name string
		user *model.User
		edit bool
		want bool
	}{
		{"outsider cannot view", outsider, false, false},
		{"outsider cannot edit", outsider, true, false},
		{"student can view", student, false, true},
		{"student cannot edit", student, true, false},
		{"teacher can view", teacher, false, true},
		{"teacher can edit", teacher, true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.CanView(tc.user, course, tc.edit)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCanView_AssignmentDelegatesToCourse(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := newAuthService(db)
	course := testutil.MakeCourse(t, db, "bio101")
	assignment := testutil.MakeAssignment(t, db, course, "smart goal")
	student := testutil.MakeUser(t, db, "student")
	teacher := testutil.MakeUser(t, db, "teacher")
	testutil.EnrollUser(t, db, course, student, model.CourseRoleStudent)
	testutil.EnrollUser(t, db, course, teacher, model.CourseRoleTeacher)

	ok, err := svc.CanView(student, assignment, false)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CanView(student, assignment, true)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.CanView(teacher, assignment, true)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanView_Attempt(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := newAuthService(db)
	course := testutil.MakeCourse(t, db, "bio101")
	assignment := testutil.MakeAssignment(t, db, course, "smart goal")
	owner := testutil.MakeUser(t, db, "owner")
	peer := testutil.MakeUser(t, db, "peer")
	teacher := testutil.MakeUser(t, db, "teacher")
	testutil.EnrollUser(t, db, course, owner, model.CourseRoleStudent)
	testutil.EnrollUser(t, db, course, peer, model.CourseRoleStudent)
	testutil.EnrollUser(t, db, course, teacher, model.CourseRoleTeacher)
	attempt := testutil.MakeAttempt(t, db, assignment, owner)

	ok, err := svc.CanView(teacher, attempt, false)
	require.NoError(t, err)
	assert.True(t, ok, "teacher can view any attempt")

	ok, err = svc.CanView(teacher, attempt, true)
	require.NoError(t, err)
	assert.True(t, ok, "teacher can edit any attempt")

	ok, err = svc.CanView(owner, attempt, false)
	require.NoError(t, err)
	assert.True(t, ok, "owner can view their own attempt")

	ok, err = svc.CanView(owner, attempt, true)
	require.NoError(t, err)
	assert.False(t, ok, "owner cannot edit their own attempt")

	ok, err = svc.CanView(peer, attempt, false)
	require.NoError(t, err)
	assert.False(t, ok, "classmates cannot view each other's attempts")
}

func TestCanView_AttemptOwnerLosesAccessWhenUnenrolled(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := newAuthService(db)
	course := testutil.MakeCourse(t, db, "bio101")
	assignment := testutil.MakeAssignment(t, db, course, "smart goal")
	owner := testutil.MakeUser(t, db, "owner")
	link := testutil.EnrollUser(t, db, course, owner, model.CourseRoleStudent)
	attempt := testutil.MakeAttempt(t, db, assignment, owner)

	ok, err := svc.CanView(owner, attempt, false)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, db.Delete(link).Error)

	ok, err = svc.CanView(owner, attempt, false)
	require.NoError(t, err)
	assert.False(t, ok, "removing the enrollment revokes access to old attempts")
}

func TestCanView_Feedback(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := newAuthService(db)
	course := testutil.MakeCourse(t, db, "bio101")
	assignment := testutil.MakeAssignment(t, db, course, "smart goal")
	owner := testutil.MakeUser(t, db, "owner")
	teacher := testutil.MakeUser(t, db, "teacher")
	testutil.EnrollUser(t, db, course, owner, model.CourseRoleStudent)
	testutil.EnrollUser(t, db, course, teacher, model.CourseRoleTeacher)
	attempt := testutil.MakeAttempt(t, db, assignment, owner)

	aiFeedback := testutil.MakeFeedback(t, db, attempt, nil, true)
	humanFeedback := testutil.MakeFeedback(t, db, attempt, teacher, false)

	ok, err := svc.CanView(owner, aiFeedback, false)
	require.NoError(t, err)
	assert.True(t, ok, "attempt owner can read AI feedback")

	ok, err = svc.CanView(teacher, aiFeedback, true)
	require.NoError(t, err)
	assert.False(t, ok, "nobody can edit AI feedback, not even the teacher")

	ok, err = svc.CanView(teacher, humanFeedback, true)
	require.NoError(t, err)
	assert.True(t, ok, "teacher can edit human feedback")

	ok, err = svc.CanView(owner, humanFeedback, true)
	require.NoError(t, err)
	assert.False(t, ok, "student cannot edit human feedback")
}

func TestCanView_File(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := newAuthService(db)
	fileRepo := repository.NewFileRepository(db)

	course := testutil.MakeCourse(t, db, "bio101")
	assignment := testutil.MakeAssignment(t, db, course, "smart goal")
	uploader := testutil.MakeUser(t, db, "uploader")
	student := testutil.MakeUser(t, db, "student")
	outsider := testutil.MakeUser(t, db, "outsider")
	testutil.EnrollUser(t, db, course, student, model.CourseRoleStudent)

	orphan := testutil.MakeFile(t, db, uploader, "orphan.pdf")

	ok, err := svc.CanView(uploader, orphan, false)
	require.NoError(t, err)
	assert.True(t, ok, "uploader can always access their file")

	ok, err = svc.CanView(student, orphan, false)
	require.NoError(t, err)
	assert.False(t, ok, "unlinked file is private to the uploader")

	courseFile := testutil.MakeFile(t, db, uploader, "syllabus.pdf")
	require.NoError(t, fileRepo.LinkToCourse(courseFile, course))

	ok, err = svc.CanView(student, courseFile, false)
	require.NoError(t, err)
	assert.True(t, ok, "enrollment grants access to course files")

	ok, err = svc.CanView(outsider, courseFile, false)
	require.NoError(t, err)
	assert.False(t, ok)

	assignmentFile := testutil.MakeFile(t, db, uploader, "rubric.pdf")
	require.NoError(t, fileRepo.LinkToAssignment(assignmentFile, assignment))

	ok, err = svc.CanView(student, assignmentFile, false)
	require.NoError(t, err)
	assert.True(t, ok, "assignment files are reachable through the course")
}

func TestCanView_FileAttachedToAttempt(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := newAuthService(db)

	course := testutil.MakeCourse(t, db, "bio101")
	assignment := testutil.MakeAssignment(t, db, course, "smart goal")
	owner := testutil.MakeUser(t, db, "owner")
	peer := testutil.MakeUser(t, db, "peer")
	teacher := testutil.MakeUser(t, db, "teacher")
	testutil.EnrollUser(t, db, course, owner, model.CourseRoleStudent)
	testutil.EnrollUser(t, db, course, peer, model.CourseRoleStudent)
	testutil.EnrollUser(t, db, course, teacher, model.CourseRoleTeacher)
	attempt := testutil.MakeAttempt(t, db, assignment, owner)

	file := testutil.MakeFile(t, db, owner, "draft.pdf")
	require.NoError(t, db.Model(attempt).Association("Files").Append(file))

	ok, err := svc.CanView(teacher, file, false)
	require.NoError(t, err)
	assert.True(t, ok, "teacher reaches the file through the attempt")

	ok, err = svc.CanView(peer, file, false)
	require.NoError(t, err)
	assert.False(t, ok, "attempt files stay hidden from classmates")
}
