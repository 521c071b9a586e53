package constants

// User tiers (user_usertype). Tier checks are the legacy scheme; the
// fine-grained permission codes below are the newer one. Both are live.
const (
	UsertypeOrdinary   = 1
	UsertypeAdmin      = 2
	UsertypeSuperAdmin = 6
)

// Permission codes granted through roles. Administrators (tier 2/6) hold
// every code implicitly.
const (
	PermGraduateClient = 15

	PermAddCourse    = 21
	PermUpdateCourse = 22
	PermDeleteCourse = 23

	PermAddCombo    = 24
	PermUpdateCombo = 25
	PermDeleteCombo = 26

	PermAddLesson    = 27
	PermUpdateLesson = 28
	PermDeleteLesson = 29

	PermAddStudent    = 30
	PermRemoveStudent = 31
)

// Visibility tiers (user_visible_range): how wide a slice of the client
// pool a staff member may see.
const (
	VisibleNone       = 0
	VisibleSelf       = 1
	VisibleSchool     = 2
	VisibleDepartment = 3
	VisibleAll        = 4
)

// Vocation ids referenced by ownership guards.
const (
	VocationSchoolManager = 2
)
