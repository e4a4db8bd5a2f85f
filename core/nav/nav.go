package nav

import (
	"fmt"

	"github.com/darasa/console/core/identity"
)

// Screen identifies a console page. Screens are stable identifiers shared by
// the navigation menus and the protected-route table.
type Screen string

const (
	ScreenLanding  Screen = "landing"
	ScreenLogin    Screen = "login"
	ScreenRegister Screen = "register"

	// role dashboards; ScreenDashboard is the generic entry point that the
	// routing layer resolves to a role-specific one
	ScreenDashboard           Screen = "dashboard"
	ScreenSuperAdminDashboard Screen = "dashboard/super-admin"
	ScreenPrincipalDashboard  Screen = "dashboard/principal"
	ScreenTeacherDashboard    Screen = "dashboard/teacher"
	ScreenStudentDashboard    Screen = "dashboard/student"

	ScreenSchools       Screen = "schools"
	ScreenSchoolCreate  Screen = "schools/create"
	ScreenSchoolDetails Screen = "schools/details"
	ScreenSchoolEdit    Screen = "schools/edit"

	ScreenStudents           Screen = "students"
	ScreenStudentCreate      Screen = "students/create"
	ScreenStudentDetails     Screen = "students/details"
	ScreenStudentEdit        Screen = "students/edit"
	ScreenStudentPerformance Screen = "students/performance"

	ScreenTeachers      Screen = "teachers"
	ScreenTeacherCreate Screen = "teachers/create"
	ScreenTeacherEdit   Screen = "teachers/edit"

	ScreenClasses    Screen = "classes"
	ScreenAttendance Screen = "attendance"
	ScreenExams      Screen = "exams"
	ScreenEvents     Screen = "events"
	ScreenNotices    Screen = "notices"
	ScreenReports    Screen = "reports"

	ScreenResults       Screen = "results"
	ScreenTimetable     Screen = "timetable"
	ScreenMyPerformance Screen = "my-performance"
	ScreenSchedule      Screen = "schedule"

	ScreenProfile  Screen = "profile"
	ScreenSettings Screen = "settings"
)

// Entry is one navigation menu item. Icon is a category tag for the UI, not a
// rendering concern of this package.
type Entry struct {
	Screen Screen `json:"screen"`
	Label  string `json:"label"`
	Icon   string `json:"icon"`
}

// commonEntries close every role's menu, including roles without a menu of
// their own (PARENT, unknown).
var commonEntries = []Entry{
	{ScreenProfile, "Profile", "user-tie"},
	{ScreenSettings, "Settings", "cog"},
}

// menus holds the ordered role menus. Ordering is part of the contract: it is
// the on-screen order.
var menus = map[identity.Role][]Entry{
	identity.RoleSuperAdmin: {
		{ScreenSuperAdminDashboard, "Dashboard", "home"},
		{ScreenSchools, "Schools", "school"},
		{ScreenReports, "Reports", "file-alt"},
	},
	identity.RolePrincipal: {
		{ScreenPrincipalDashboard, "Dashboard", "home"},
		{ScreenStudents, "Students", "users"},
		{ScreenTeachers, "Teachers", "user-tie"},
		{ScreenClasses, "Classes", "chalkboard"},
		{ScreenAttendance, "Attendance", "clipboard-check"},
		{ScreenExams, "Exams", "book"},
		{ScreenEvents, "Events", "calendar"},
		{ScreenNotices, "Notices", "bullhorn"},
		{ScreenReports, "Reports", "file-alt"},
	},
	identity.RoleTeacher: {
		{ScreenTeacherDashboard, "Dashboard", "home"},
		{ScreenStudents, "My Students", "users"},
		{ScreenAttendance, "Attendance", "clipboard-check"},
		{ScreenExams, "Exams", "book"},
		{ScreenSchedule, "My Schedule", "calendar"},
		{ScreenNotices, "Notices", "bullhorn"},
	},
	identity.RoleStudent: {
		{ScreenStudentDashboard, "Dashboard", "home"},
		{ScreenMyPerformance, "My Performance", "trophy"},
		{ScreenResults, "My Results", "book"},
		{ScreenTimetable, "Timetable", "calendar"},
		{ScreenAttendance, "My Attendance", "clipboard-check"},
		{ScreenNotices, "Notices", "bullhorn"},
	},
	// parents only get the common entries
	identity.RoleParent: nil,
}

// landings is the fixed role → landing screen mapping. Parents land on the
// login screen like unrecognized roles: they have no dashboard of their own.
var landings = map[identity.Role]Screen{
	identity.RoleSuperAdmin: ScreenSuperAdminDashboard,
	identity.RolePrincipal:  ScreenPrincipalDashboard,
	identity.RoleTeacher:    ScreenTeacherDashboard,
	identity.RoleStudent:    ScreenStudentDashboard,
	identity.RoleParent:     ScreenLogin,
}

func init() {
	// every role in the closed set needs an explicit menu and landing
	// decision; adding a role without extending the tables is a bug we want
	// at startup, not at render time
	for _, role := range identity.Roles {
		if _, ok := menus[role]; !ok {
			panic(fmt.Sprintf("nav: no menu decision for role %s", role))
		}
		if _, ok := landings[role]; !ok {
			panic(fmt.Sprintf("nav: no landing decision for role %s", role))
		}
	}
}

// For returns the ordered menu for a role. Unknown roles degrade to the
// common entries; this never fails. The caller owns the returned slice.
func For(role identity.Role) []Entry {
	entries := make([]Entry, 0, len(menus[role])+len(commonEntries))
	entries = append(entries, menus[role]...)
	entries = append(entries, commonEntries...)
	return entries
}

// DefaultLandingFor returns the screen a role lands on after login. Unknown
// or absent roles are sent to the login screen.
func DefaultLandingFor(role identity.Role) Screen {
	if landing, ok := landings[role]; ok {
		return landing
	}
	return ScreenLogin
}
