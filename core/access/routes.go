package access

import (
	"github.com/darasa/console/core/identity"
	"github.com/darasa/console/core/nav"
)

// Route pairs a screen with its allowed-role set. An empty AllowedRoles means
// any authenticated role may render the screen.
type Route struct {
	Screen       nav.Screen
	AllowedRoles []identity.Role
}

var (
	superAdmin        = []identity.Role{identity.RoleSuperAdmin}
	adminStaff        = []identity.Role{identity.RoleSuperAdmin, identity.RolePrincipal}
	teachingStaff     = []identity.Role{identity.RoleSuperAdmin, identity.RolePrincipal, identity.RoleTeacher}
	anyAuthenticated  []identity.Role
	studentAndParent  = []identity.Role{identity.RoleStudent, identity.RoleParent}
	timetableAudience = []identity.Role{identity.RoleStudent, identity.RoleTeacher, identity.RoleParent}
	studentOnly       = []identity.Role{identity.RoleStudent}
	teacherOnly       = []identity.Role{identity.RoleTeacher}
)

// routes is the console's protected-route table. Screens absent from it
// (landing, login, register) are public.
var routes = map[nav.Screen][]identity.Role{
	nav.ScreenDashboard:           anyAuthenticated,
	nav.ScreenSuperAdminDashboard: superAdmin,
	nav.ScreenPrincipalDashboard:  {identity.RolePrincipal},
	nav.ScreenTeacherDashboard:    teacherOnly,
	nav.ScreenStudentDashboard:    studentOnly,

	nav.ScreenSchools:       superAdmin,
	nav.ScreenSchoolCreate:  superAdmin,
	nav.ScreenSchoolDetails: superAdmin,
	nav.ScreenSchoolEdit:    superAdmin,

	nav.ScreenStudents:           teachingStaff,
	nav.ScreenStudentCreate:      adminStaff,
	nav.ScreenStudentDetails:     anyAuthenticated,
	nav.ScreenStudentEdit:        adminStaff,
	nav.ScreenStudentPerformance: teachingStaff,

	nav.ScreenTeachers:      adminStaff,
	nav.ScreenTeacherCreate: adminStaff,
	nav.ScreenTeacherEdit:   adminStaff,

	nav.ScreenClasses:    adminStaff,
	nav.ScreenAttendance: teachingStaff,
	nav.ScreenExams:      teachingStaff,
	nav.ScreenEvents:     adminStaff,
	nav.ScreenNotices:    anyAuthenticated,
	nav.ScreenReports:    teachingStaff,

	nav.ScreenResults:       studentAndParent,
	nav.ScreenTimetable:     timetableAudience,
	nav.ScreenMyPerformance: studentOnly,
	nav.ScreenSchedule:      teacherOnly,

	nav.ScreenProfile:  anyAuthenticated,
	nav.ScreenSettings: anyAuthenticated,
}

// RouteFor returns the protected-route descriptor for a screen. ok is false
// for public or unknown screens.
func RouteFor(screen nav.Screen) (Route, bool) {
	allowed, ok := routes[screen]
	if !ok {
		return Route{}, false
	}
	return Route{Screen: screen, AllowedRoles: allowed}, true
}

// Routes returns every protected-route descriptor. The caller owns the slice.
func Routes() []Route {
	out := make([]Route, 0, len(routes))
	for screen, allowed := range routes {
		out = append(out, Route{Screen: screen, AllowedRoles: allowed})
	}
	return out
}
