package nav_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/darasa/console/core/identity"
	"github.com/darasa/console/core/nav"
)

func screens(entries []nav.Entry) []nav.Screen {
	out := make([]nav.Screen, len(entries))
	for i, e := range entries {
		out[i] = e.Screen
	}
	return out
}

func Test_For(t *testing.T) {
	common := []nav.Screen{nav.ScreenProfile, nav.ScreenSettings}

	tests := []struct {
		role identity.Role
		want []nav.Screen
	}{
		{
			role: identity.RoleSuperAdmin,
			want: []nav.Screen{nav.ScreenSuperAdminDashboard, nav.ScreenSchools, nav.ScreenReports},
		},
		{
			role: identity.RolePrincipal,
			want: []nav.Screen{
				nav.ScreenPrincipalDashboard, nav.ScreenStudents, nav.ScreenTeachers,
				nav.ScreenClasses, nav.ScreenAttendance, nav.ScreenExams,
				nav.ScreenEvents, nav.ScreenNotices, nav.ScreenReports,
			},
		},
		{
			role: identity.RoleTeacher,
			want: []nav.Screen{
				nav.ScreenTeacherDashboard, nav.ScreenStudents, nav.ScreenAttendance,
				nav.ScreenExams, nav.ScreenSchedule, nav.ScreenNotices,
			},
		},
		{
			role: identity.RoleStudent,
			want: []nav.Screen{
				nav.ScreenStudentDashboard, nav.ScreenMyPerformance, nav.ScreenResults,
				nav.ScreenTimetable, nav.ScreenAttendance, nav.ScreenNotices,
			},
		},
		{role: identity.RoleParent, want: nil},      // common entries only
		{role: identity.Role("JANITOR"), want: nil}, // degrades like PARENT
		{role: identity.Role(""), want: nil},
	}
	for _, tt := range tests {
		name := string(tt.role)
		if name == "" {
			name = "empty"
		}
		t.Run(name, func(t *testing.T) {
			got := nav.For(tt.role)
			want := append(append([]nav.Screen{}, tt.want...), common...)
			assert.Equal(t, want, screens(got), "menu order is part of the contract")
		})
	}
}

func Test_For_callerOwnsSlice(t *testing.T) {
	first := nav.For(identity.RoleTeacher)
	first[0] = nav.Entry{Screen: nav.ScreenLogin, Label: "mutated"}

	second := nav.For(identity.RoleTeacher)
	if second[0].Screen != nav.ScreenTeacherDashboard {
		t.Error("mutating a returned menu leaked into the shared tables")
	}
}

func Test_For_labels(t *testing.T) {
	// teacher and student menus relabel shared screens from their own
	// perspective
	byScreen := func(entries []nav.Entry, screen nav.Screen) nav.Entry {
		for _, e := range entries {
			if e.Screen == screen {
				return e
			}
		}
		t.Fatalf("screen %q missing from menu", screen)
		return nav.Entry{}
	}

	teacher := nav.For(identity.RoleTeacher)
	assert.Equal(t, "My Students", byScreen(teacher, nav.ScreenStudents).Label)
	assert.Equal(t, "My Schedule", byScreen(teacher, nav.ScreenSchedule).Label)

	student := nav.For(identity.RoleStudent)
	assert.Equal(t, "My Attendance", byScreen(student, nav.ScreenAttendance).Label)

	principal := nav.For(identity.RolePrincipal)
	assert.Equal(t, "Students", byScreen(principal, nav.ScreenStudents).Label)
	assert.Equal(t, "Attendance", byScreen(principal, nav.ScreenAttendance).Label)
}

func Test_DefaultLandingFor(t *testing.T) {
	tests := []struct {
		role identity.Role
		want nav.Screen
	}{
		{identity.RoleSuperAdmin, nav.ScreenSuperAdminDashboard},
		{identity.RolePrincipal, nav.ScreenPrincipalDashboard},
		{identity.RoleTeacher, nav.ScreenTeacherDashboard},
		{identity.RoleStudent, nav.ScreenStudentDashboard},
		{identity.RoleParent, nav.ScreenLogin}, // no parent dashboard exists
		{identity.Role("JANITOR"), nav.ScreenLogin},
		{identity.Role(""), nav.ScreenLogin},
	}
	for _, tt := range tests {
		if got := nav.DefaultLandingFor(tt.role); got != tt.want {
			t.Errorf("DefaultLandingFor(%q) = %q; want %q", tt.role, got, tt.want)
		}
	}
}
