package testutil

import (
	"io"
	"log"
	"testing"

	"github.com/darasa/console/core"
	"github.com/darasa/console/core/identity"
	logsvc "github.com/darasa/console/services/logger"
)

func init() {
	// tests never read a config file; give core.Conf sane defaults
	if core.Conf == nil {
		core.Conf = &core.Config{
			Debug:    true,
			TestMode: true,
			Env:      "TEST",
			AppName:  "Darasa Console",
			Build:    "test",
		}
	}
}

// NewIdentity returns an active Identity with the given role. School-level
// roles get a school affiliation.
func NewIdentity(t *testing.T, uname string, role identity.Role) identity.Identity {
	t.Helper()
	ident := identity.Identity{
		ID:        "id-" + uname,
		Username:  uname,
		Email:     uname + "@test.cd",
		FirstName: "Test",
		LastName:  uname,
		Role:      role,
		IsActive:  true,
	}
	if role != identity.RoleSuperAdmin {
		schoolID := "school-001"
		ident.SchoolID = &schoolID
	}
	return ident
}

// NewLogger returns a quiet logger for tests.
func NewLogger() core.Logger {
	return logsvc.NewConsoleLogger(log.New(io.Discard, "", 0))
}
