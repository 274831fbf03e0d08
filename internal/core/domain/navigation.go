package domain

import "fmt"

// Screen names a reachable place in the application.
type Screen string

const (
	ScreenLogin             Screen = "Login"
	ScreenRegister          Screen = "Register"
	ScreenAdminDashboard    Screen = "AdminDashboard"
	ScreenDoctorDashboard   Screen = "DoctorDashboard"
	ScreenPatientDashboard  Screen = "PatientDashboard"
	ScreenHome              Screen = "Home"
	ScreenCreateAppointment Screen = "CreateAppointment"
	ScreenProfile           Screen = "Profile"
)

// GateState is the navigation gate's view of the session.
type GateState int

const (
	GateBooting GateState = iota
	GateAnonymous
	GateAuthenticated
)

func (g GateState) String() string {
	switch g {
	case GateBooting:
		return "booting"
	case GateAnonymous:
		return "anonymous"
	default:
		return "authenticated"
	}
}

var (
	anonymousScreens = []Screen{ScreenLogin, ScreenRegister}
	commonScreens    = []Screen{ScreenHome, ScreenCreateAppointment, ScreenProfile}

	// roleDashboards has no entry for RoleKindUnknown: such users get the
	// common screens only.
	roleDashboards = map[RoleKind]Screen{
		RoleKindAdmin:   ScreenAdminDashboard,
		RoleKindDoctor:  ScreenDoctorDashboard,
		RoleKindPatient: ScreenPatientDashboard,
	}
)

// Routes is the set of screens reachable for one session state.
type Routes struct {
	State   GateState
	Role    RoleKind
	Screens []Screen
}

// Gate computes the reachable screens for s. It is a pure function of the
// session's user and loading flag.
func Gate(s Session) Routes {
	switch {
	case s.Loading:
		return Routes{State: GateBooting}
	case s.User == nil:
		screens := make([]Screen, len(anonymousScreens))
		copy(screens, anonymousScreens)
		return Routes{State: GateAnonymous, Screens: screens}
	}

	kind := s.User.Role.Kind()
	screens := make([]Screen, 0, len(commonScreens)+1)
	if dashboard, ok := roleDashboards[kind]; ok {
		screens = append(screens, dashboard)
	}
	screens = append(screens, commonScreens...)
	return Routes{State: GateAuthenticated, Role: kind, Screens: screens}
}

// Allows reports whether screen is reachable.
func (r Routes) Allows(screen Screen) bool {
	for _, s := range r.Screens {
		if s == screen {
			return true
		}
	}
	return false
}

// Initial returns the first reachable screen, false while booting.
func (r Routes) Initial() (Screen, bool) {
	if len(r.Screens) == 0 {
		return "", false
	}
	return r.Screens[0], true
}

// Require returns ErrScreenUnavailable when screen is not reachable.
func (r Routes) Require(screen Screen) error {
	if r.Allows(screen) {
		return nil
	}
	return fmt.Errorf("%w: %s (session %s)", ErrScreenUnavailable, screen, r.State)
}
