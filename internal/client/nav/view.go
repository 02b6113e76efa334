// Package nav holds the navigation state of the client: the current view
// and the identity shown to the user.
package nav

import (
	"fmt"
	"strings"
)

type View int

const (
	Login View = iota
	Register
	Dashboard
	Paper
	Contribution
	CameraReady
	Admin
	Password
	Submissions
	Profile
	Reviewer
)

var viewNames = [...]string{
	Login:        "login",
	Register:     "register",
	Dashboard:    "dashboard",
	Paper:        "paper",
	Contribution: "contribution",
	CameraReady:  "cameraReady",
	Admin:        "admin",
	Password:     "password",
	Submissions:  "submissions",
	Profile:      "profile",
	Reviewer:     "reviewer",
}

// menu aliases
var viewAliases = map[string]View{
	"home":         Dashboard,
	"papers":       Paper,
	"submit":       Paper,
	"camera":       CameraReady,
	"camera-ready": CameraReady,
	"camera_ready": CameraReady,
	"my":           Submissions,
	"reviews":      Reviewer,
	"me":           Profile,
	"signup":       Register,
}

// Views lists every view in menu order.
func Views() []View {
	out := make([]View, len(viewNames))
	for i := range viewNames {
		out[i] = View(i)
	}
	return out
}

func (v View) String() string {
	if v < 0 || int(v) >= len(viewNames) {
		return fmt.Sprintf("View(%d)", int(v))
	}
	return viewNames[v]
}

// ParseView accepts view names (case-insensitive) and menu aliases.
func ParseView(s string) (View, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, n := range viewNames {
		if strings.ToLower(n) == key {
			return View(i), nil
		}
	}
	if v, ok := viewAliases[key]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("unknown view %q", s)
}
