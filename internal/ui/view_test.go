package ui

import (
	"testing"
	"time"

	"github.com/facetdev/facet/internal/api"
	"github.com/facetdev/facet/internal/controller"
)

func TestKeyHints(t *testing.T) {
	tests := []struct {
		name string
		snap controller.Snapshot
		mode mode
		want []string
	}{
		{
			name: "idle view",
			snap: controller.Snapshot{State: controller.StateIdle},
			mode: modeView,
			want: []string{"u user", "r refresh", "t theme", "q quit"},
		},
		{
			name: "ready adds edit",
			snap: controller.Snapshot{State: controller.StateReady},
			mode: modeView,
			want: []string{"e edit", "u user", "r refresh", "t theme", "q quit"},
		},
		{
			name: "error adds dismiss",
			snap: controller.Snapshot{State: controller.StateFailed, Err: "boom"},
			mode: modeView,
			want: []string{"u user", "r refresh", "d dismiss", "t theme", "q quit"},
		},
		{
			name: "edit mode",
			snap: controller.Snapshot{State: controller.StateEditing, Editing: true},
			mode: modeEdit,
			want: []string{"enter save", "esc cancel", "tab field"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := keyHints(tt.snap, tt.mode)
			if len(got) != len(tt.want) {
				t.Fatalf("keyHints = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("keyHints[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	if got := formatTimestamp(time.Time{}, ""); got != "—" {
		t.Fatalf("formatTimestamp zero = %q, want dash", got)
	}
	if got := formatTimestamp(time.Time{}, "raw-value"); got != "raw-value" {
		t.Fatalf("formatTimestamp fallback = %q, want raw string", got)
	}
	ts := time.Date(2024, 1, 5, 10, 30, 0, 0, time.UTC)
	if got := formatTimestamp(ts, "ignored"); got == "" || got == "ignored" {
		t.Fatalf("formatTimestamp parsed = %q, want formatted time", got)
	}
}

func TestRoleLabel(t *testing.T) {
	if got := roleLabel(api.RoleAdmin); got != "admin" {
		t.Fatalf("roleLabel(admin) = %q", got)
	}
	if got := roleLabel(api.Role("wizard")); got != "unknown" {
		t.Fatalf("roleLabel(wizard) = %q, want unknown", got)
	}
}

func TestEditorPatchOnlyChangedFields(t *testing.T) {
	base := api.Profile{FirstName: "John", LastName: "Doe", Bio: "bio", Avatar: "a.png"}
	e := newEditor(base)

	if !e.patch().IsZero() {
		t.Fatal("untouched editor must produce an empty patch")
	}

	e.inputs[fieldFirstName].SetValue("Jane")
	p := e.patch()
	if p.FirstName == nil || *p.FirstName != "Jane" {
		t.Fatalf("patch.FirstName = %v, want Jane", p.FirstName)
	}
	if p.LastName != nil || p.Bio != nil || p.Avatar != nil {
		t.Fatalf("patch = %+v, want only FirstName set", p)
	}
}

func TestEditorFocusCycles(t *testing.T) {
	e := newEditor(api.Profile{})
	if e.focus != fieldFirstName {
		t.Fatalf("initial focus = %d, want %d", e.focus, fieldFirstName)
	}
	for i := 0; i < fieldCount; i++ {
		e = e.focusNext()
	}
	if e.focus != fieldFirstName {
		t.Fatalf("focus after full cycle = %d, want %d", e.focus, fieldFirstName)
	}
	e = e.focusPrev()
	if e.focus != fieldAvatar {
		t.Fatalf("focusPrev from first = %d, want %d", e.focus, fieldAvatar)
	}
}
