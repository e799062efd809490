package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/skyrunner/internal/parallax"
)

func factory(id, name string, layers int) Factory {
	return func() *parallax.Theme {
		return &parallax.Theme{ID: id, Name: name, Layers: make([]parallax.LayerSpec, layers)}
	}
}

func TestRegisterCreateList(t *testing.T) {
	Register("reg-test-b", factory("reg-test-b", "B", 2))
	Register("reg-test-a", factory("reg-test-a", "A", 4))

	if !Exists("reg-test-a") {
		t.Fatal("Exists(reg-test-a) = false")
	}

	th, err := Create("reg-test-a")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if th.Name != "A" || len(th.Layers) != 4 {
		t.Errorf("Create() returned %+v", th)
	}

	// Every Create builds a fresh value
	other, _ := Create("reg-test-a")
	if other == th {
		t.Error("Create() should return a new theme each call")
	}

	// Registration order is kept: b before a
	var ib, ia = -1, -1
	for i, info := range List() {
		switch info.ID {
		case "reg-test-b":
			ib = i
		case "reg-test-a":
			ia = i
			if info.Layers != 4 {
				t.Errorf("ThemeInfo.Layers = %d, expected 4", info.Layers)
			}
		}
	}
	if ib < 0 || ia < 0 || ib > ia {
		t.Errorf("List() order: b at %d, a at %d", ib, ia)
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("no-such-theme")
	if !errors.Is(err, ErrUnknownTheme) {
		t.Errorf("Create(unknown) error = %v, expected ErrUnknownTheme", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("reg-test-dup", factory("reg-test-dup", "Dup", 1))

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("reg-test-dup", factory("reg-test-dup", "Dup", 1))
}

func TestRegisterMismatchedIDPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("mismatched theme id should panic")
		}
	}()
	Register("reg-test-x", factory("reg-test-y", "Y", 1))
}
