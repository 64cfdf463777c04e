package preset

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"slatelink/internal/overlay"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := NewStore(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	p := New("Day 3 Exteriors", []string{"Scene", "Take", "Notes"})
	p.Overlay.FieldOrder = []string{"Scene", "Take"}
	p.Overlay.Positions = map[string][2]float64{"Scene": {0.1234, 0.9}}
	p.Match.JoinKey = "Clip Name"

	if err := store.Save(p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load("Day 3 Exteriors")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(loaded, p) {
		t.Errorf("round trip changed the preset:\nsaved  %+v\nloaded %+v", p, loaded)
	}
}

func TestStoreSanitizesFilenames(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save(New("Day 3: Exteriors!", nil)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(store.Dir(), "day_3__exteriors.toml")); err != nil {
		t.Errorf("expected sanitized filename: %v", err)
	}
}

func TestStoreRejectsEmptyName(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save(Preset{}); err == nil {
		t.Error("Save accepted an empty name")
	}
}

func TestStoreLoadMissing(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Load("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestStoreDelete(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save(New("gone", nil)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete("gone"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Load("gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("preset still loadable after delete: %v", err)
	}
	// Deleting again is a no-op.
	if err := store.Delete("gone"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestStoreListSkipsCorruptFiles(t *testing.T) {
	store := newTestStore(t)
	for _, name := range []string{"beta", "alpha"} {
		if err := store.Save(New(name, nil)); err != nil {
			t.Fatalf("Save(%s): %v", name, err)
		}
	}
	corrupt := filepath.Join(store.Dir(), "broken.toml")
	if err := os.WriteFile(corrupt, []byte("not = [valid"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	names, err := store.Names()
	if err != nil {
		t.Fatalf("Names: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"alpha", "beta"}) {
		t.Errorf("names = %v, want sorted [alpha beta]", names)
	}
}

func TestOverlayConfigSpecRoundTrip(t *testing.T) {
	spec := overlay.Spec{
		Anchor:         overlay.BottomLeft,
		FontPt:         14,
		PaddingPx:      8,
		LineSpacingPx:  4,
		BoxOpacity:     0.7,
		ShowBackground: true,
		FieldOrder:     []string{"Scene", "Take"},
		Positions:      map[string]overlay.Point{"Scene": {X: 0.25, Y: 0.75}},
	}

	back := FromSpec(spec).ToSpec()
	if !reflect.DeepEqual(back, spec) {
		t.Errorf("spec round trip changed it:\nin  %+v\nout %+v", spec, back)
	}
}

func TestFromSpecRoundsPositions(t *testing.T) {
	spec := overlay.Spec{Positions: map[string]overlay.Point{"Scene": {X: 0.123456, Y: 0.1}}}
	cfg := FromSpec(spec)
	if got := cfg.Positions["Scene"]; got != [2]float64{0.1235, 0.1} {
		t.Errorf("stored position = %v, want 4-decimal rounding", got)
	}
}
