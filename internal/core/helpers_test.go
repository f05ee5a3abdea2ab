package core

import "testing"

func TestSortPackages(t *testing.T) {
	pkgs := []PackageMetadata{
		{Name: "beta", Version: "1.0.0", ID: "3"},
		{Name: "alpha", Version: "1.2.0", ID: "1"},
		{Name: "alpha", Version: "1.10.0", ID: "2"},
		{Name: "alpha", Version: "not-semver", ID: "4"},
	}

	SortPackages(pkgs)

	wantOrder := []string{"2", "1", "4", "3"}
	for i, want := range wantOrder {
		if pkgs[i].ID != want {
			t.Errorf("position %d: got ID %s, want %s (order %+v)", i, pkgs[i].ID, want, pkgs)
		}
	}
}

func TestLatestVersion(t *testing.T) {
	pkgs := []PackageMetadata{
		{Name: "model", Version: "1.9.0", ID: "1"},
		{Name: "model", Version: "1.10.0", ID: "2"},
		{Name: "other", Version: "9.0.0", ID: "3"},
	}

	got := LatestVersion(pkgs, "model")
	if got == nil || got.ID != "2" {
		t.Fatalf("LatestVersion = %+v, want ID 2", got)
	}

	if LatestVersion(pkgs, "missing") != nil {
		t.Error("expected nil for unknown name")
	}
}

func TestLatestVersion_NonSemverFallback(t *testing.T) {
	pkgs := []PackageMetadata{
		{Name: "model", Version: "weekly-2024-01", ID: "1"},
		{Name: "model", Version: "weekly-2024-02", ID: "2"},
	}

	got := LatestVersion(pkgs, "model")
	if got == nil || got.ID != "1" {
		t.Fatalf("LatestVersion = %+v, want first entry when nothing parses", got)
	}
}
