package buildinfo

import "testing"

func TestParseSemver(t *testing.T) {
	tests := []struct {
		in      string
		want    Semver
		wantErr bool
	}{
		{in: "1.2.3", want: Semver{Major: 1, Minor: 2, Patch: 3}},
		{in: "v0.10.0", want: Semver{Minor: 10}},
		{in: "2.0.0-beta.1", want: Semver{Major: 2, Pre: "beta.1"}},
		{in: "2.0.0+abc", want: Semver{Major: 2, Pre: "abc"}},
		{in: "dev", wantErr: true},
		{in: "1.2", wantErr: true},
		{in: "1.x.3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSemver(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSemver(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseSemver(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSemverCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.0", "1.0.1", -1},
		{"1.2.0", "1.1.9", 1},
		{"2.0.0-rc.1", "2.0.0", -1},
		{"2.0.0", "2.0.0-rc.1", 1},
		{"2.0.0-alpha", "2.0.0-beta", -1},
	}

	for _, tt := range tests {
		a, _ := ParseSemver(tt.a)
		b, _ := ParseSemver(tt.b)
		if got := a.Compare(b); got != tt.want {
			t.Errorf("%s.Compare(%s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if got := a.LessThan(b); got != (tt.want < 0) {
			t.Errorf("%s.LessThan(%s) = %v", tt.a, tt.b, got)
		}
	}
}

func TestPartyID(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "dev"
	if id, ok := PartyID(); ok {
		t.Errorf("PartyID() with dev build = %q, want none", id)
	}

	Version = "v1.4.2"
	id, ok := PartyID()
	if !ok || id != "1.4.2" {
		t.Errorf("PartyID() = %q, %v, want 1.4.2", id, ok)
	}
}
