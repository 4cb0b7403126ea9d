package user

import "testing"

func TestDisplayNames(t *testing.T) {
	cases := []struct {
		name      string
		u         *User
		wantFull  string
		wantShort string
	}{
		{name: "both parts", u: &User{Name: "Ayşe", Surname: "yılmaz"}, wantFull: "Ayşe yılmaz", wantShort: "Ayşe Y."},
		{name: "no surname", u: &User{Name: "Deniz"}, wantFull: "Deniz", wantShort: "Deniz"},
		{name: "nil", u: nil, wantFull: "", wantShort: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.u.FullName(); got != tc.wantFull {
				t.Fatalf("FullName: want=%q got=%q", tc.wantFull, got)
			}
			if got := tc.u.ShortName(); got != tc.wantShort {
				t.Fatalf("ShortName: want=%q got=%q", tc.wantShort, got)
			}
		})
	}
}
