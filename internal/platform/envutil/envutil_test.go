package envutil

import (
	"testing"
	"time"
)

func TestEnvReaders(t *testing.T) {
	t.Setenv("PAYONA_TEST_INT", "42")
	t.Setenv("PAYONA_TEST_BAD_INT", "x")
	t.Setenv("PAYONA_TEST_BOOL", "off")
	t.Setenv("PAYONA_TEST_SECONDS", "90")
	t.Setenv("PAYONA_TEST_LIST", " a, ,b ")

	if got := Int("PAYONA_TEST_INT", 1); got != 42 {
		t.Fatalf("Int: want=42 got=%d", got)
	}
	if got := Int("PAYONA_TEST_BAD_INT", 7); got != 7 {
		t.Fatalf("Int fallback: want=7 got=%d", got)
	}
	if got := Bool("PAYONA_TEST_BOOL", true); got {
		t.Fatalf("Bool: want=false got=true")
	}
	if got := Bool("PAYONA_TEST_UNSET_BOOL", true); !got {
		t.Fatalf("Bool default: want=true got=false")
	}
	if got := Seconds("PAYONA_TEST_SECONDS", time.Second); got != 90*time.Second {
		t.Fatalf("Seconds: want=90s got=%s", got)
	}
	if got := String("PAYONA_TEST_UNSET_STRING", "d"); got != "d" {
		t.Fatalf("String default: want=d got=%s", got)
	}
	got := List("PAYONA_TEST_LIST", nil)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("List: want=[a b] got=%v", got)
	}
}
