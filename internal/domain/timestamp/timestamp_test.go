package timestamp

import (
	"testing"

	"github.com/autocliper/autoclip/internal/errs"
)

func TestRoundTrip(t *testing.T) {
	// Sample the full documented range up to 99:59:59; the stride keeps the
	// test fast while still crossing every unit boundary repeatedly.
	for s := 0; s <= 359999; s += 7 {
		ts := ToTimestamp(float64(s))
		got, err := FromTimestamp(ts)
		if err != nil {
			t.Fatalf("FromTimestamp(%q): %v", ts, err)
		}
		if int(got) != s {
			t.Fatalf("round trip %d -> %q -> %v", s, ts, got)
		}
	}
}

func TestToTimestamp(t *testing.T) {
	cases := map[float64]string{
		0:        "00:00:00",
		59.9:     "00:00:59",
		60:       "00:01:00",
		105:      "00:01:45",
		3661:     "01:01:01",
		359999:   "99:59:59",
		360000:   "100:00:00",
		-5:       "00:00:00",
		3599.999: "00:59:59",
	}
	for in, want := range cases {
		if got := ToTimestamp(in); got != want {
			t.Errorf("ToTimestamp(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFromTimestamp_Malformed(t *testing.T) {
	bad := []string{
		"",
		"00:00",
		"00:00:00:00",
		"aa:bb:cc",
		"00:-1:00",
		"1:2",
		"00.00.00",
		"00:00:1.5",
	}
	for _, in := range bad {
		if _, err := FromTimestamp(in); !errs.IsMalformedOutput(err) {
			t.Errorf("FromTimestamp(%q): expected malformed-output error, got %v", in, err)
		}
	}
}

func TestFromTimestamp_WideHours(t *testing.T) {
	got, err := FromTimestamp("100:00:01")
	if err != nil {
		t.Fatalf("FromTimestamp: %v", err)
	}
	if got != 360001 {
		t.Fatalf("expected 360001, got %v", got)
	}
}
