package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aimlfun/1969lander/internal/lander"
)

func newTestSimulator(t *testing.T) *lander.Simulator {
	t.Helper()
	sim, err := lander.NewSimulator(lander.DefaultConfig())
	if err != nil {
		t.Fatalf("new simulator: %v", err)
	}
	return sim
}

func TestSessionRepromptsOnInvalidInput(t *testing.T) {
	// Garbage, a rate under the throttle floor, and one over the ceiling,
	// then coast to the surface.
	in := strings.NewReader("abc\n5\n300\n" + strings.Repeat("0\n", 20))
	var out bytes.Buffer

	session := NewSession(in, &out, newTestSimulator(t))
	outcome, err := session.Play()
	if err != nil {
		t.Fatalf("play: %v", err)
	}

	printed := out.String()
	if got := strings.Count(printed, "NOT POSSIBLE"); got != 3 {
		t.Fatalf("expected 3 rejections, got %d in:\n%s", got, printed)
	}
	if !strings.Contains(printed, "ON THE MOON AT") {
		t.Fatalf("missing touchdown line in:\n%s", printed)
	}
	if !strings.Contains(printed, lander.RatingFatal.Report()) {
		t.Fatalf("missing verdict in:\n%s", printed)
	}
	if outcome.Rating != lander.RatingFatal {
		t.Fatalf("free fall rating = %s, want fatal", outcome.Rating)
	}
}

func TestSessionInvalidInputLeavesStateUntouched(t *testing.T) {
	sim := newTestSimulator(t)
	in := strings.NewReader("banana\n-4\n" + strings.Repeat("0\n", 20))
	var out bytes.Buffer

	session := NewSession(in, &out, sim)
	// Two rejections happen before any legal command, so the first status
	// line must still show the initial orbital condition.
	if _, err := session.Play(); err != nil {
		t.Fatalf("play: %v", err)
	}

	first := strings.SplitN(out.String(), "\n", 7)[5]
	if !strings.Contains(first, "120") {
		t.Fatalf("first status line %q should report 120 miles", first)
	}
}

func TestSessionClosedInputIsAnError(t *testing.T) {
	in := strings.NewReader("0\n") // input ends mid-descent
	var out bytes.Buffer

	session := NewSession(in, &out, newTestSimulator(t))
	if _, err := session.Play(); err == nil {
		t.Fatal("expected an error when control input closes mid-descent")
	}
}
