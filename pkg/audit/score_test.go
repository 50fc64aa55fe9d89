package audit

import (
	"testing"

	"github.com/OFFIS-RIT/greenlens/pkg/common"
)

func verdicts(statuses ...common.VerdictStatus) []common.ClaimVerdict {
	out := make([]common.ClaimVerdict, len(statuses))
	for i, s := range statuses {
		out[i] = common.ClaimVerdict{Claim: "claim", Status: s}
	}
	return out
}

func TestPreliminaryScore(t *testing.T) {
	const (
		v = common.StatusVerified
		c = common.StatusContradicted
		u = common.StatusUnsubstantiated
		e = common.StatusError
	)

	tests := []struct {
		name   string
		report []common.ClaimVerdict
		want   int
	}{
		{name: "empty", report: nil, want: 0},
		{name: "all verified", report: verdicts(v, v, v), want: 0},
		{name: "2 contradicted 1 unsubstantiated of 4", report: verdicts(c, c, u, v), want: 7},
		{name: "all contradicted clamps to 10", report: verdicts(c, c), want: 10},
		{name: "single unsubstantiated", report: verdicts(u), want: 5},
		{name: "half rounds to even down", report: verdicts(u, v), want: 2},
		{name: "half rounds to even up", report: verdicts(c, u, u, v), want: 6},
		{name: "contradicted and unsubstantiated of 2", report: verdicts(c, u), want: 8},
		{name: "errors count as neutral", report: verdicts(e, e, c), want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PreliminaryScore(tt.report); got != tt.want {
				t.Fatalf("PreliminaryScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPreliminaryScore_Monotonic(t *testing.T) {
	base := verdicts(common.StatusVerified, common.StatusVerified, common.StatusVerified, common.StatusVerified)
	prev := PreliminaryScore(base)
	for i, s := range []common.VerdictStatus{common.StatusUnsubstantiated, common.StatusUnsubstantiated, common.StatusContradicted, common.StatusContradicted} {
		base[i].Status = s
		got := PreliminaryScore(base)
		if got < prev {
			t.Fatalf("score decreased from %d to %d after marking claim %d %s", prev, got, i, s)
		}
		prev = got
	}

	// Contradicted weighs more than Unsubstantiated.
	if PreliminaryScore(verdicts(common.StatusContradicted, common.StatusVerified, common.StatusVerified)) <=
		PreliminaryScore(verdicts(common.StatusUnsubstantiated, common.StatusVerified, common.StatusVerified)) {
		t.Fatal("contradicted claim must score above unsubstantiated claim")
	}
}
