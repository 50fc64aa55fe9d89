package audit

import "github.com/OFFIS-RIT/greenlens/pkg/common"

const maxScore = 10

// PreliminaryScore computes min(10, round(10*(1.2*contradicted + 0.5*unsubstantiated)/total))
// with ties rounded to even. It is computed on integers as (12c+5u)/total so
// exact halves are detected without floating point error. An empty report
// scores 0.
func PreliminaryScore(report []common.ClaimVerdict) int {
	total := len(report)
	if total == 0 {
		return 0
	}

	var contradicted, unsubstantiated int
	for _, v := range report {
		switch v.Status {
		case common.StatusContradicted:
			contradicted++
		case common.StatusUnsubstantiated:
			unsubstantiated++
		}
	}

	num := 12*contradicted + 5*unsubstantiated
	q, r := num/total, num%total
	switch {
	case 2*r > total:
		q++
	case 2*r == total && q%2 == 1:
		q++
	}
	return min(maxScore, q)
}
