package question

import "math/rand"

// NoneOfTheOthers is the fixed terminal option appended to multiple-choice
// questions when requested. Its slot is pinned last when shuffling.
const NoneOfTheOthers = "None of the others"

// Arrange orders a question's answer options. The candidate list is the
// correct answer followed by the wrong answers, plus the terminal "none"
// option when appendNone is set. With shuffling enabled the none option, if
// present, keeps the last slot and only the remaining positions are
// permuted. A nonzero seed makes the arrangement reproducible; zero uses
// ambient randomness. The returned index is the slot of the originally
// correct answer within the final order, which scoring rules reference.
func Arrange(correct string, wrong []string, appendNone, shuffle bool, seed int64) ([]string, int) {
	candidates := make([]string, 0, len(wrong)+2)
	candidates = append(candidates, correct)
	candidates = append(candidates, wrong...)
	if appendNone {
		candidates = append(candidates, NoneOfTheOthers)
	}

	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	if shuffle {
		r := ambient
		if seed != 0 {
			r = rand.New(rand.NewSource(seed))
		}
		n := len(order)
		if appendNone {
			n-- // keep the none option pinned last
		}
		r.Shuffle(n, func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
	}

	ordered := make([]string, len(candidates))
	correctIndex := 0
	for slot, k := range order {
		ordered[slot] = candidates[k]
		if k == 0 {
			correctIndex = slot
		}
	}
	return ordered, correctIndex
}

var ambient = rand.New(rand.NewSource(rand.Int63()))
