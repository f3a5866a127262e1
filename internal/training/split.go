package training

import (
	"math/rand"
	"sort"
)

// StratifiedSplit partitions row indices into train and test sets while
// preserving the class proportions of y. Each class is shuffled with the
// supplied generator, so a fixed seed reproduces the split. Returned
// index slices are sorted ascending.
func StratifiedSplit(y []int, testFraction float64, rng *rand.Rand) (trainIdx, testIdx []int) {
	byClass := map[int][]int{}
	classes := []int{}
	for i, label := range y {
		if _, ok := byClass[label]; !ok {
			classes = append(classes, label)
		}
		byClass[label] = append(byClass[label], i)
	}
	sort.Ints(classes)

	for _, label := range classes {
		indices := byClass[label]
		rng.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})

		nTest := int(float64(len(indices))*testFraction + 0.5)
		if nTest == 0 && len(indices) > 1 {
			nTest = 1
		}
		if nTest >= len(indices) {
			nTest = len(indices) - 1
		}

		testIdx = append(testIdx, indices[:nTest]...)
		trainIdx = append(trainIdx, indices[nTest:]...)
	}

	sort.Ints(trainIdx)
	sort.Ints(testIdx)
	return trainIdx, testIdx
}
