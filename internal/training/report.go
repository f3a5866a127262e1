package training

import (
	"fmt"
	"strings"

	"exo-sense/internal/domain"
)

// ClassMetrics holds per-class validation metrics.
type ClassMetrics struct {
	Name      string
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// ClassificationReport summarises held-out performance of a binary
// classifier.
type ClassificationReport struct {
	NonPlanet ClassMetrics
	Planet    ClassMetrics
	Accuracy  float64
	Support   int
}

// Evaluate computes the classification report for predicted vs true
// binary labels.
func Evaluate(yTrue, yPred []int) ClassificationReport {
	n := len(yTrue)
	correct := 0
	// confusion[actual][predicted]
	var confusion [2][2]int
	for i := range yTrue {
		confusion[yTrue[i]][yPred[i]]++
		if yTrue[i] == yPred[i] {
			correct++
		}
	}

	report := ClassificationReport{
		NonPlanet: classMetrics(domain.LabelNonPlanet, 0, confusion),
		Planet:    classMetrics(domain.LabelPlanet, 1, confusion),
		Support:   n,
	}
	if n > 0 {
		report.Accuracy = float64(correct) / float64(n)
	}
	return report
}

func classMetrics(name string, class int, confusion [2][2]int) ClassMetrics {
	tp := confusion[class][class]
	fp := confusion[1-class][class]
	fn := confusion[class][1-class]

	m := ClassMetrics{Name: name, Support: tp + fn}
	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	return m
}

// String renders the report as an aligned table for logging.
func (r ClassificationReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %9s %9s %9s %9s\n", "", "precision", "recall", "f1", "support")
	for _, m := range []ClassMetrics{r.NonPlanet, r.Planet} {
		fmt.Fprintf(&b, "%-12s %9.3f %9.3f %9.3f %9d\n", m.Name, m.Precision, m.Recall, m.F1, m.Support)
	}
	fmt.Fprintf(&b, "%-12s %39.3f %9d", "accuracy", r.Accuracy, r.Support)
	return b.String()
}
