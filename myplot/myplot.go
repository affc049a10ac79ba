// Package myplot строит графики числа попыток по ширине усечения.
package myplot

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/rbwo1o/Cryptography/myattacks"
)

// ExpectedLog2 возвращает log2 теоретического числа попыток атаки на bits-битный хэш:
// 2^bits для прообраза, 1.25*2^(bits/2) для коллизии
func ExpectedLog2(attack string, bits int) float64 {
	if attack == myattacks.Preimage {
		return float64(bits)
	}
	return float64(bits)/2 + math.Log2(1.25)
}

// TrialPoints - по точке на испытание: X - ширина, Y - log2 числа попыток
func TrialPoints(runs []myattacks.Run) plotter.XYs {
	var pts plotter.XYs
	for _, run := range runs {
		for _, n := range run.Attempts() {
			pts = append(pts, plotter.XY{X: float64(run.Bits), Y: math.Log2(float64(max(n, 1)))})
		}
	}
	return pts
}

// ExpectedPoints - теоретическая кривая для ширин из runs
func ExpectedPoints(attack string, runs []myattacks.Run) plotter.XYs {
	bits := make([]int, 0, len(runs))
	for _, run := range runs {
		bits = append(bits, run.Bits)
	}
	sort.Ints(bits)
	pts := make(plotter.XYs, len(bits))
	for i, b := range bits {
		pts[i].X = float64(b)
		pts[i].Y = ExpectedLog2(attack, b)
	}
	return pts
}

// plotAttack строит график и сохраняет его в файл.
func plotAttack(attack, filename string, runs []myattacks.Run) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s attack: attempts vs output bits", attack)
	p.X.Label.Text = "Output Bits"
	p.Y.Label.Text = "log2(attempts)"

	if err := plotutil.AddScatters(p, "Trials", TrialPoints(runs)); err != nil {
		return err
	}
	if err := plotutil.AddLines(p, "Expected", ExpectedPoints(attack, runs)); err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}

// SaveRuns группирует серии по атакам и сохраняет dir/<attack>.png для каждой.
// Возвращает пути созданных файлов.
func SaveRuns(dir string, runs []myattacks.Run) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create plot directory: %w", err)
	}
	byAttack := make(map[string][]myattacks.Run)
	var order []string
	for _, run := range runs {
		if _, ok := byAttack[run.Attack]; !ok {
			order = append(order, run.Attack)
		}
		byAttack[run.Attack] = append(byAttack[run.Attack], run)
	}

	var files []string
	for _, attack := range order {
		filename := filepath.Join(dir, attack+".png")
		if err := plotAttack(attack, filename, byAttack[attack]); err != nil {
			return files, fmt.Errorf("plot %s: %w", attack, err)
		}
		files = append(files, filename)
	}
	return files, nil
}
