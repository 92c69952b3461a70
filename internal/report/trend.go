// Copyright 2025 The contribgraph authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package report

import "time"

// fitTrend fits y = ax^2 + bx + c to the series by least squares and returns
// the fitted value for each input month. With fewer than three points the
// system is underdetermined and no trend is produced. The x axis is the month
// index (year*12 + month) shifted to start at zero, which keeps the normal
// equations well conditioned for typical date ranges.
func fitTrend(points []Point) []TrendPoint {
	if len(points) < 3 {
		return nil
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	base := monthIndex(points[0].Month)
	for i, p := range points {
		xs[i] = float64(monthIndex(p.Month) - base)
		ys[i] = float64(p.Value)
	}

	a, b, c, ok := quadFit(xs, ys)
	if !ok {
		return nil
	}

	trend := make([]TrendPoint, len(points))
	for i, p := range points {
		x := xs[i]
		trend[i] = TrendPoint{Month: p.Month, Value: a*x*x + b*x + c}
	}
	return trend
}

func monthIndex(month string) int {
	t, err := time.Parse(monthLayout, month)
	if err != nil {
		return 0
	}
	return t.Year()*12 + int(t.Month())
}

// quadFit solves the 3x3 normal equations of the quadratic least-squares
// problem by Gaussian elimination with partial pivoting. ok is false when the
// system is singular, which happens when all x values coincide.
func quadFit(xs, ys []float64) (a, b, c float64, ok bool) {
	var s0, s1, s2, s3, s4 float64
	var t0, t1, t2 float64
	for i, x := range xs {
		x2 := x * x
		s0++
		s1 += x
		s2 += x2
		s3 += x2 * x
		s4 += x2 * x2
		t0 += ys[i]
		t1 += x * ys[i]
		t2 += x2 * ys[i]
	}

	m := [3][4]float64{
		{s4, s3, s2, t2},
		{s3, s2, s1, t1},
		{s2, s1, s0, t0},
	}

	for col := 0; col < 3; col++ {
		pivot := col
		for row := col + 1; row < 3; row++ {
			if abs(m[row][col]) > abs(m[pivot][col]) {
				pivot = row
			}
		}
		if abs(m[pivot][col]) < 1e-12 {
			return 0, 0, 0, false
		}
		m[col], m[pivot] = m[pivot], m[col]

		for row := 0; row < 3; row++ {
			if row == col {
				continue
			}
			factor := m[row][col] / m[col][col]
			for k := col; k < 4; k++ {
				m[row][k] -= factor * m[col][k]
			}
		}
	}

	return m[0][3] / m[0][0], m[1][3] / m[1][1], m[2][3] / m[2][2], true
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
