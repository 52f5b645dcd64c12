// Package model holds the six two-state diabatic models whose adiabatic
// energies and nonadiabatic coupling are tabulated for plotting.
package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Domain describes where a model is sampled. X0 is the initial wavepacket
// centre used by dynamics runs; Left and Right bound the tabulated grid.
type Domain struct {
	X0     float64
	Left   float64
	Right  float64
	States int
}

// NumericalModel fills the diabatic Hamiltonian and its derivative with
// respect to x. Both matrices are States×States and symmetric.
type NumericalModel interface {
	Name() string
	Domain() Domain
	Hamiltonian(h *mat.SymDense, x float64)
	DHamiltonian(dh *mat.SymDense, x float64)
}

// All returns the models in registry order.
func All() []NumericalModel {
	return []NumericalModel{SAC{}, DAC{}, ECR{}, DBG{}, DAG{}, DRN{}}
}

// ByName returns the model with the given name.
func ByName(name string) (NumericalModel, error) {
	for _, m := range All() {
		if m.Name() == name {
			return m, nil
		}
	}
	return nil, fmt.Errorf("unknown model: %s", name)
}

// set2 writes a symmetric 2×2 matrix.
func set2(m *mat.SymDense, h11, h22, h12 float64) {
	m.SetSym(0, 0, h11)
	m.SetSym(1, 1, h22)
	m.SetSym(0, 1, h12)
}

// SAC is Tully's single avoided crossing.
type SAC struct{}

func (SAC) Name() string   { return "SAC" }
func (SAC) Domain() Domain { return Domain{X0: -17.5, Left: -10, Right: 10, States: 2} }

func (SAC) Hamiltonian(h *mat.SymDense, x float64) {
	flag := -1.0
	if x > 0 {
		flag = 1
	}
	h11 := flag * 0.01 * (1 - math.Exp(-flag*1.6*x))
	set2(h, h11, -h11, 0.005*math.Exp(-x*x))
}

func (SAC) DHamiltonian(dh *mat.SymDense, x float64) {
	sign := -1.0
	if x < 0 {
		sign = 1
	}
	d11 := 0.01 * 1.6 * math.Exp(sign*1.6*x)
	set2(dh, d11, -d11, -2*0.005*x*math.Exp(-x*x))
}

// DAC is Tully's dual avoided crossing.
type DAC struct{}

func (DAC) Name() string   { return "DAC" }
func (DAC) Domain() Domain { return Domain{X0: -17.5, Left: -15, Right: 15, States: 2} }

func (DAC) Hamiltonian(h *mat.SymDense, x float64) {
	set2(h, 0, -0.1*math.Exp(-0.28*x*x)+0.05, 0.015*math.Exp(-0.06*x*x))
}

func (DAC) DHamiltonian(dh *mat.SymDense, x float64) {
	set2(dh, 0, 2*0.1*0.28*x*math.Exp(-0.28*x*x), -2*0.015*0.06*x*math.Exp(-0.06*x*x))
}

// ECR is Tully's extended coupling with reflection.
type ECR struct{}

func (ECR) Name() string   { return "ECR" }
func (ECR) Domain() Domain { return Domain{X0: -17.5, Left: -15, Right: 15, States: 2} }

func (ECR) Hamiltonian(h *mat.SymDense, x float64) {
	h12 := 0.1 * (2 - math.Exp(-0.9*x))
	if x < 0 {
		h12 = 0.1 * math.Exp(0.9*x)
	}
	set2(h, 6e-4, -6e-4, h12)
}

func (ECR) DHamiltonian(dh *mat.SymDense, x float64) {
	sign := 1.0
	if x > 0 {
		sign = -1
	}
	set2(dh, 0, 0, 0.1*0.9*math.Exp(sign*0.9*x))
}

// Double-well coupling parameters shared by DBG and DAG.
const (
	wellB = 0.1
	wellC = 0.9
)

// DBG is the double arch with coupling that grows outside the wells.
type DBG struct{}

const dbgZ = 10

func (DBG) Name() string   { return "DBG" }
func (DBG) Domain() Domain { return Domain{X0: -22.5, Left: -20, Right: 20, States: 2} }

func (DBG) Hamiltonian(h *mat.SymDense, x float64) {
	b, c, z := wellB, wellC, float64(dbgZ)
	var h12 float64
	switch {
	case x < -z:
		h12 = b*math.Exp(c*(x-z)) + b*(2-math.Exp(c*(x+z)))
	case x < z:
		h12 = b*math.Exp(c*(x-z)) + b*math.Exp(-c*(x+z))
	default:
		h12 = b*math.Exp(-c*(x+z)) + b*(2-math.Exp(-c*(x-z)))
	}
	set2(h, 6e-4, -6e-4, h12)
}

func (DBG) DHamiltonian(dh *mat.SymDense, x float64) {
	b, c, z := wellB, wellC, float64(dbgZ)
	var d12 float64
	switch {
	case x < -z:
		d12 = b*c*math.Exp(c*(x-z)) - b*c*math.Exp(c*(x+z))
	case x < z:
		d12 = b*c*math.Exp(c*(x-z)) - b*c*math.Exp(-c*(x+z))
	default:
		d12 = -b*c*math.Exp(-c*(x+z)) + b*c*math.Exp(-c*(x-z))
	}
	set2(dh, 0, 0, d12)
}

// DAG is the double arch with coupling confined between the wells.
type DAG struct{}

const dagZ = 4

func (DAG) Name() string   { return "DAG" }
func (DAG) Domain() Domain { return Domain{X0: -27.5, Left: -20, Right: 20, States: 2} }

func (DAG) Hamiltonian(h *mat.SymDense, x float64) {
	b, c, z := wellB, wellC, float64(dagZ)
	var h12 float64
	switch {
	case x < -z:
		h12 = -b*math.Exp(c*(x-z)) + b*math.Exp(c*(x+z))
	case x < z:
		h12 = -b*math.Exp(c*(x-z)) - b*math.Exp(-c*(x+z)) + 2*b
	default:
		h12 = b*math.Exp(-c*(x-z)) - b*math.Exp(-c*(x+z))
	}
	set2(h, 6e-4, -6e-4, h12)
}

func (DAG) DHamiltonian(dh *mat.SymDense, x float64) {
	b, c, z := wellB, wellC, float64(dagZ)
	var d12 float64
	switch {
	case x < -z:
		d12 = -b*c*math.Exp(c*(x-z)) + b*c*math.Exp(c*(x+z))
	case x < z:
		d12 = -b*c*math.Exp(c*(x-z)) + b*c*math.Exp(-c*(x+z))
	default:
		d12 = -b*c*math.Exp(-c*(x-z)) + b*c*math.Exp(-c*(x+z))
	}
	set2(dh, 0, 0, d12)
}

// DRN is the double Gaussian coupling (dual resonance) model.
type DRN struct{}

func (DRN) Name() string   { return "DRN" }
func (DRN) Domain() Domain { return Domain{X0: -12.5, Left: -10, Right: 10, States: 2} }

func (DRN) Hamiltonian(h *mat.SymDense, x float64) {
	h12 := 0.03 * (math.Exp(-3.2*(x-2)*(x-2)) + math.Exp(-3.2*(x+2)*(x+2)))
	set2(h, 0, 0.01, h12)
}

func (DRN) DHamiltonian(dh *mat.SymDense, x float64) {
	d12 := 0.03 * (-2 * 3.2 * ((x-2)*math.Exp(-3.2*(x-2)*(x-2)) + (x+2)*math.Exp(-3.2*(x+2)*(x+2))))
	set2(dh, 0, 0, d12)
}
