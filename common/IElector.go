package common

import (
	"github.com/MattSScott/basePlatformSOMAS/v2/pkg/agent"
	"gonum.org/v1/gonum/mat"
)

type IElector interface {
	agent.IAgent[IElector]

	// Getters
	GetName() int
	GetSincereUtilities() []float64
	GetStrategicUtilities() []float64
	GetLeastPreferred() int
	GetChosenCandidate() int

	// Setters
	SetName(name int)
	SetSincereUtilities(raw []float64) error

	// Strategic decisions
	InitStrategicUtilities(minUtil float64)
	UpdateStrategicUtilities(pivotality mat.Matrix, minUtil float64) error
	ChooseCandidate() int

	// Info
	LogSelfInfo()
}
