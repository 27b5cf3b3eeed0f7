package qcircuit

// Sampler is a source of uniform draws in [0, 1).
type Sampler interface {
	Float64() float64
}

/*
Allocate is the resource allocation heuristic. No optimisation circuit is
built: each resource joins the allocation independently with probability
equal to its own weight, and the energy is the summed weight of the chosen
resources. Constraints are accepted by the task but not applied.

TODO: replace with a QAOA circuit over the constraint Hamiltonian once the
Circuit model has parameterised rotations.
*/
func Allocate(resources []float64, sampler Sampler) ([]int, float64) {
	allocation := make([]int, len(resources))
	var energy float64

	for i, r := range resources {
		if sampler.Float64() < r {
			allocation[i] = 1
			energy += r
		}
	}

	return allocation, energy
}
