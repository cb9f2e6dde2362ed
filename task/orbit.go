package task

import "fmt"

// Orbit is the state of the escape-time loop for one pixel once it stopped iterating.
// Zx and Zy are the last values of z so coloring never has to re-run the loop.
type Orbit struct {
	Coordinate

	Iterations int
	Zx         float64
	Zy         float64
}

func (o *Orbit) String() string {
	output := "{Orbit "
	output += fmt.Sprintf("Column: %d ", o.Column)
	output += fmt.Sprintf("Row: %d ", o.Row)
	output += fmt.Sprintf("Iterations: %d ", o.Iterations)
	output += fmt.Sprintf("Zx: %f ", o.Zx)
	output += fmt.Sprintf("Zy: %f}", o.Zy)
	return output
}
