package ports

// ValueWriter persists a fully resolved resource value to a destination.
// The format hint selects the encoding; an empty hint lets the writer decide
// from the destination path.
type ValueWriter interface {
	Write(value any, destPath, formatName string) error
}

// Plotter renders a fully resolved resource value. With an empty destination
// the plot goes to the terminal; varName optionally narrows the plot to one
// variable of a composite value.
type Plotter interface {
	Plot(value any, varName, destPath string) error
}
