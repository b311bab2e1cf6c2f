package shapes

type Color string

const (
	Red   Color = "red"
	Green Color = "green"
	Blue  Color = "blue"
)

type Point struct {
	X, Y  int8
	label string
}

type Shape struct {
	Color  Color
	Filled bool
	Origin *Point
}

type Node struct {
	Value bool
	Next  *Node
}

type Tags map[string]struct{}

type Namer interface {
	Name() string
}
