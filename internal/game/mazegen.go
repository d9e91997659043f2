package game

import "github.com/pixil98/go-adventure/internal/combat"

type Cell string

const (
	CellWall  Cell = "wall"
	CellPath  Cell = "path"
	CellStart Cell = "start"
	CellEnd   Cell = "end"
)

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// carveSteps are the two-cell hops considered while carving, in the order
// north, east, south, west.
var carveSteps = []Point{{0, -2}, {2, 0}, {0, 2}, {-2, 0}}

// Carve builds a width by height grid with a randomized depth-first search.
// The grid starts as solid wall; carving begins at a random odd cell,
// which is returned as origin. Every carved cell is reachable from origin.
func Carve(width, height int, r combat.Roller) ([][]Cell, Point) {
	grid := make([][]Cell, height)
	for y := range grid {
		grid[y] = make([]Cell, width)
		for x := range grid[y] {
			grid[y][x] = CellWall
		}
	}

	origin := Point{
		X: r.IntN(max(width/2, 1))*2 + 1,
		Y: r.IntN(max(height/2, 1))*2 + 1,
	}
	if !inBounds(origin, width, height) {
		return grid, origin
	}

	grid[origin.Y][origin.X] = CellPath
	stack := []Point{origin}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		next := uncarved(cur, grid, width, height)
		if len(next) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		n := combat.Pick(r, next)
		grid[cur.Y+(n.Y-cur.Y)/2][cur.X+(n.X-cur.X)/2] = CellPath
		grid[n.Y][n.X] = CellPath
		stack = append(stack, n)
	}

	return grid, origin
}

// uncarved returns the wall cells two steps away that lie strictly inside
// the outer border.
func uncarved(p Point, grid [][]Cell, width, height int) []Point {
	var out []Point
	for _, s := range carveSteps {
		n := Point{p.X + s.X, p.Y + s.Y}
		if n.X > 0 && n.X < width-1 && n.Y > 0 && n.Y < height-1 && grid[n.Y][n.X] == CellWall {
			out = append(out, n)
		}
	}
	return out
}

// Generate carves a grid and marks start and end on it. Whether end can be
// reached from start is not checked here; see MazeInstance.Solvable.
func Generate(width, height int, start, end Point, r combat.Roller) [][]Cell {
	grid, _ := Carve(width, height, r)
	grid[start.Y][start.X] = CellStart
	grid[end.Y][end.X] = CellEnd
	return grid
}

func inBounds(p Point, width, height int) bool {
	return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height
}
