package game

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/pixil98/go-adventure/internal/combat"
	"github.com/pixil98/go-errors"
)

type GridSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Placement puts an item or enemy on a maze cell.
type Placement struct {
	Point
	Id string `json:"id"`
}

// Maze defines a grid puzzle. Without a layout one is generated when the
// instance is created.
type Maze struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	GridSize    GridSize    `json:"grid_size"`
	Start       Point       `json:"start_position"`
	End         Point       `json:"end_position"`
	Layout      [][]Cell    `json:"layout,omitempty"`
	Items       []Placement `json:"items,omitempty"`
	Enemies     []Placement `json:"enemies,omitempty"`
}

// Validate satisfies storage.ValidatingSpec.
func (m *Maze) Validate() error {
	el := errors.NewErrorList()
	w, h := m.GridSize.Width, m.GridSize.Height

	if m.Name == "" {
		el.Add(fmt.Errorf("maze name is required"))
	}
	if w < 3 || h < 3 {
		el.Add(fmt.Errorf("maze must be at least 3x3"))
	}
	if !inBounds(m.Start, w, h) {
		el.Add(fmt.Errorf("start position %v is outside the grid", m.Start))
	}
	if !inBounds(m.End, w, h) {
		el.Add(fmt.Errorf("end position %v is outside the grid", m.End))
	}
	if m.Layout != nil {
		if len(m.Layout) != h {
			el.Add(fmt.Errorf("layout has %d rows, want %d", len(m.Layout), h))
		}
		for y, row := range m.Layout {
			if len(row) != w {
				el.Add(fmt.Errorf("layout row %d has %d cells, want %d", y, len(row), w))
			}
		}
	}
	for _, p := range slices.Concat(m.Items, m.Enemies) {
		if !inBounds(p.Point, w, h) {
			el.Add(fmt.Errorf("placement %s at %v is outside the grid", p.Id, p.Point))
		}
	}

	return el.Err()
}

// MazeInstance is the live state of a Maze definition.
type MazeInstance struct {
	Id   string
	Maze *Maze

	Layout   [][]Cell
	Position Point
	Explored map[Point]bool
	Items    map[Point][]string
	Enemies  map[Point]string
	Solved   bool
}

// NewMazeInstance builds the instance, generating a layout with r when the
// definition has none.
func NewMazeInstance(id string, def *Maze, r combat.Roller) *MazeInstance {
	mi := &MazeInstance{Id: id, Maze: def}

	if def.Layout != nil {
		mi.Layout = make([][]Cell, len(def.Layout))
		for y, row := range def.Layout {
			mi.Layout[y] = slices.Clone(row)
		}
	} else {
		mi.Layout = Generate(def.GridSize.Width, def.GridSize.Height, def.Start, def.End, r)
	}

	mi.Reset()
	return mi
}

func (mi *MazeInstance) Name() string {
	return mi.Maze.Name
}

// Reset puts the player back on the start cell with only it explored.
func (mi *MazeInstance) Reset() {
	mi.Position = mi.Maze.Start
	mi.Explored = map[Point]bool{mi.Maze.Start: true}
	mi.Solved = false

	mi.Items = map[Point][]string{}
	for _, p := range mi.Maze.Items {
		mi.AddItem(p.Point, p.Id)
	}
	mi.Enemies = map[Point]string{}
	for _, p := range mi.Maze.Enemies {
		mi.AddEnemy(p.Point, p.Id)
	}
}

// fits reports whether layout matches the maze's grid size and holds only
// known cells.
func (mi *MazeInstance) fits(layout [][]Cell) bool {
	if len(layout) != mi.height() {
		return false
	}
	for _, row := range layout {
		if len(row) != mi.width() {
			return false
		}
		for _, c := range row {
			switch c {
			case CellWall, CellPath, CellStart, CellEnd:
			default:
				return false
			}
		}
	}
	return true
}

func (mi *MazeInstance) width() int  { return mi.Maze.GridSize.Width }
func (mi *MazeInstance) height() int { return mi.Maze.GridSize.Height }

// IsValidMove reports whether p is inside the grid and not a wall.
func (mi *MazeInstance) IsValidMove(p Point) bool {
	return inBounds(p, mi.width(), mi.height()) && mi.Layout[p.Y][p.X] != CellWall
}

var mazeSteps = map[string]Point{
	"north": {0, -1},
	"south": {0, 1},
	"east":  {1, 0},
	"west":  {-1, 0},
}

// Move steps one cell in dir. It reports false and changes nothing when
// the step is blocked. Reaching the end solves the maze for good.
func (mi *MazeInstance) Move(dir string) bool {
	step, ok := mazeSteps[dir]
	if !ok {
		return false
	}

	next := Point{mi.Position.X + step.X, mi.Position.Y + step.Y}
	if !mi.IsValidMove(next) {
		return false
	}

	mi.Position = next
	mi.Explored[next] = true
	if mi.AtEnd() {
		mi.Solved = true
	}
	return true
}

func (mi *MazeInstance) AtEnd() bool {
	return mi.Position == mi.Maze.End
}

// AvailableMoves lists the open directions from the current cell.
func (mi *MazeInstance) AvailableMoves() []string {
	var out []string
	for _, dir := range Directions {
		s := mazeSteps[dir]
		if mi.IsValidMove(Point{mi.Position.X + s.X, mi.Position.Y + s.Y}) {
			out = append(out, dir)
		}
	}
	return out
}

// VisibleCell is one cell of the area around the player.
type VisibleCell struct {
	Point
	Cell Cell
}

// VisibleArea returns the in-bounds cells within radius of the player, row
// by row.
func (mi *MazeInstance) VisibleArea(radius int) []VisibleCell {
	var out []VisibleCell
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			p := Point{mi.Position.X + dx, mi.Position.Y + dy}
			if inBounds(p, mi.width(), mi.height()) {
				out = append(out, VisibleCell{Point: p, Cell: mi.Layout[p.Y][p.X]})
			}
		}
	}
	return out
}

func (mi *MazeInstance) AddItem(p Point, id string) {
	mi.Items[p] = append(mi.Items[p], id)
}

func (mi *MazeInstance) RemoveItem(p Point, id string) bool {
	items := mi.Items[p]
	i := slices.Index(items, id)
	if i < 0 {
		return false
	}
	items = slices.Delete(items, i, i+1)
	if len(items) == 0 {
		delete(mi.Items, p)
	} else {
		mi.Items[p] = items
	}
	return true
}

// ItemsHere returns the items on the player's cell.
func (mi *MazeInstance) ItemsHere() []string {
	return mi.Items[mi.Position]
}

func (mi *MazeInstance) AddEnemy(p Point, id string) {
	mi.Enemies[p] = id
}

// EnemyHere returns the enemy on the player's cell.
func (mi *MazeInstance) EnemyHere() (string, bool) {
	id, ok := mi.Enemies[mi.Position]
	return id, ok
}

func (mi *MazeInstance) RemoveEnemy(p Point) bool {
	if _, ok := mi.Enemies[p]; !ok {
		return false
	}
	delete(mi.Enemies, p)
	return true
}

// ExploredCells returns the explored cells ordered by row then column.
func (mi *MazeInstance) ExploredCells() []Point {
	out := slices.Collect(maps.Keys(mi.Explored))
	slices.SortFunc(out, comparePoints)
	return out
}

func comparePoints(a, b Point) int {
	if a.Y != b.Y {
		return a.Y - b.Y
	}
	return a.X - b.X
}

// Solvable reports whether the end cell can be reached from the start cell
// through open cells. Carving does not guarantee this.
func (mi *MazeInstance) Solvable() bool {
	start, end := mi.Maze.Start, mi.Maze.End
	if !mi.IsValidMove(start) || !mi.IsValidMove(end) {
		return false
	}

	seen := map[Point]bool{start: true}
	queue := []Point{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == end {
			return true
		}
		for _, s := range mazeSteps {
			n := Point{cur.X + s.X, cur.Y + s.Y}
			if !seen[n] && mi.IsValidMove(n) {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return false
}

// Render draws the maze as text: # wall, S start, E end, @ player, .
// explored path and a space for unexplored path.
func (mi *MazeInstance) Render() []string {
	rows := make([]string, 0, mi.height())
	for y, row := range mi.Layout {
		line := make([]rune, len(row))
		for x, c := range row {
			line[x] = mi.glyph(Point{x, y}, c)
		}
		rows = append(rows, string(line))
	}
	return rows
}

// RenderArea draws the square of cells within radius of the player the way
// Render does. Cells past the edge of the grid are drawn as wall.
func (mi *MazeInstance) RenderArea(radius int) []string {
	side := 2*radius + 1
	grid := make([][]rune, side)
	for y := range grid {
		grid[y] = []rune(strings.Repeat("#", side))
	}
	for _, v := range mi.VisibleArea(radius) {
		grid[v.Y-mi.Position.Y+radius][v.X-mi.Position.X+radius] = mi.glyph(v.Point, v.Cell)
	}

	rows := make([]string, 0, side)
	for _, row := range grid {
		rows = append(rows, string(row))
	}
	return rows
}

func (mi *MazeInstance) glyph(p Point, c Cell) rune {
	switch {
	case p == mi.Position:
		return '@'
	case c == CellWall:
		return '#'
	case c == CellStart:
		return 'S'
	case c == CellEnd:
		return 'E'
	case mi.Explored[p]:
		return '.'
	}
	return ' '
}
