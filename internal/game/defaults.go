package game

// Ids of the content used when a definition set is empty.
const (
	DefaultRoomId  = "start_room"
	DefaultItemId  = "basic_potion"
	DefaultEnemyId = "basic_enemy"
	DefaultQuestId = "tutorial_quest"
	DefaultMazeId  = "tutorial_maze"
)

func defaultRoom() *Room {
	return &Room{
		Title:       "Castle Entrance",
		Description: "You stand before an ancient castle gate. The weathered stone walls loom high above you.",
	}
}

func defaultItem() *Item {
	return &Item{
		Name:        "Basic Potion",
		Description: "A simple healing potion.",
		Type:        "consumable",
		Effects:     &Effects{Health: 20},
		Usable:      true,
		Consumable:  true,
	}
}

func defaultEnemy() *Enemy {
	return &Enemy{
		Name:        "Castle Guard",
		Description: "A basic enemy guard.",
		Health:      50,
		Attack:      10,
		Defense:     5,
		Experience:  50,
	}
}

func defaultQuest() *Quest {
	return &Quest{
		Title:       "Castle Explorer",
		Description: "Explore the castle grounds.",
		AutoStart:   true,
		Objectives: []Objective{
			{Type: ObjectiveVisit, Target: DefaultRoomId, Quantity: 1},
		},
		Rewards: Rewards{Experience: 50},
	}
}

func defaultMaze() *Maze {
	return &Maze{
		Name:        "Practice Maze",
		Description: "A simple training maze.",
		GridSize:    GridSize{Width: 3, Height: 3},
		Start:       Point{X: 0, Y: 0},
		End:         Point{X: 2, Y: 2},
	}
}
