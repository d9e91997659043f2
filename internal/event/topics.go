package event

// Session describes the game that was just started or loaded.
type Session struct {
	RoomId string `json:"roomId"`
	Level  int    `json:"level"`
}

// Slot names a persistence slot.
type Slot struct {
	Name string `json:"slot"`
}

type Text struct {
	Text string `json:"text"`
}

type RoomView struct {
	Id          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Exits       []string   `json:"exits"`
	ItemNames   []ItemName `json:"itemNames"`
	EnemyNames  []string   `json:"enemyNames"`
}

type Stats struct {
	Health       int            `json:"health"`
	MaxHealth    int            `json:"maxHealth"`
	Magic        int            `json:"magic"`
	MaxMagic     int            `json:"maxMagic"`
	Level        int            `json:"level"`
	Experience   int            `json:"experience"`
	NextLevelExp int            `json:"nextLevelExp"`
	Stats        map[string]int `json:"stats"`
}

type ItemName struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Inventory struct {
	Inventory []string   `json:"inventory"`
	Items     []ItemName `json:"items"`
}

type MapView struct {
	CurrentRoom   string   `json:"currentRoom"`
	ExploredRooms []string `json:"exploredRooms"`
}

type DataCounts struct {
	Rooms   int `json:"rooms"`
	Items   int `json:"items"`
	Enemies int `json:"enemies"`
	Quests  int `json:"quests"`
	Mazes   int `json:"mazes"`
}

type Objective struct {
	Description string `json:"description"`
	Progress    int    `json:"progress"`
	Quantity    int    `json:"quantity"`
	Completed   bool   `json:"completed"`
}

type Quest struct {
	Id         string      `json:"id"`
	Title      string      `json:"title"`
	State      string      `json:"state"`
	Stage      int         `json:"stage"`
	Objectives []Objective `json:"objectives"`
}

var (
	GameStarted      = NewTopic[Session]("gameStarted")
	GameLoaded       = NewTopic[Session]("gameLoaded")
	GameSaved        = NewTopic[Slot]("gameSaved")
	SaveDeleted      = NewTopic[Slot]("saveDeleted")
	RoomEntered      = NewTopic[RoomView]("roomEntered")
	Message          = NewTopic[Text]("message")
	StatsUpdated     = NewTopic[Stats]("statsUpdated")
	InventoryUpdated = NewTopic[Inventory]("inventoryUpdated")
	MapUpdated       = NewTopic[MapView]("mapUpdated")
	DataLoaded       = NewTopic[DataCounts]("dataLoaded")
	QuestUpdated     = NewTopic[Quest]("questUpdated")
	Error            = NewTopic[Text]("error")
)

// All lists the topic names the game publishes.
func All() []string {
	return []string{
		GameStarted.Name(),
		GameLoaded.Name(),
		GameSaved.Name(),
		SaveDeleted.Name(),
		RoomEntered.Name(),
		Message.Name(),
		StatsUpdated.Name(),
		InventoryUpdated.Name(),
		MapUpdated.Name(),
		DataLoaded.Name(),
		QuestUpdated.Name(),
		Error.Name(),
	}
}
