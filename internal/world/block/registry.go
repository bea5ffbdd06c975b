package block

// BlockID представляет идентификатор вида блока
type BlockID uint8

// Константы ID блоков
const (
	AirBlockID BlockID = iota
	GrassBlockID
	DirtBlockID
	StoneBlockID
	SandBlockID
	SnowBlockID
	WaterSourceBlockID
	WaterFlowingBlockID
	LogBlockID
	LeavesBlockID
	SaplingBlockID
	Wheat1BlockID
	Wheat2BlockID
	Wheat3BlockID

	blockCount
)

// Descriptor статическое описание вида блока.
// Таблица дескрипторов неизменяема на всё время жизни процесса.
type Descriptor struct {
	Name        string
	Solid       bool // участвует в коллизиях и трассировке луча
	Transparent bool // не закрывает грани соседей при построении меша
	Selectable  bool // может быть установлен игроком
	Tickable    bool // имеет запись в планировщике тиков
	Liquid      bool
	Replaceable bool // place может записать поверх
}

var descriptors = [blockCount]Descriptor{
	AirBlockID:          {Name: "Air", Transparent: true, Replaceable: true},
	GrassBlockID:        {Name: "Grass", Solid: true, Selectable: true},
	DirtBlockID:         {Name: "Dirt", Solid: true, Selectable: true},
	StoneBlockID:        {Name: "Stone", Solid: true, Selectable: true},
	SandBlockID:         {Name: "Sand", Solid: true, Selectable: true},
	SnowBlockID:         {Name: "Snow", Solid: true, Selectable: true},
	WaterSourceBlockID:  {Name: "WaterSource", Transparent: true, Selectable: true, Liquid: true, Replaceable: true},
	WaterFlowingBlockID: {Name: "WaterFlowing", Transparent: true, Liquid: true, Replaceable: true},
	LogBlockID:          {Name: "Log", Solid: true, Selectable: true},
	LeavesBlockID:       {Name: "Leaves", Solid: true, Transparent: true, Replaceable: true},
	SaplingBlockID:      {Name: "Sapling", Transparent: true, Selectable: true, Tickable: true},
	Wheat1BlockID:       {Name: "Wheat1", Transparent: true, Selectable: true, Tickable: true},
	Wheat2BlockID:       {Name: "Wheat2", Transparent: true, Tickable: true},
	Wheat3BlockID:       {Name: "Wheat3", Transparent: true},
}

// Describe возвращает дескриптор вида. Для неизвестного ID возвращается дескриптор воздуха.
func Describe(id BlockID) Descriptor {
	if !IsValidBlockID(id) {
		return descriptors[AirBlockID]
	}
	return descriptors[id]
}

// IsValidBlockID проверяет, является ли ID допустимым идентификатором блока
func IsValidBlockID(id BlockID) bool {
	return id < blockCount
}

// All возвращает все зарегистрированные виды в порядке ID
func All() []BlockID {
	ids := make([]BlockID, 0, blockCount)
	for id := BlockID(0); id < blockCount; id++ {
		ids = append(ids, id)
	}
	return ids
}

// Selectable возвращает виды, доступные игроку для установки
func Selectable() []BlockID {
	var ids []BlockID
	for _, id := range All() {
		if descriptors[id].Selectable {
			ids = append(ids, id)
		}
	}
	return ids
}

func (id BlockID) String() string        { return Describe(id).Name }
func (id BlockID) IsSolid() bool         { return Describe(id).Solid }
func (id BlockID) IsTransparent() bool   { return Describe(id).Transparent }
func (id BlockID) IsSelectable() bool    { return Describe(id).Selectable }
func (id BlockID) IsTickable() bool      { return Describe(id).Tickable }
func (id BlockID) IsLiquid() bool        { return Describe(id).Liquid }
func (id BlockID) IsReplaceable() bool   { return Describe(id).Replaceable }
func (id BlockID) IsAir() bool           { return id == AirBlockID }
func (id BlockID) IsEmptyOrLeaves() bool { return id == AirBlockID || id == LeavesBlockID }
func (id BlockID) IsAirOrLiquid() bool   { return id == AirBlockID || Describe(id).Liquid }
