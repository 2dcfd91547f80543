package square

const eventSource = "square"

type creatureDiedEvent struct {
	Creature string `json:"creature"`
	Square   string `json:"square"`
	Cause    string `json:"cause"`
}

type itemsDestroyedEvent struct {
	Square string `json:"square"`
	Count  int    `json:"count"`
}
