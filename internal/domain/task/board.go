package task

// Column is one status lane of the task board.
type Column struct {
	Status Status `json:"status"`
	Tasks  []Task `json:"tasks"`
}

// Board splits tasks into one column per status, in board order. Tasks keep
// their relative order within a column.
func Board(tasks []Task) []Column {
	statuses := Statuses()
	cols := make([]Column, len(statuses))
	index := make(map[Status]int, len(statuses))
	for i, s := range statuses {
		cols[i] = Column{Status: s, Tasks: []Task{}}
		index[s] = i
	}
	for _, t := range tasks {
		if i, ok := index[t.Status]; ok {
			cols[i].Tasks = append(cols[i].Tasks, t)
		}
	}
	return cols
}
