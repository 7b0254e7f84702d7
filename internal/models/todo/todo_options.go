package todo

// TodoOption — функция изменения записи при обновлении.
type TodoOption func(*Todo)

func WithContent(content string) TodoOption {
	return func(t *Todo) {
		t.Content = content
	}
}

func WithCompleted(completed bool) TodoOption {
	return func(t *Todo) {
		t.Completed = completed
	}
}
