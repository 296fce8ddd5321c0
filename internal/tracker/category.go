package tracker

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"unicode"
)

// tagPrefix marks the category token in a task description.
const tagPrefix = '#'

// ExtractCategory splits a free-text description into a category and the
// description with the category tag removed.
//
// The first word beginning at the first '#' is the category, tag prefix
// included. Text before it (right-trimmed) and the words after it form the
// cleaned name. Later '#' words stay in the name. A description without a
// '#', or whose first '#' word is the bare "#", is [Uncategorized] and is
// returned unchanged.
//
//	ExtractCategory("write report #work on Q3") // "#work", "write report on Q3"
func ExtractCategory(description string) (string, string) {
	idx := strings.IndexByte(description, tagPrefix)
	if idx < 0 {
		return Uncategorized, description
	}

	words := strings.Fields(description[idx:])
	if len(words) == 0 || words[0] == string(tagPrefix) {
		return Uncategorized, description
	}

	before := strings.TrimRightFunc(description[:idx], unicode.IsSpace)
	rest := strings.Join(words[1:], " ")

	switch {
	case before == "":
		return words[0], rest
	case rest == "":
		return words[0], before
	default:
		return words[0], before + " " + rest
	}
}

// Store maps category names to their tasks in insertion order.
// It is the entire persisted state.
//
// Store is not safe for concurrent use.
type Store struct {
	Categories map[string][]*Task `json:"categories"`
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{Categories: make(map[string][]*Task)}
}

// AddCategory creates an empty category if name is not present.
func (s *Store) AddCategory(name string) {
	if s.Categories == nil {
		s.Categories = make(map[string][]*Task)
	}

	if _, ok := s.Categories[name]; !ok {
		s.Categories[name] = []*Task{}
	}
}

// FileTask extracts the category from the task's name, rewrites the name to
// its cleaned form, and appends the task to that category. It returns the
// category the task was filed under.
func (s *Store) FileTask(task *Task) string {
	category, name := ExtractCategory(task.Name)
	task.Name = name

	s.AddCategory(category)
	s.Categories[category] = append(s.Categories[category], task)

	return category
}

// CategoryNames returns all category names in lexical order.
func (s *Store) CategoryNames() []string {
	names := make([]string, 0, len(s.Categories))
	for name := range s.Categories {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Tasks yields every task with its category, categories in lexical order
// and tasks in insertion order.
func (s *Store) Tasks() iter.Seq2[string, *Task] {
	return func(yield func(string, *Task) bool) {
		for _, category := range s.CategoryNames() {
			for _, task := range s.Categories[category] {
				if !yield(category, task) {
					return
				}
			}
		}
	}
}

// Find returns the first task named name in category.
func (s *Store) Find(category, name string) (*Task, bool) {
	for _, task := range s.Categories[category] {
		if task.Name == name {
			return task, true
		}
	}

	return nil, false
}

// FirstWithStatus returns the first task in [Store.Tasks] order with status.
func (s *Store) FirstWithStatus(status Status) (Ref, bool) {
	for category, task := range s.Tasks() {
		if task.Status == status {
			return Ref{Category: category, Task: task}, true
		}
	}

	return Ref{}, false
}

// Len returns the total number of tasks.
func (s *Store) Len() int {
	n := 0
	for _, tasks := range s.Categories {
		n += len(tasks)
	}

	return n
}

// Validate checks every task's invariants.
func (s *Store) Validate() error {
	for category, task := range s.Tasks() {
		if task == nil {
			return fmt.Errorf("category %q: %w", category, ErrNilTask)
		}

		err := task.Validate()
		if err != nil {
			return fmt.Errorf("category %q, task %q: %w", category, task.Name, err)
		}
	}

	return nil
}

// Ref locates a task inside a [Store].
type Ref struct {
	Category string
	Task     *Task
}
