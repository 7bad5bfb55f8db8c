package server

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"dlist/types"
)

var (
	ErrUnknownList = errors.New("unknown list")
	ErrListExists  = errors.New("list already exists")
)

// Result is the outcome of one applied command.
type Result struct {
	Action types.Action `json:"action"`
	List   string       `json:"list,omitempty"`
	Output string       `json:"output"`
}

// View is a read-only snapshot of a named list.
type View struct {
	List    string `json:"list"`
	Values  []int  `json:"values"`
	Size    int    `json:"size"`
	Forward string `json:"forward"`
	Reverse string `json:"reverse"`
}

// Store holds named lists in creation order. Lists are not safe for
// concurrent use, so every access goes through mu.
type Store struct {
	mu    sync.Mutex
	lists *types.OrderedMap[string, *types.List]
}

func NewStore() *Store {
	return &Store{
		lists: types.NewOrderedMap[string, *types.List](),
	}
}

func (s *Store) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lists.Keys()
}

func (s *Store) View(name string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.lookup(name)
	if err != nil {
		return View{}, err
	}

	return View{
		List:    name,
		Values:  l.Values(),
		Size:    l.Size(),
		Forward: l.String(),
		Reverse: l.StringReverse(),
	}, nil
}

func (s *Store) lookup(name string) (*types.List, error) {
	l, ok := s.lists.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownList, name)
	}
	return l, nil
}

// Apply validates and runs cmd against the named list.
func (s *Store) Apply(cmd *types.Command) (Result, error) {
	if err := cmd.Validate(); err != nil {
		return Result{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	output, err := s.apply(cmd)
	if err != nil {
		return Result{}, fmt.Errorf("%s(%s): %w", cmd.Action, cmd.List, err)
	}

	return Result{Action: cmd.Action, List: cmd.List, Output: output}, nil
}

func (s *Store) apply(cmd *types.Command) (string, error) {
	switch cmd.Action {
	case types.ListAll:
		return "[" + strings.Join(s.lists.Keys(), ", ") + "]", nil
	case types.CreateList:
		return s.create(cmd)
	case types.DeleteList:
		if !s.lists.Delete(cmd.List) {
			return "", fmt.Errorf("%w: %q", ErrUnknownList, cmd.List)
		}
		return "deleted", nil
	}

	l, err := s.lookup(cmd.List)
	if err != nil {
		return "", err
	}

	switch cmd.Action {
	case types.Append:
		l.Append(cmd.Value)
		return l.String(), nil
	case types.InsertAt:
		if err := l.InsertAt(cmd.Index, cmd.Value); err != nil {
			return "", err
		}
		return l.String(), nil
	case types.AddAlternative:
		l.AddAlternative(cmd.Value)
		return l.String(), nil
	case types.AddAll:
		if err := l.AddAll(cmd.Index, cmd.Values...); err != nil {
			return "", err
		}
		return l.String(), nil
	case types.Remove:
		if err := l.Remove(cmd.Index); err != nil {
			return "", err
		}
		return l.String(), nil
	case types.Get:
		v, err := l.Get(cmd.Index)
		if err != nil {
			return "", err
		}
		return fmt.Sprint(v), nil
	case types.IndexOf:
		return fmt.Sprint(l.IndexOf(cmd.Value)), nil
	case types.Size:
		return fmt.Sprint(l.Size()), nil
	case types.Equals:
		other, err := s.lookup(cmd.Other)
		if err != nil {
			return "", err
		}
		return fmt.Sprint(l.Equal(other)), nil
	case types.Show:
		return l.String(), nil
	case types.ShowReverse:
		return l.StringReverse(), nil
	default:
		return "", fmt.Errorf("%w: %q", types.ErrUnknownAction, cmd.Action)
	}
}

// create makes an empty list, or when Other is set, a list holding Value
// followed by a copy of Other.
func (s *Store) create(cmd *types.Command) (string, error) {
	if _, exists := s.lists.Get(cmd.List); exists {
		return "", fmt.Errorf("%w: %q", ErrListExists, cmd.List)
	}

	l := types.NewList()
	if cmd.Other != "" {
		rest, err := s.lookup(cmd.Other)
		if err != nil {
			return "", err
		}
		l = types.Prepend(cmd.Value, rest)
	}

	s.lists.Set(cmd.List, l)
	return l.String(), nil
}
