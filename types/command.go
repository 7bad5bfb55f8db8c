package types

import (
	"errors"
	"fmt"
)

type Action string

const (
	CreateList     Action = "CreateList"
	DeleteList     Action = "DeleteList"
	ListAll        Action = "ListAll"
	Append         Action = "Append"
	InsertAt       Action = "InsertAt"
	AddAlternative Action = "AddAlternative"
	AddAll         Action = "AddAll"
	Remove         Action = "Remove"
	Get            Action = "Get"
	IndexOf        Action = "IndexOf"
	Size           Action = "Size"
	Equals         Action = "Equals"
	Show           Action = "Show"
	ShowReverse    Action = "ShowReverse"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrMissingList   = errors.New("list name is required")
	ErrMissingOther  = errors.New("other list name is required")
)

// Command is one list operation as it travels over the queue or HTTP.
// Other names the source list for CreateList and the right-hand side
// for Equals.
type Command struct {
	Action Action `json:"action"`
	List   string `json:"list,omitempty"`
	Value  int    `json:"value,omitempty"`
	Index  int    `json:"index,omitempty"`
	Values []int  `json:"values,omitempty"`
	Other  string `json:"other,omitempty"`
}

func (c *Command) Validate() error {
	switch c.Action {
	case ListAll:
		return nil
	case CreateList, DeleteList, Append, InsertAt, AddAlternative, AddAll,
		Remove, Get, IndexOf, Size, Show, ShowReverse:
	case Equals:
		if c.Other == "" {
			return fmt.Errorf("%s: %w", c.Action, ErrMissingOther)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, c.Action)
	}

	if c.List == "" {
		return fmt.Errorf("%s: %w", c.Action, ErrMissingList)
	}

	return nil
}
