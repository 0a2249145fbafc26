package models

import "fmt"

// Resort is a bookable resort. Features and Environments hold names of rows in
// the features and environments tables and are treated as sets.
type Resort struct {
	ID           int64
	Name         string
	Price        float64
	Features     []string
	Environments []string
}

// Clone returns a copy of r that shares no slices with it.
func (r Resort) Clone() Resort {
	c := r
	c.Features = append([]string(nil), r.Features...)
	c.Environments = append([]string(nil), r.Environments...)
	return c
}

func (r Resort) String() string {
	return fmt.Sprintf("%s (%.2f)", r.Name, r.Price)
}

type Feature struct {
	ID   int64
	Name string
}

type Environment struct {
	ID   int64
	Name string
}
