package models

import (
	"fmt"
	"strings"
)

const (
	UnicornMinAge      = 0
	UnicornMaxAge      = 1000
	UnicornMinPowerLen = 5
)

type Unicorn struct {
	ID    string  `json:"_id,omitempty"`
	Name  string  `json:"name"`
	Color string  `json:"color"`
	Age   float64 `json:"age"`
	Power string  `json:"power"`
}

func (u Unicorn) GetID() string { return u.ID }

func (u Unicorn) Validate() error {
	f := fieldErrors{}
	f.required("name", u.Name)
	f.required("color", u.Color)
	if f.number("age", u.Age) && (u.Age < UnicornMinAge || u.Age > UnicornMaxAge) {
		f["age"] = fmt.Sprintf("must be between %d and %d", UnicornMinAge, UnicornMaxAge)
	}
	if p := strings.TrimSpace(u.Power); p == "" {
		f["power"] = "is required"
	} else if len([]rune(p)) < UnicornMinPowerLen {
		f["power"] = fmt.Sprintf("must be at least %d characters", UnicornMinPowerLen)
	}
	return f.err("unicorn.validate")
}

func (u Unicorn) String() string {
	return fmt.Sprintf("%s  %-16s %-10s age=%-5g power=%s", u.ID, u.Name, u.Color, u.Age, u.Power)
}
