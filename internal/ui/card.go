package ui

import (
	"strings"
)

type CardVariant string

const (
	CardDefault  CardVariant = "default"
	CardElevated CardVariant = "elevated"
	CardGlass    CardVariant = "glass"
)

type Card struct {
	Variant CardVariant
	Glow    bool
	Class   string
}

func (c Card) Classes() string {
	classes := []string{"card"}
	switch c.Variant {
	case CardElevated:
		classes = append(classes, "card-elevated")
	case CardGlass:
		classes = append(classes, "card-glass")
	default:
		classes = append(classes, "card-default")
	}
	if c.Glow {
		classes = append(classes, "card-glow")
	}
	if extra := strings.TrimSpace(c.Class); extra != "" {
		classes = append(classes, extra)
	}

	return strings.Join(classes, " ")
}
