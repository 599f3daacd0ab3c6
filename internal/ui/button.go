package ui

import (
	"strings"
)

type ButtonVariant string

const (
	ButtonNexus        ButtonVariant = "nexus"
	ButtonNexusOutline ButtonVariant = "nexus-outline"
	ButtonNexusGhost   ButtonVariant = "nexus-ghost"
)

type ButtonSize string

const (
	ButtonSM ButtonSize = "sm"
	ButtonMD ButtonSize = "md"
	ButtonLG ButtonSize = "lg"
	ButtonXL ButtonSize = "xl"
)

var buttonVariantClasses = map[ButtonVariant]string{
	ButtonNexus:        "btn-nexus",
	ButtonNexusOutline: "btn-nexus-outline",
	ButtonNexusGhost:   "btn-nexus-ghost",
}

var buttonSizeClasses = map[ButtonSize]string{
	ButtonSM: "btn-sm",
	ButtonMD: "btn-md",
	ButtonLG: "btn-lg",
	ButtonXL: "btn-xl",
}

// Button renders as a link when Href is set and as a form button otherwise.
type Button struct {
	Label    string
	Variant  ButtonVariant
	Size     ButtonSize
	Href     string
	Type     string
	Name     string
	Value    string
	Form     string
	Loading  bool
	Disabled bool
	Class    string
}

// Classes returns the CSS classes of the button. Unknown variants and
// sizes fall back to nexus and md.
func (b Button) Classes() string {
	variant, ok := buttonVariantClasses[b.Variant]
	if !ok {
		variant = buttonVariantClasses[ButtonNexus]
	}
	size, ok := buttonSizeClasses[b.Size]
	if !ok {
		size = buttonSizeClasses[ButtonMD]
	}

	classes := []string{"btn", variant, size}
	if b.Loading {
		classes = append(classes, "btn-loading")
	}
	if extra := strings.TrimSpace(b.Class); extra != "" {
		classes = append(classes, extra)
	}

	return strings.Join(classes, " ")
}

// HTMLType is the type attribute, "button" unless set.
func (b Button) HTMLType() string {
	if b.Type == "" {
		return "button"
	}

	return b.Type
}

// Inactive reports whether the button must not be clickable.
func (b Button) Inactive() bool {
	return b.Disabled || b.Loading
}
